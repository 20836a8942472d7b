package domain

import (
	"fmt"
	"time"
)

// RequestKind distinguishes the two parallel request sequences a store
// keeps. Each kind has its own dense id space starting at 0.
type RequestKind string

const (
	KindMint RequestKind = "mint"
	KindBurn RequestKind = "burn"
)

// RequestStatus is the lifecycle state of a request. A request is created
// NEW and transitions exactly once to one of the three terminal states.
type RequestStatus string

const (
	StatusNew       RequestStatus = "NEW"
	StatusFulfilled RequestStatus = "FULFILLED"
	StatusCancelled RequestStatus = "CANCELLED"
	StatusRejected  RequestStatus = "REJECTED"
)

// Terminal reports whether the status is one of the three end states.
func (s RequestStatus) Terminal() bool {
	return s == StatusFulfilled || s == StatusCancelled || s == StatusRejected
}

// Request is a persisted intent to mint or burn. Records are owned
// exclusively by their request store; controllers hold only the sequential
// id.
type Request struct {
	Store          Account
	Kind           RequestKind
	ID             int64
	Requester      Account
	Beneficiary    Account
	Amount         int64
	CreatePayload  string
	FulfillPayload string
	CancelPayload  string
	RejectPayload  string
	Status         RequestStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RequestStore is an append-only, authorization-gated container of request
// records. Writes flow only through accounts in its writer set; the owner
// manages that set but is barred from writing directly.
type RequestStore struct {
	Address   Account
	Owner     Account
	CreatedAt time.Time
}

// WriterSet returns the capability set name gating writes to a store.
func WriterSet(store Account) string {
	return fmt.Sprintf("%s/writers", store)
}
