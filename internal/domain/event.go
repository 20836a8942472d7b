package domain

import "time"

// Event names emitted by the core. Together with the event fields they are
// sufficient to reconstruct component state from the log stream alone.
const (
	EventMembershipChanged = "MembershipChanged"

	EventTransfer     = "Transfer"
	EventApproval     = "Approval"
	EventBurnApproval = "BurnApproval"

	EventMintRequestCreated   = "MintRequestCreated"
	EventMintRequestFulfilled = "MintRequestFulfilled"
	EventMintRequestCancelled = "MintRequestCancelled"
	EventMintRequestRejected  = "MintRequestRejected"

	EventBurnRequestCreated   = "BurnRequestCreated"
	EventBurnRequestFulfilled = "BurnRequestFulfilled"
	EventBurnRequestCancelled = "BurnRequestCancelled"
	EventBurnRequestRejected  = "BurnRequestRejected"

	EventProxyTokenRegistered   = "ProxyTokenRegistered"
	EventProxyTokenUnregistered = "ProxyTokenUnregistered"
)

// Event is one entry in the append-only observability log. Scope is the
// address of the emitting component (a ledger, controller, registry) or a
// capability set name for membership changes.
type Event struct {
	ID        string
	Scope     string
	Name      string
	Account   Account
	From      Account
	To        Account
	Amount    int64
	RequestID *int64
	TokenName string
	Payload   string
	CreatedAt time.Time
}

// EventFilter narrows an event listing. Zero values mean "no filter";
// Limit 0 falls back to the repository default.
type EventFilter struct {
	Scope  string
	Name   string
	Limit  int
	Offset int
}
