package domain

import "github.com/google/uuid"

// Account is an opaque, comparable identity. It names operators, component
// instances (ledgers, controllers, request stores, registries), and fee
// beneficiaries. The empty string is the zero sentinel meaning "no account".
type Account string

// ZeroAccount is the sentinel for "no account". It is never a valid
// participant in any operation.
const ZeroAccount Account = ""

// IsZero reports whether the account is the zero sentinel.
func (a Account) IsZero() bool { return a == ZeroAccount }

// String returns the account identifier as a plain string.
func (a Account) String() string { return string(a) }

// NewAccount generates a fresh account identifier. Component instances get
// their addresses from here at provisioning time.
func NewAccount() Account {
	return Account(uuid.NewString())
}
