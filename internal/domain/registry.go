package domain

import "time"

// Registry is a name→ledger and ledger→controller directory used by
// external systems for discovery. It holds no authorization relationship
// with the components it lists.
type Registry struct {
	Address   Account
	Owner     Account
	CreatedAt time.Time
}

// RegistryEntry maps a token name to its ledger and, independently, the
// ledger to its active controller.
type RegistryEntry struct {
	Registry   Account
	TokenName  string
	Ledger     Account
	Controller Account
	CreatedAt  time.Time
}
