package domain

import "context"

// CapabilityRepository persists capability sets and their membership.
// Implementations surface duplicate membership as StateError and missing
// sets as NotFoundError.
type CapabilityRepository interface {
	CreateSet(ctx context.Context, set *CapabilitySet) error
	GetSet(ctx context.Context, name string) (*CapabilitySet, error)
	AddMember(ctx context.Context, set string, account Account) error
	RemoveMember(ctx context.Context, set string, account Account) error
	IsMember(ctx context.Context, set string, account Account) (bool, error)
}

// LedgerRepository persists ledgers, balances, and the two allowance
// dimensions. Multi-row mutations are transactional: a failed precondition
// leaves no partial state. Balance and allowance shortfalls surface as
// ResourceError.
type LedgerRepository interface {
	Create(ctx context.Context, l *Ledger) error
	GetByAddress(ctx context.Context, address Account) (*Ledger, error)

	BalanceOf(ctx context.Context, ledger, account Account) (int64, error)
	TotalSupply(ctx context.Context, ledger Account) (int64, error)

	Credit(ctx context.Context, ledger, to Account, amount int64) error
	Debit(ctx context.Context, ledger, from Account, amount int64) error
	Transfer(ctx context.Context, ledger, from, to Account, amount int64) error
	// TransferFrom debits owner, credits to, and decrements the spend
	// allowance (owner, spender), returning the remaining allowance.
	TransferFrom(ctx context.Context, ledger, owner, spender, to Account, amount int64) (int64, error)

	Allowance(ctx context.Context, ledger, owner, spender Account) (int64, error)
	SetAllowance(ctx context.Context, ledger, owner, spender Account, amount int64) error
	AdjustAllowance(ctx context.Context, ledger, owner, spender Account, delta int64) (int64, error)

	BurnAllowance(ctx context.Context, ledger, owner, burner Account) (int64, error)
	AdjustBurnAllowance(ctx context.Context, ledger, owner, burner Account, delta int64) (int64, error)
	// BurnFrom debits owner and decrements the burn allowance
	// (owner, burner), returning the remaining burn allowance.
	BurnFrom(ctx context.Context, ledger, owner, burner Account, amount int64) (int64, error)
}

// RequestRepository persists request stores and their append-only request
// sequences. Ids are dense and assigned in call order, independently per
// store and kind.
type RequestRepository interface {
	CreateStore(ctx context.Context, s *RequestStore) error
	GetStore(ctx context.Context, address Account) (*RequestStore, error)

	Create(ctx context.Context, store Account, kind RequestKind) (int64, error)
	Get(ctx context.Context, store Account, kind RequestKind, id int64) (*Request, error)
	SetDetails(ctx context.Context, store Account, kind RequestKind, id int64, requester, beneficiary Account, amount int64, payload string) error
	SetStatus(ctx context.Context, store Account, kind RequestKind, id int64, status RequestStatus, payload string) error
	Count(ctx context.Context, store Account, kind RequestKind) (int64, error)
}

// ControllerRepository persists controller configuration.
type ControllerRepository interface {
	Create(ctx context.Context, c *Controller) error
	Get(ctx context.Context, address Account) (*Controller, error)
	SetMintFee(ctx context.Context, address Account, amount int64) error
	SetBurnFee(ctx context.Context, address Account, amount int64) error
	SetFeeBeneficiary(ctx context.Context, address Account, beneficiary Account) error
}

// RegistryRepository persists token registries and their entries.
type RegistryRepository interface {
	CreateRegistry(ctx context.Context, r *Registry) error
	GetRegistry(ctx context.Context, address Account) (*Registry, error)

	Insert(ctx context.Context, e *RegistryEntry) error
	Delete(ctx context.Context, registry, ledger Account) error
	GetByLedger(ctx context.Context, registry, ledger Account) (*RegistryEntry, error)
	GetByName(ctx context.Context, registry Account, name string) (*RegistryEntry, error)
	SetController(ctx context.Context, registry, ledger, controller Account) error
}

// EventRepository persists the append-only observability log.
type EventRepository interface {
	Insert(ctx context.Context, e *Event) error
	List(ctx context.Context, filter EventFilter) ([]Event, error)
}
