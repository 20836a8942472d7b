package service

import (
	"context"

	"proxymint/internal/domain"
)

// LedgerService implements the role-gated token ledger: balances, spending
// allowances, the separate burn-allowance dimension, and minter/burner role
// administration delegated to capability sets.
type LedgerService struct {
	repo   domain.LedgerRepository
	caps   *CapabilityService
	events domain.EventRepository
}

func NewLedgerService(repo domain.LedgerRepository, caps *CapabilityService, events domain.EventRepository) *LedgerService {
	return &LedgerService{repo: repo, caps: caps, events: events}
}

// Create provisions a new ledger with its minter and burner sets. The
// initial supply, if any, is minted to the owner.
func (s *LedgerService) Create(ctx context.Context, owner domain.Account, name, symbol string, decimals int, initialSupply int64) (*domain.Ledger, error) {
	if owner.IsZero() {
		return nil, domain.ErrValidation("owner cannot be the zero address")
	}
	if name == "" || symbol == "" {
		return nil, domain.ErrValidation("token name and symbol are required")
	}
	if decimals < 0 || decimals > 18 {
		return nil, domain.ErrValidation("decimals must be between 0 and 18")
	}
	if initialSupply < 0 {
		return nil, domain.ErrValidation("initial supply cannot be negative")
	}

	l := &domain.Ledger{
		Address:  domain.NewAccount(),
		Owner:    owner,
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	if err := s.caps.CreateSet(ctx, domain.MinterSet(l.Address), owner); err != nil {
		return nil, err
	}
	if err := s.caps.CreateSet(ctx, domain.BurnerSet(l.Address), owner); err != nil {
		return nil, err
	}
	if initialSupply > 0 {
		if err := s.repo.Credit(ctx, l.Address, owner, initialSupply); err != nil {
			return nil, err
		}
		s.emitTransfer(ctx, l.Address, domain.ZeroAccount, owner, initialSupply)
	}
	return l, nil
}

// Get returns the ledger record.
func (s *LedgerService) Get(ctx context.Context, ledger domain.Account) (*domain.Ledger, error) {
	return s.repo.GetByAddress(ctx, ledger)
}

func (s *LedgerService) BalanceOf(ctx context.Context, ledger, account domain.Account) (int64, error) {
	return s.repo.BalanceOf(ctx, ledger, account)
}

func (s *LedgerService) TotalSupply(ctx context.Context, ledger domain.Account) (int64, error) {
	return s.repo.TotalSupply(ctx, ledger)
}

func (s *LedgerService) Allowance(ctx context.Context, ledger, owner, spender domain.Account) (int64, error) {
	return s.repo.Allowance(ctx, ledger, owner, spender)
}

func (s *LedgerService) BurnAllowance(ctx context.Context, ledger, owner, burner domain.Account) (int64, error) {
	return s.repo.BurnAllowance(ctx, ledger, owner, burner)
}

// Transfer moves funds from the caller to another holder.
func (s *LedgerService) Transfer(ctx context.Context, ledger, to domain.Account, amount int64) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if to.IsZero() {
		return domain.ErrValidation("cannot transfer to the zero address")
	}
	if amount < 0 {
		return domain.ErrValidation("transfer amount cannot be negative")
	}
	if err := s.repo.Transfer(ctx, ledger, caller, to, amount); err != nil {
		return err
	}
	s.emitTransfer(ctx, ledger, caller, to, amount)
	return nil
}

// Approve sets the caller's spending allowance for a spender to an absolute
// value.
func (s *LedgerService) Approve(ctx context.Context, ledger, spender domain.Account, amount int64) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if spender.IsZero() {
		return domain.ErrValidation("spender cannot be the zero address")
	}
	if amount < 0 {
		return domain.ErrValidation("allowance cannot be negative")
	}
	if err := s.repo.SetAllowance(ctx, ledger, caller, spender, amount); err != nil {
		return err
	}
	s.emitApproval(ctx, ledger, caller, spender, amount)
	return nil
}

// IncreaseAllowance raises the caller's allowance for a spender.
func (s *LedgerService) IncreaseAllowance(ctx context.Context, ledger, spender domain.Account, amount int64) error {
	return s.adjustAllowance(ctx, ledger, spender, amount)
}

// DecreaseAllowance lowers the caller's allowance for a spender. The
// adjustment fails rather than clamping below zero.
func (s *LedgerService) DecreaseAllowance(ctx context.Context, ledger, spender domain.Account, amount int64) error {
	return s.adjustAllowance(ctx, ledger, spender, -amount)
}

func (s *LedgerService) adjustAllowance(ctx context.Context, ledger, spender domain.Account, delta int64) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if spender.IsZero() {
		return domain.ErrValidation("spender cannot be the zero address")
	}
	remaining, err := s.repo.AdjustAllowance(ctx, ledger, caller, spender, delta)
	if err != nil {
		return err
	}
	s.emitApproval(ctx, ledger, caller, spender, remaining)
	return nil
}

// TransferFrom spends a holder's allowance granted to the caller.
func (s *LedgerService) TransferFrom(ctx context.Context, ledger, from, to domain.Account, amount int64) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if to.IsZero() {
		return domain.ErrValidation("cannot transfer to the zero address")
	}
	if amount < 0 {
		return domain.ErrValidation("transfer amount cannot be negative")
	}
	remaining, err := s.repo.TransferFrom(ctx, ledger, from, caller, to, amount)
	if err != nil {
		return err
	}
	s.emitTransfer(ctx, ledger, from, to, amount)
	s.emitApproval(ctx, ledger, from, caller, remaining)
	return nil
}

// Mint credits new supply to a beneficiary. Only minter-role holders may
// mint; a zero amount is legal and still recorded.
func (s *LedgerService) Mint(ctx context.Context, ledger, to domain.Account, amount int64) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	ok, err := s.caps.IsAuthorized(ctx, domain.MinterSet(ledger), caller)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAuthorization("sender does not have a minter role")
	}
	if to.IsZero() {
		return domain.ErrValidation("cannot mint to the zero address")
	}
	if amount < 0 {
		return domain.ErrValidation("mint amount cannot be negative")
	}
	if err := s.repo.Credit(ctx, ledger, to, amount); err != nil {
		return err
	}
	s.emitTransfer(ctx, ledger, domain.ZeroAccount, to, amount)
	return nil
}

// Burn destroys supply from the caller's own balance. Burner role required.
func (s *LedgerService) Burn(ctx context.Context, ledger domain.Account, amount int64) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if err := s.requireBurner(ctx, ledger, caller); err != nil {
		return err
	}
	if amount < 0 {
		return domain.ErrValidation("burn amount cannot be negative")
	}
	if err := s.repo.Debit(ctx, ledger, caller, amount); err != nil {
		return err
	}
	s.emitTransfer(ctx, ledger, caller, domain.ZeroAccount, amount)
	return nil
}

// BurnFrom destroys supply from a holder's balance against the burn
// allowance the holder granted the caller. Spending allowances are not
// consulted; the burn dimension is independent.
func (s *LedgerService) BurnFrom(ctx context.Context, ledger, owner domain.Account, amount int64) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if err := s.requireBurner(ctx, ledger, caller); err != nil {
		return err
	}
	if amount < 0 {
		return domain.ErrValidation("burn amount cannot be negative")
	}
	remaining, err := s.repo.BurnFrom(ctx, ledger, owner, caller, amount)
	if err != nil {
		return err
	}
	s.emitTransfer(ctx, ledger, owner, domain.ZeroAccount, amount)
	s.emitBurnApproval(ctx, ledger, owner, caller, remaining)
	return nil
}

// IncreaseBurnAllowance raises the caller's burn allowance for a burner.
func (s *LedgerService) IncreaseBurnAllowance(ctx context.Context, ledger, burner domain.Account, amount int64) error {
	return s.adjustBurnAllowance(ctx, ledger, burner, amount)
}

// DecreaseBurnAllowance lowers it, failing on a shortfall.
func (s *LedgerService) DecreaseBurnAllowance(ctx context.Context, ledger, burner domain.Account, amount int64) error {
	return s.adjustBurnAllowance(ctx, ledger, burner, -amount)
}

func (s *LedgerService) adjustBurnAllowance(ctx context.Context, ledger, burner domain.Account, delta int64) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if burner.IsZero() {
		return domain.ErrValidation("invalid burner address")
	}
	remaining, err := s.repo.AdjustBurnAllowance(ctx, ledger, caller, burner, delta)
	if err != nil {
		return err
	}
	s.emitBurnApproval(ctx, ledger, caller, burner, remaining)
	return nil
}

// Role administration. All gating semantics live in the capability sets.

func (s *LedgerService) AddMinter(ctx context.Context, ledger, account domain.Account) error {
	return s.caps.Authorize(ctx, domain.MinterSet(ledger), account)
}

func (s *LedgerService) RemoveMinter(ctx context.Context, ledger, account domain.Account) error {
	return s.caps.Deauthorize(ctx, domain.MinterSet(ledger), account)
}

func (s *LedgerService) RenounceMinter(ctx context.Context, ledger domain.Account) error {
	return s.caps.Renounce(ctx, domain.MinterSet(ledger))
}

func (s *LedgerService) IsMinter(ctx context.Context, ledger, account domain.Account) (bool, error) {
	return s.caps.IsAuthorized(ctx, domain.MinterSet(ledger), account)
}

func (s *LedgerService) AddBurner(ctx context.Context, ledger, account domain.Account) error {
	return s.caps.Authorize(ctx, domain.BurnerSet(ledger), account)
}

func (s *LedgerService) RemoveBurner(ctx context.Context, ledger, account domain.Account) error {
	return s.caps.Deauthorize(ctx, domain.BurnerSet(ledger), account)
}

func (s *LedgerService) RenounceBurner(ctx context.Context, ledger domain.Account) error {
	return s.caps.Renounce(ctx, domain.BurnerSet(ledger))
}

func (s *LedgerService) IsBurner(ctx context.Context, ledger, account domain.Account) (bool, error) {
	return s.caps.IsAuthorized(ctx, domain.BurnerSet(ledger), account)
}

func (s *LedgerService) requireBurner(ctx context.Context, ledger, account domain.Account) error {
	ok, err := s.caps.IsAuthorized(ctx, domain.BurnerSet(ledger), account)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAuthorization("sender does not have a burner role")
	}
	return nil
}

func (s *LedgerService) emitTransfer(ctx context.Context, ledger, from, to domain.Account, amount int64) {
	_ = s.events.Insert(ctx, &domain.Event{
		Scope:  string(ledger),
		Name:   domain.EventTransfer,
		From:   from,
		To:     to,
		Amount: amount,
	})
}

func (s *LedgerService) emitApproval(ctx context.Context, ledger, owner, spender domain.Account, amount int64) {
	_ = s.events.Insert(ctx, &domain.Event{
		Scope:  string(ledger),
		Name:   domain.EventApproval,
		From:   owner,
		To:     spender,
		Amount: amount,
	})
}

func (s *LedgerService) emitBurnApproval(ctx context.Context, ledger, owner, burner domain.Account, amount int64) {
	_ = s.events.Insert(ctx, &domain.Event{
		Scope:  string(ledger),
		Name:   domain.EventBurnApproval,
		From:   owner,
		To:     burner,
		Amount: amount,
	})
}
