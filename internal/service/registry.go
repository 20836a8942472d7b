package service

import (
	"context"
	"errors"

	"proxymint/internal/domain"
)

// RegistryService maintains the directory of registered proxy tokens. A
// registration binds a ledger, its unique token name, and the controller
// currently managing it.
type RegistryService struct {
	repo    domain.RegistryRepository
	ledgers *LedgerService
	events  domain.EventRepository
}

func NewRegistryService(repo domain.RegistryRepository, ledgers *LedgerService, events domain.EventRepository) *RegistryService {
	return &RegistryService{repo: repo, ledgers: ledgers, events: events}
}

// CreateRegistry provisions an empty registry.
func (s *RegistryService) CreateRegistry(ctx context.Context, owner domain.Account) (*domain.Registry, error) {
	if owner.IsZero() {
		return nil, domain.ErrValidation("owner cannot be the zero address")
	}
	reg := &domain.Registry{Address: domain.NewAccount(), Owner: owner}
	if err := s.repo.CreateRegistry(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Registry returns the registry record.
func (s *RegistryService) Registry(ctx context.Context, registry domain.Account) (*domain.Registry, error) {
	return s.repo.GetRegistry(ctx, registry)
}

// Register records a ledger under its token name. The ledger must exist,
// and neither the ledger nor its name may already be registered.
func (s *RegistryService) Register(ctx context.Context, registry, ledger, controller domain.Account) error {
	if err := s.requireOwner(ctx, registry); err != nil {
		return err
	}
	l, err := s.ledgers.Get(ctx, ledger)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrValidation("invalid token address")
		}
		return err
	}
	if _, err := s.repo.GetByLedger(ctx, registry, ledger); err == nil {
		return domain.ErrState("token address already taken")
	} else if !isNotFound(err) {
		return err
	}
	if _, err := s.repo.GetByName(ctx, registry, l.Name); err == nil {
		return domain.ErrState("token name already taken")
	} else if !isNotFound(err) {
		return err
	}
	entry := &domain.RegistryEntry{
		Registry:   registry,
		TokenName:  l.Name,
		Ledger:     ledger,
		Controller: controller,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return err
	}
	s.emit(ctx, registry, domain.EventProxyTokenRegistered, l.Name, ledger)
	return nil
}

// Unregister removes a ledger's registration.
func (s *RegistryService) Unregister(ctx context.Context, registry, ledger domain.Account) error {
	if err := s.requireOwner(ctx, registry); err != nil {
		return err
	}
	entry, err := s.repo.GetByLedger(ctx, registry, ledger)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, registry, ledger); err != nil {
		return err
	}
	s.emit(ctx, registry, domain.EventProxyTokenUnregistered, entry.TokenName, ledger)
	return nil
}

// SetController repoints an existing registration at a new controller,
// for when a token's lifecycle management is migrated.
func (s *RegistryService) SetController(ctx context.Context, registry, ledger, controller domain.Account) error {
	if err := s.requireOwner(ctx, registry); err != nil {
		return err
	}
	return s.repo.SetController(ctx, registry, ledger, controller)
}

// GetToken resolves a token name to its registration.
func (s *RegistryService) GetToken(ctx context.Context, registry domain.Account, name string) (*domain.RegistryEntry, error) {
	return s.repo.GetByName(ctx, registry, name)
}

// GetTokenName resolves a ledger address to its registered name.
func (s *RegistryService) GetTokenName(ctx context.Context, registry, ledger domain.Account) (string, error) {
	entry, err := s.repo.GetByLedger(ctx, registry, ledger)
	if err != nil {
		return "", err
	}
	return entry.TokenName, nil
}

func (s *RegistryService) requireOwner(ctx context.Context, registry domain.Account) error {
	reg, err := s.repo.GetRegistry(ctx, registry)
	if err != nil {
		return err
	}
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if caller != reg.Owner {
		return domain.ErrAuthorization("only the registry owner")
	}
	return nil
}

func isNotFound(err error) bool {
	var nf *domain.NotFoundError
	return errors.As(err, &nf)
}

func (s *RegistryService) emit(ctx context.Context, registry domain.Account, name, tokenName string, ledger domain.Account) {
	_ = s.events.Insert(ctx, &domain.Event{
		Scope:     string(registry),
		Name:      name,
		Account:   ledger,
		TokenName: tokenName,
	})
}
