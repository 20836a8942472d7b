// Package service implements the custody core: capability registries, the
// role-gated ledger, request storage, the request lifecycle controller, and
// the token registry.
package service

import (
	"context"

	"proxymint/internal/domain"
)

// CapabilityService manages owner-gated capability sets. Every role list in
// the system (minters, burners, store writers, requesters, fulfillers) is a
// set created and checked through here.
type CapabilityService struct {
	repo   domain.CapabilityRepository
	events domain.EventRepository
}

func NewCapabilityService(repo domain.CapabilityRepository, events domain.EventRepository) *CapabilityService {
	return &CapabilityService{repo: repo, events: events}
}

// CreateSet provisions a new capability set. The owner is fixed for the
// set's lifetime.
func (s *CapabilityService) CreateSet(ctx context.Context, name string, owner domain.Account) error {
	if name == "" {
		return domain.ErrValidation("capability set name is required")
	}
	if owner.IsZero() {
		return domain.ErrValidation("owner cannot be the zero address")
	}
	return s.repo.CreateSet(ctx, &domain.CapabilitySet{Name: name, Owner: owner})
}

// Authorize adds an account to the set. Only the set owner may call this;
// the owner itself can never be a member, and re-authorizing is rejected
// rather than silently accepted.
func (s *CapabilityService) Authorize(ctx context.Context, set string, account domain.Account) error {
	reg, err := s.repo.GetSet(ctx, set)
	if err != nil {
		return err
	}
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if caller != reg.Owner {
		return domain.ErrAuthorization("only the owner may authorize accounts")
	}
	if account.IsZero() {
		return domain.ErrValidation("account cannot be the zero address")
	}
	if account == reg.Owner {
		return domain.ErrValidation("owner cannot be authorized")
	}
	member, err := s.repo.IsMember(ctx, set, account)
	if err != nil {
		return err
	}
	if member {
		return domain.ErrState("already authorized")
	}
	if err := s.repo.AddMember(ctx, set, account); err != nil {
		return err
	}
	s.emitMembership(ctx, set, account, "authorized")
	return nil
}

// Deauthorize removes an account from the set under the same owner gating.
func (s *CapabilityService) Deauthorize(ctx context.Context, set string, account domain.Account) error {
	reg, err := s.repo.GetSet(ctx, set)
	if err != nil {
		return err
	}
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if caller != reg.Owner {
		return domain.ErrAuthorization("only the owner may deauthorize accounts")
	}
	if account == reg.Owner {
		return domain.ErrValidation("owner cannot be deauthorized")
	}
	member, err := s.repo.IsMember(ctx, set, account)
	if err != nil {
		return err
	}
	if !member {
		return domain.ErrState("already unauthorized")
	}
	if err := s.repo.RemoveMember(ctx, set, account); err != nil {
		return err
	}
	s.emitMembership(ctx, set, account, "deauthorized")
	return nil
}

// Renounce removes the caller's own membership.
func (s *CapabilityService) Renounce(ctx context.Context, set string) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	member, err := s.repo.IsMember(ctx, set, caller)
	if err != nil {
		return err
	}
	if !member {
		return domain.ErrState("caller is not a member")
	}
	if err := s.repo.RemoveMember(ctx, set, caller); err != nil {
		return err
	}
	s.emitMembership(ctx, set, caller, "renounced")
	return nil
}

// IsAuthorized is a pure membership lookup.
func (s *CapabilityService) IsAuthorized(ctx context.Context, set string, account domain.Account) (bool, error) {
	return s.repo.IsMember(ctx, set, account)
}

// Owner returns the fixed owner of a set.
func (s *CapabilityService) Owner(ctx context.Context, set string) (domain.Account, error) {
	reg, err := s.repo.GetSet(ctx, set)
	if err != nil {
		return domain.ZeroAccount, err
	}
	return reg.Owner, nil
}

func (s *CapabilityService) emitMembership(ctx context.Context, set string, account domain.Account, change string) {
	_ = s.events.Insert(ctx, &domain.Event{
		Scope:   set,
		Name:    domain.EventMembershipChanged,
		Account: account,
		Payload: change,
	})
}

// requireCaller extracts the calling account from the context.
func requireCaller(ctx context.Context) (domain.Account, error) {
	caller, ok := domain.CallerFromContext(ctx)
	if !ok || caller.IsZero() {
		return domain.ZeroAccount, domain.ErrAuthorization("no caller identity")
	}
	return caller, nil
}
