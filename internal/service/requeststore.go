package service

import (
	"context"

	"proxymint/internal/domain"
)

// RequestStoreService is the append-only request log. Writes are gated on a
// writer capability set; the store owner administers that set but is barred
// from writing, so record authorship always traces to a delegated writer.
type RequestStoreService struct {
	repo   domain.RequestRepository
	caps   *CapabilityService
	events domain.EventRepository
}

func NewRequestStoreService(repo domain.RequestRepository, caps *CapabilityService, events domain.EventRepository) *RequestStoreService {
	return &RequestStoreService{repo: repo, caps: caps, events: events}
}

// CreateStore provisions a store and its writer set.
func (s *RequestStoreService) CreateStore(ctx context.Context, owner domain.Account) (*domain.RequestStore, error) {
	if owner.IsZero() {
		return nil, domain.ErrValidation("owner cannot be the zero address")
	}
	store := &domain.RequestStore{Address: domain.NewAccount(), Owner: owner}
	if err := s.repo.CreateStore(ctx, store); err != nil {
		return nil, err
	}
	if err := s.caps.CreateSet(ctx, domain.WriterSet(store.Address), owner); err != nil {
		return nil, err
	}
	return store, nil
}

// Store returns the store record.
func (s *RequestStoreService) Store(ctx context.Context, store domain.Account) (*domain.RequestStore, error) {
	return s.repo.GetStore(ctx, store)
}

// AuthorizeWriter grants write access. Owner-gated via the writer set.
func (s *RequestStoreService) AuthorizeWriter(ctx context.Context, store, account domain.Account) error {
	return s.caps.Authorize(ctx, domain.WriterSet(store), account)
}

// DeauthorizeWriter revokes write access.
func (s *RequestStoreService) DeauthorizeWriter(ctx context.Context, store, account domain.Account) error {
	return s.caps.Deauthorize(ctx, domain.WriterSet(store), account)
}

func (s *RequestStoreService) IsWriter(ctx context.Context, store, account domain.Account) (bool, error) {
	return s.caps.IsAuthorized(ctx, domain.WriterSet(store), account)
}

// CreateMintRequest appends an empty mint request slot and returns its
// dense, zero-based id.
func (s *RequestStoreService) CreateMintRequest(ctx context.Context, store domain.Account) (int64, error) {
	return s.createRequest(ctx, store, domain.KindMint)
}

// CreateBurnRequest appends an empty burn request slot.
func (s *RequestStoreService) CreateBurnRequest(ctx context.Context, store domain.Account) (int64, error) {
	return s.createRequest(ctx, store, domain.KindBurn)
}

func (s *RequestStoreService) createRequest(ctx context.Context, store domain.Account, kind domain.RequestKind) (int64, error) {
	if err := s.requireWriter(ctx, store); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, store, kind)
}

// SetMintRequestDetails fills in the mutable fields of a mint request.
func (s *RequestStoreService) SetMintRequestDetails(ctx context.Context, store domain.Account, id int64, requester, beneficiary domain.Account, amount int64, payload string) error {
	return s.setDetails(ctx, store, domain.KindMint, id, requester, beneficiary, amount, payload)
}

// SetBurnRequestDetails fills in the mutable fields of a burn request.
func (s *RequestStoreService) SetBurnRequestDetails(ctx context.Context, store domain.Account, id int64, requester, beneficiary domain.Account, amount int64, payload string) error {
	return s.setDetails(ctx, store, domain.KindBurn, id, requester, beneficiary, amount, payload)
}

func (s *RequestStoreService) setDetails(ctx context.Context, store domain.Account, kind domain.RequestKind, id int64, requester, beneficiary domain.Account, amount int64, payload string) error {
	if err := s.requireWriter(ctx, store); err != nil {
		return err
	}
	if amount < 0 {
		return domain.ErrValidation("request amount cannot be negative")
	}
	return s.repo.SetDetails(ctx, store, kind, id, requester, beneficiary, amount, payload)
}

// SetMintRequestStatus moves a mint request to a terminal status.
func (s *RequestStoreService) SetMintRequestStatus(ctx context.Context, store domain.Account, id int64, status domain.RequestStatus, payload string) error {
	return s.setStatus(ctx, store, domain.KindMint, id, status, payload)
}

// SetBurnRequestStatus moves a burn request to a terminal status.
func (s *RequestStoreService) SetBurnRequestStatus(ctx context.Context, store domain.Account, id int64, status domain.RequestStatus, payload string) error {
	return s.setStatus(ctx, store, domain.KindBurn, id, status, payload)
}

func (s *RequestStoreService) setStatus(ctx context.Context, store domain.Account, kind domain.RequestKind, id int64, status domain.RequestStatus, payload string) error {
	if err := s.requireWriter(ctx, store); err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, store, kind, id, status, payload)
}

// MintRequest reads a mint request. Reads are open to any caller.
func (s *RequestStoreService) MintRequest(ctx context.Context, store domain.Account, id int64) (*domain.Request, error) {
	return s.repo.Get(ctx, store, domain.KindMint, id)
}

// BurnRequest reads a burn request.
func (s *RequestStoreService) BurnRequest(ctx context.Context, store domain.Account, id int64) (*domain.Request, error) {
	return s.repo.Get(ctx, store, domain.KindBurn, id)
}

func (s *RequestStoreService) MintRequestCount(ctx context.Context, store domain.Account) (int64, error) {
	return s.repo.Count(ctx, store, domain.KindMint)
}

func (s *RequestStoreService) BurnRequestCount(ctx context.Context, store domain.Account) (int64, error) {
	return s.repo.Count(ctx, store, domain.KindBurn)
}

// requireWriter enforces the storage write gate: the caller must hold the
// writer capability, and the owner is explicitly barred even when the set
// would otherwise admit it.
func (s *RequestStoreService) requireWriter(ctx context.Context, store domain.Account) error {
	rec, err := s.repo.GetStore(ctx, store)
	if err != nil {
		return err
	}
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if caller == rec.Owner {
		return domain.ErrAuthorization("owner is not authorized")
	}
	ok, err := s.caps.IsAuthorized(ctx, domain.WriterSet(store), caller)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAuthorization("not authorized")
	}
	return nil
}
