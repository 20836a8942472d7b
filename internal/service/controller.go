package service

import (
	"context"
	"sync"

	"proxymint/internal/domain"
)

// ControllerService drives the mint/burn request lifecycle. A controller
// binds a proxy ledger (the token being issued), a governance ledger (the
// token request fees are paid in), and a request store, and acts on all
// three under its own address. The mutex serializes lifecycle mutations so
// a request observed NEW stays NEW until its transition commits.
type ControllerService struct {
	mu      sync.Mutex
	repo    domain.ControllerRepository
	ledgers *LedgerService
	stores  *RequestStoreService
	caps    *CapabilityService
	events  domain.EventRepository
}

func NewControllerService(repo domain.ControllerRepository, ledgers *LedgerService, stores *RequestStoreService, caps *CapabilityService, events domain.EventRepository) *ControllerService {
	return &ControllerService{repo: repo, ledgers: ledgers, stores: stores, caps: caps, events: events}
}

// CreateController provisions a controller and its four role sets. The
// referenced ledgers and store must already exist.
func (s *ControllerService) CreateController(ctx context.Context, owner, proxyLedger, governanceLedger, store, feeBeneficiary domain.Account, mintFee, burnFee int64) (*domain.Controller, error) {
	if owner.IsZero() {
		return nil, domain.ErrValidation("owner cannot be the zero address")
	}
	if feeBeneficiary.IsZero() {
		return nil, domain.ErrValidation("fee beneficiary cannot be the zero address")
	}
	if mintFee < 0 || burnFee < 0 {
		return nil, domain.ErrValidation("fees cannot be negative")
	}
	if _, err := s.ledgers.Get(ctx, proxyLedger); err != nil {
		return nil, err
	}
	if _, err := s.ledgers.Get(ctx, governanceLedger); err != nil {
		return nil, err
	}
	if _, err := s.stores.Store(ctx, store); err != nil {
		return nil, err
	}

	c := &domain.Controller{
		Address:          domain.NewAccount(),
		Owner:            owner,
		ProxyLedger:      proxyLedger,
		GovernanceLedger: governanceLedger,
		Store:            store,
		FeeBeneficiary:   feeBeneficiary,
		MintFee:          mintFee,
		BurnFee:          burnFee,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	for _, set := range []string{
		domain.MintRequesterSet(c.Address),
		domain.MintFulfillerSet(c.Address),
		domain.BurnRequesterSet(c.Address),
		domain.BurnFulfillerSet(c.Address),
	} {
		if err := s.caps.CreateSet(ctx, set, owner); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Controller returns the controller record.
func (s *ControllerService) Controller(ctx context.Context, controller domain.Account) (*domain.Controller, error) {
	return s.repo.Get(ctx, controller)
}

// Role administration. Requester and fulfiller roles on the same side are
// mutually exclusive: an account holding one cannot be granted the other.

func (s *ControllerService) AuthorizeMintRequester(ctx context.Context, controller, account domain.Account) error {
	return s.authorizeRole(ctx, controller, account,
		domain.MintRequesterSet, domain.MintFulfillerSet,
		"user has mint request authorization", "user has mint fulfill authorization")
}

func (s *ControllerService) AuthorizeMintFulfiller(ctx context.Context, controller, account domain.Account) error {
	return s.authorizeRole(ctx, controller, account,
		domain.MintFulfillerSet, domain.MintRequesterSet,
		"user has mint fulfill authorization", "user has mint request authorization")
}

func (s *ControllerService) AuthorizeBurnRequester(ctx context.Context, controller, account domain.Account) error {
	return s.authorizeRole(ctx, controller, account,
		domain.BurnRequesterSet, domain.BurnFulfillerSet,
		"user has burn request authorization", "user has burn fulfill authorization")
}

func (s *ControllerService) AuthorizeBurnFulfiller(ctx context.Context, controller, account domain.Account) error {
	return s.authorizeRole(ctx, controller, account,
		domain.BurnFulfillerSet, domain.BurnRequesterSet,
		"user has burn fulfill authorization", "user has burn request authorization")
}

func (s *ControllerService) authorizeRole(ctx context.Context, controller, account domain.Account, roleSet, otherSet func(domain.Account) string, roleMsg, otherMsg string) error {
	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, c); err != nil {
		return err
	}
	held, err := s.caps.IsAuthorized(ctx, roleSet(c.Address), account)
	if err != nil {
		return err
	}
	if held {
		return domain.ErrState("%s", roleMsg)
	}
	other, err := s.caps.IsAuthorized(ctx, otherSet(c.Address), account)
	if err != nil {
		return err
	}
	if other {
		return domain.ErrState("%s", otherMsg)
	}
	return s.caps.Authorize(ctx, roleSet(c.Address), account)
}

func (s *ControllerService) DeauthorizeMintRequester(ctx context.Context, controller, account domain.Account) error {
	return s.deauthorizeRole(ctx, controller, account, domain.MintRequesterSet)
}

func (s *ControllerService) DeauthorizeMintFulfiller(ctx context.Context, controller, account domain.Account) error {
	return s.deauthorizeRole(ctx, controller, account, domain.MintFulfillerSet)
}

func (s *ControllerService) DeauthorizeBurnRequester(ctx context.Context, controller, account domain.Account) error {
	return s.deauthorizeRole(ctx, controller, account, domain.BurnRequesterSet)
}

func (s *ControllerService) DeauthorizeBurnFulfiller(ctx context.Context, controller, account domain.Account) error {
	return s.deauthorizeRole(ctx, controller, account, domain.BurnFulfillerSet)
}

func (s *ControllerService) deauthorizeRole(ctx context.Context, controller, account domain.Account, roleSet func(domain.Account) string) error {
	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, c); err != nil {
		return err
	}
	return s.caps.Deauthorize(ctx, roleSet(c.Address), account)
}

func (s *ControllerService) IsMintRequester(ctx context.Context, controller, account domain.Account) (bool, error) {
	return s.caps.IsAuthorized(ctx, domain.MintRequesterSet(controller), account)
}

func (s *ControllerService) IsMintFulfiller(ctx context.Context, controller, account domain.Account) (bool, error) {
	return s.caps.IsAuthorized(ctx, domain.MintFulfillerSet(controller), account)
}

func (s *ControllerService) IsBurnRequester(ctx context.Context, controller, account domain.Account) (bool, error) {
	return s.caps.IsAuthorized(ctx, domain.BurnRequesterSet(controller), account)
}

func (s *ControllerService) IsBurnFulfiller(ctx context.Context, controller, account domain.Account) (bool, error) {
	return s.caps.IsAuthorized(ctx, domain.BurnFulfillerSet(controller), account)
}

// Fee configuration, owner-gated. Fee changes apply to requests created
// after the change; in-flight requests already paid at creation.

func (s *ControllerService) SetMintFee(ctx context.Context, controller domain.Account, fee int64) error {
	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, c); err != nil {
		return err
	}
	if fee < 0 {
		return domain.ErrValidation("fee cannot be negative")
	}
	return s.repo.SetMintFee(ctx, controller, fee)
}

func (s *ControllerService) SetBurnFee(ctx context.Context, controller domain.Account, fee int64) error {
	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, c); err != nil {
		return err
	}
	if fee < 0 {
		return domain.ErrValidation("fee cannot be negative")
	}
	return s.repo.SetBurnFee(ctx, controller, fee)
}

func (s *ControllerService) SetFeeBeneficiary(ctx context.Context, controller, beneficiary domain.Account) error {
	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, c); err != nil {
		return err
	}
	if beneficiary.IsZero() {
		return domain.ErrValidation("fee beneficiary cannot be the zero address")
	}
	return s.repo.SetFeeBeneficiary(ctx, controller, beneficiary)
}

// CreateMintRequest charges the mint fee from the requester's governance
// funds and records a new mint request. The fee transfer settles first so
// a requester who cannot pay leaves no record behind; fees are never
// refunded.
func (s *ControllerService) CreateMintRequest(ctx context.Context, controller, beneficiary domain.Account, amount int64, payload string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return 0, err
	}
	caller, err := s.requireRole(ctx, domain.MintRequesterSet(c.Address), "only authorized mint requester")
	if err != nil {
		return 0, err
	}
	if beneficiary.IsZero() {
		return 0, domain.ErrValidation("beneficiary cannot be the zero address")
	}
	if amount <= 0 {
		return 0, domain.ErrValidation("proxy amount cannot be zero")
	}
	if err := s.checkFee(ctx, c, caller, c.MintFee); err != nil {
		return 0, err
	}

	asController := domain.WithCaller(ctx, c.Address)
	if err := s.chargeFee(asController, c, caller, c.MintFee); err != nil {
		return 0, err
	}
	id, err := s.stores.CreateMintRequest(asController, c.Store)
	if err != nil {
		return 0, err
	}
	if err := s.stores.SetMintRequestDetails(asController, c.Store, id, caller, beneficiary, amount, payload); err != nil {
		return 0, err
	}
	s.emitRequest(ctx, c.Address, domain.EventMintRequestCreated, id, caller, beneficiary, amount, payload)
	return id, nil
}

// FulfillMintRequest mints the requested amount to the recorded beneficiary
// and closes the request. Fulfiller role required; the request must still
// be NEW.
func (s *ControllerService) FulfillMintRequest(ctx context.Context, controller domain.Account, id int64, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return err
	}
	caller, err := s.requireRole(ctx, domain.MintFulfillerSet(c.Address), "only authorized mint fulfiller")
	if err != nil {
		return err
	}
	req, err := s.stores.MintRequest(ctx, c.Store, id)
	if err != nil {
		return err
	}
	if req.Status != domain.StatusNew {
		return domain.ErrState("the mint request status must be new")
	}

	asController := domain.WithCaller(ctx, c.Address)
	if err := s.ledgers.Mint(asController, c.ProxyLedger, req.Beneficiary, req.Amount); err != nil {
		return err
	}
	if err := s.stores.SetMintRequestStatus(asController, c.Store, id, domain.StatusFulfilled, payload); err != nil {
		return err
	}
	s.emitRequest(ctx, c.Address, domain.EventMintRequestFulfilled, id, caller, req.Beneficiary, req.Amount, payload)
	return nil
}

// CancelMintRequest lets a requester withdraw a still-NEW request. The fee
// is not refunded.
func (s *ControllerService) CancelMintRequest(ctx context.Context, controller domain.Account, id int64, payload string) error {
	return s.closeRequest(ctx, controller, domain.KindMint, id, payload,
		domain.StatusCancelled, domain.MintRequesterSet, "only authorized mint requester", domain.EventMintRequestCancelled)
}

// RejectMintRequest lets a fulfiller decline a still-NEW request.
func (s *ControllerService) RejectMintRequest(ctx context.Context, controller domain.Account, id int64, payload string) error {
	return s.closeRequest(ctx, controller, domain.KindMint, id, payload,
		domain.StatusRejected, domain.MintFulfillerSet, "only authorized mint fulfiller", domain.EventMintRequestRejected)
}

// CreateBurnRequest charges the burn fee and records a burn request. Like
// the mint side, the fee settles before the record is written.
func (s *ControllerService) CreateBurnRequest(ctx context.Context, controller, beneficiary domain.Account, amount int64, payload string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return 0, err
	}
	caller, err := s.requireRole(ctx, domain.BurnRequesterSet(c.Address), "only authorized burn requester")
	if err != nil {
		return 0, err
	}
	if beneficiary.IsZero() {
		return 0, domain.ErrValidation("beneficiary cannot be the zero address")
	}
	if amount <= 0 {
		return 0, domain.ErrValidation("proxy amount cannot be zero")
	}
	if err := s.checkFee(ctx, c, caller, c.BurnFee); err != nil {
		return 0, err
	}

	asController := domain.WithCaller(ctx, c.Address)
	if err := s.chargeFee(asController, c, caller, c.BurnFee); err != nil {
		return 0, err
	}
	id, err := s.stores.CreateBurnRequest(asController, c.Store)
	if err != nil {
		return 0, err
	}
	if err := s.stores.SetBurnRequestDetails(asController, c.Store, id, caller, beneficiary, amount, payload); err != nil {
		return 0, err
	}
	s.emitRequest(ctx, c.Address, domain.EventBurnRequestCreated, id, caller, beneficiary, amount, payload)
	return id, nil
}

// FulfillBurnRequest burns the requested amount from the recorded
// beneficiary's balance against the burn allowance granted to the
// controller, then closes the request.
func (s *ControllerService) FulfillBurnRequest(ctx context.Context, controller domain.Account, id int64, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return err
	}
	caller, err := s.requireRole(ctx, domain.BurnFulfillerSet(c.Address), "only authorized burn fulfiller")
	if err != nil {
		return err
	}
	req, err := s.stores.BurnRequest(ctx, c.Store, id)
	if err != nil {
		return err
	}
	if req.Status != domain.StatusNew {
		return domain.ErrState("the burn request status must be new")
	}

	asController := domain.WithCaller(ctx, c.Address)
	if err := s.ledgers.BurnFrom(asController, c.ProxyLedger, req.Beneficiary, req.Amount); err != nil {
		return err
	}
	if err := s.stores.SetBurnRequestStatus(asController, c.Store, id, domain.StatusFulfilled, payload); err != nil {
		return err
	}
	s.emitRequest(ctx, c.Address, domain.EventBurnRequestFulfilled, id, caller, req.Beneficiary, req.Amount, payload)
	return nil
}

// CancelBurnRequest withdraws a still-NEW burn request.
func (s *ControllerService) CancelBurnRequest(ctx context.Context, controller domain.Account, id int64, payload string) error {
	return s.closeRequest(ctx, controller, domain.KindBurn, id, payload,
		domain.StatusCancelled, domain.BurnRequesterSet, "only authorized burn requester", domain.EventBurnRequestCancelled)
}

// RejectBurnRequest declines a still-NEW burn request.
func (s *ControllerService) RejectBurnRequest(ctx context.Context, controller domain.Account, id int64, payload string) error {
	return s.closeRequest(ctx, controller, domain.KindBurn, id, payload,
		domain.StatusRejected, domain.BurnFulfillerSet, "only authorized burn fulfiller", domain.EventBurnRequestRejected)
}

func (s *ControllerService) closeRequest(ctx context.Context, controller domain.Account, kind domain.RequestKind, id int64, payload string, status domain.RequestStatus, roleSet func(domain.Account) string, roleMsg, event string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return err
	}
	caller, err := s.requireRole(ctx, roleSet(c.Address), roleMsg)
	if err != nil {
		return err
	}

	asController := domain.WithCaller(ctx, c.Address)
	var req *domain.Request
	if kind == domain.KindMint {
		req, err = s.stores.MintRequest(ctx, c.Store, id)
	} else {
		req, err = s.stores.BurnRequest(ctx, c.Store, id)
	}
	if err != nil {
		return err
	}
	if req.Status != domain.StatusNew {
		return domain.ErrState("the %s request status must be new", kind)
	}
	if kind == domain.KindMint {
		err = s.stores.SetMintRequestStatus(asController, c.Store, id, status, payload)
	} else {
		err = s.stores.SetBurnRequestStatus(asController, c.Store, id, status, payload)
	}
	if err != nil {
		return err
	}
	s.emitRequest(ctx, c.Address, event, id, caller, req.Beneficiary, req.Amount, payload)
	return nil
}

// MintRequest reads a request through the controller's bound store.
func (s *ControllerService) MintRequest(ctx context.Context, controller domain.Account, id int64) (*domain.Request, error) {
	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return nil, err
	}
	return s.stores.MintRequest(ctx, c.Store, id)
}

func (s *ControllerService) BurnRequest(ctx context.Context, controller domain.Account, id int64) (*domain.Request, error) {
	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return nil, err
	}
	return s.stores.BurnRequest(ctx, c.Store, id)
}

func (s *ControllerService) MintRequestCount(ctx context.Context, controller domain.Account) (int64, error) {
	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return 0, err
	}
	return s.stores.MintRequestCount(ctx, c.Store)
}

func (s *ControllerService) BurnRequestCount(ctx context.Context, controller domain.Account) (int64, error) {
	c, err := s.repo.Get(ctx, controller)
	if err != nil {
		return 0, err
	}
	return s.stores.BurnRequestCount(ctx, c.Store)
}

func (s *ControllerService) requireOwner(ctx context.Context, c *domain.Controller) error {
	caller, err := requireCaller(ctx)
	if err != nil {
		return err
	}
	if caller != c.Owner {
		return domain.ErrAuthorization("only the controller owner")
	}
	return nil
}

func (s *ControllerService) requireRole(ctx context.Context, set, msg string) (domain.Account, error) {
	caller, err := requireCaller(ctx)
	if err != nil {
		return domain.ZeroAccount, err
	}
	ok, err := s.caps.IsAuthorized(ctx, set, caller)
	if err != nil {
		return domain.ZeroAccount, err
	}
	if !ok {
		return domain.ZeroAccount, domain.ErrAuthorization("%s", msg)
	}
	return caller, nil
}

// checkFee verifies the requester can cover the fee before any record is
// written.
func (s *ControllerService) checkFee(ctx context.Context, c *domain.Controller, requester domain.Account, fee int64) error {
	if fee == 0 {
		return nil
	}
	balance, err := s.ledgers.BalanceOf(ctx, c.GovernanceLedger, requester)
	if err != nil {
		return err
	}
	if balance < fee {
		return domain.ErrResource("insufficient balance: have %d, need %d", balance, fee)
	}
	allowance, err := s.ledgers.Allowance(ctx, c.GovernanceLedger, requester, c.Address)
	if err != nil {
		return err
	}
	if allowance < fee {
		return domain.ErrResource("insufficient allowance: have %d, need %d", allowance, fee)
	}
	return nil
}

func (s *ControllerService) chargeFee(asController context.Context, c *domain.Controller, requester domain.Account, fee int64) error {
	if fee == 0 {
		return nil
	}
	return s.ledgers.TransferFrom(asController, c.GovernanceLedger, requester, c.FeeBeneficiary, fee)
}

func (s *ControllerService) emitRequest(ctx context.Context, controller domain.Account, name string, id int64, requester, beneficiary domain.Account, amount int64, payload string) {
	_ = s.events.Insert(ctx, &domain.Event{
		Scope:     string(controller),
		Name:      name,
		Account:   requester,
		To:        beneficiary,
		Amount:    amount,
		RequestID: &id,
		Payload:   payload,
	})
}
