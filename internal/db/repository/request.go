package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"proxymint/internal/domain"
)

// RequestRepo stores request stores and their append-only mint and burn
// request sequences. Ids are dense per store and kind, assigned inside the
// creating transaction.
type RequestRepo struct {
	db *sql.DB
}

func NewRequestRepo(db *sql.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

func (r *RequestRepo) CreateStore(ctx context.Context, s *domain.RequestStore) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO request_stores (address, owner) VALUES (?, ?)`,
		s.Address.String(), s.Owner.String())
	return mapDBError(err)
}

func (r *RequestRepo) GetStore(ctx context.Context, address domain.Account) (*domain.RequestStore, error) {
	var s domain.RequestStore
	var addr, owner string
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT address, owner, created_at FROM request_stores WHERE address = ?`,
		address.String()).Scan(&addr, &owner, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("request store %s not found", address)
	}
	if err != nil {
		return nil, err
	}
	s.Address = domain.Account(addr)
	s.Owner = domain.Account(owner)
	s.CreatedAt = createdAt
	return &s, nil
}

// Create appends a NEW record at the next sequential id and returns the id.
func (r *RequestRepo) Create(ctx context.Context, store domain.Account, kind domain.RequestKind) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var next int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM requests WHERE store = ? AND kind = ?`,
		store.String(), string(kind)).Scan(&next)
	if err != nil {
		return 0, err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO requests (store, kind, id, status) VALUES (?, ?, ?, ?)`,
		store.String(), string(kind), next, string(domain.StatusNew))
	if err != nil {
		return 0, mapDBError(err)
	}
	return next, tx.Commit()
}

func (r *RequestRepo) Get(ctx context.Context, store domain.Account, kind domain.RequestKind, id int64) (*domain.Request, error) {
	var req domain.Request
	var storeCol, kindCol, requester, beneficiary, status string
	err := r.db.QueryRowContext(ctx,
		`SELECT store, kind, id, requester, beneficiary, amount,
		        create_payload, fulfill_payload, cancel_payload, reject_payload,
		        status, created_at, updated_at
		 FROM requests WHERE store = ? AND kind = ? AND id = ?`,
		store.String(), string(kind), id).
		Scan(&storeCol, &kindCol, &req.ID, &requester, &beneficiary, &req.Amount,
			&req.CreatePayload, &req.FulfillPayload, &req.CancelPayload, &req.RejectPayload,
			&status, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrValidation("invalid request: no %s request with id %d", kind, id)
	}
	if err != nil {
		return nil, err
	}
	req.Store = domain.Account(storeCol)
	req.Kind = domain.RequestKind(kindCol)
	req.Requester = domain.Account(requester)
	req.Beneficiary = domain.Account(beneficiary)
	req.Status = domain.RequestStatus(status)
	return &req, nil
}

func (r *RequestRepo) SetDetails(ctx context.Context, store domain.Account, kind domain.RequestKind, id int64, requester, beneficiary domain.Account, amount int64, payload string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE requests
		 SET requester = ?, beneficiary = ?, amount = ?, create_payload = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE store = ? AND kind = ? AND id = ?`,
		requester.String(), beneficiary.String(), amount, payload,
		store.String(), string(kind), id)
	if err != nil {
		return err
	}
	return requireRow(res, kind, id)
}

// SetStatus records a terminal transition, storing the payload in the field
// matching the target status. Status policy is the controller's job; the
// repository stays dumb.
func (r *RequestRepo) SetStatus(ctx context.Context, store domain.Account, kind domain.RequestKind, id int64, status domain.RequestStatus, payload string) error {
	var payloadCol string
	switch status {
	case domain.StatusFulfilled:
		payloadCol = "fulfill_payload"
	case domain.StatusCancelled:
		payloadCol = "cancel_payload"
	case domain.StatusRejected:
		payloadCol = "reject_payload"
	default:
		return domain.ErrValidation("status %q is not a terminal status", status)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE requests SET status = ?, `+payloadCol+` = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE store = ? AND kind = ? AND id = ?`,
		string(status), payload, store.String(), string(kind), id)
	if err != nil {
		return err
	}
	return requireRow(res, kind, id)
}

func (r *RequestRepo) Count(ctx context.Context, store domain.Account, kind domain.RequestKind) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM requests WHERE store = ? AND kind = ?`,
		store.String(), string(kind)).Scan(&n)
	return n, err
}

func requireRow(res sql.Result, kind domain.RequestKind, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrValidation("invalid request: no %s request with id %d", kind, id)
	}
	return nil
}
