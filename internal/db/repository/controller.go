package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"proxymint/internal/domain"
)

// ControllerRepo stores controller configuration rows.
type ControllerRepo struct {
	db *sql.DB
}

func NewControllerRepo(db *sql.DB) *ControllerRepo {
	return &ControllerRepo{db: db}
}

func (r *ControllerRepo) Create(ctx context.Context, c *domain.Controller) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO controllers
		 (address, owner, proxy_ledger, governance_ledger, store, fee_beneficiary, mint_fee, burn_fee)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Address.String(), c.Owner.String(), c.ProxyLedger.String(),
		c.GovernanceLedger.String(), c.Store.String(), c.FeeBeneficiary.String(),
		c.MintFee, c.BurnFee)
	return mapDBError(err)
}

func (r *ControllerRepo) Get(ctx context.Context, address domain.Account) (*domain.Controller, error) {
	var c domain.Controller
	var addr, owner, proxy, gov, store, beneficiary string
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT address, owner, proxy_ledger, governance_ledger, store, fee_beneficiary,
		        mint_fee, burn_fee, created_at
		 FROM controllers WHERE address = ?`, address.String()).
		Scan(&addr, &owner, &proxy, &gov, &store, &beneficiary,
			&c.MintFee, &c.BurnFee, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("controller %s not found", address)
	}
	if err != nil {
		return nil, err
	}
	c.Address = domain.Account(addr)
	c.Owner = domain.Account(owner)
	c.ProxyLedger = domain.Account(proxy)
	c.GovernanceLedger = domain.Account(gov)
	c.Store = domain.Account(store)
	c.FeeBeneficiary = domain.Account(beneficiary)
	c.CreatedAt = createdAt
	return &c, nil
}

func (r *ControllerRepo) SetMintFee(ctx context.Context, address domain.Account, amount int64) error {
	return r.update(ctx, address, `UPDATE controllers SET mint_fee = ? WHERE address = ?`, amount)
}

func (r *ControllerRepo) SetBurnFee(ctx context.Context, address domain.Account, amount int64) error {
	return r.update(ctx, address, `UPDATE controllers SET burn_fee = ? WHERE address = ?`, amount)
}

func (r *ControllerRepo) SetFeeBeneficiary(ctx context.Context, address domain.Account, beneficiary domain.Account) error {
	return r.update(ctx, address, `UPDATE controllers SET fee_beneficiary = ? WHERE address = ?`, beneficiary.String())
}

func (r *ControllerRepo) update(ctx context.Context, address domain.Account, query string, value interface{}) error {
	res, err := r.db.ExecContext(ctx, query, value, address.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("controller %s not found", address)
	}
	return nil
}
