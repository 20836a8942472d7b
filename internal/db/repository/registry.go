package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"proxymint/internal/domain"
)

// RegistryRepo stores token registries and their directory entries.
type RegistryRepo struct {
	db *sql.DB
}

func NewRegistryRepo(db *sql.DB) *RegistryRepo {
	return &RegistryRepo{db: db}
}

func (r *RegistryRepo) CreateRegistry(ctx context.Context, reg *domain.Registry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO registries (address, owner) VALUES (?, ?)`,
		reg.Address.String(), reg.Owner.String())
	return mapDBError(err)
}

func (r *RegistryRepo) GetRegistry(ctx context.Context, address domain.Account) (*domain.Registry, error) {
	var reg domain.Registry
	var addr, owner string
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT address, owner, created_at FROM registries WHERE address = ?`,
		address.String()).Scan(&addr, &owner, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("registry %s not found", address)
	}
	if err != nil {
		return nil, err
	}
	reg.Address = domain.Account(addr)
	reg.Owner = domain.Account(owner)
	reg.CreatedAt = createdAt
	return &reg, nil
}

func (r *RegistryRepo) Insert(ctx context.Context, e *domain.RegistryEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO registry_entries (registry, token_name, ledger, controller) VALUES (?, ?, ?, ?)`,
		e.Registry.String(), e.TokenName, e.Ledger.String(), e.Controller.String())
	return mapDBError(err)
}

func (r *RegistryRepo) Delete(ctx context.Context, registry, ledger domain.Account) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM registry_entries WHERE registry = ? AND ledger = ?`,
		registry.String(), ledger.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("cannot find the registered token address")
	}
	return nil
}

func (r *RegistryRepo) GetByLedger(ctx context.Context, registry, ledger domain.Account) (*domain.RegistryEntry, error) {
	return r.get(ctx,
		`SELECT registry, token_name, ledger, controller, created_at
		 FROM registry_entries WHERE registry = ? AND ledger = ?`,
		registry.String(), ledger.String())
}

func (r *RegistryRepo) GetByName(ctx context.Context, registry domain.Account, name string) (*domain.RegistryEntry, error) {
	return r.get(ctx,
		`SELECT registry, token_name, ledger, controller, created_at
		 FROM registry_entries WHERE registry = ? AND token_name = ?`,
		registry.String(), name)
}

func (r *RegistryRepo) SetController(ctx context.Context, registry, ledger, controller domain.Account) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE registry_entries SET controller = ? WHERE registry = ? AND ledger = ?`,
		controller.String(), registry.String(), ledger.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("cannot find the registered token address")
	}
	return nil
}

func (r *RegistryRepo) get(ctx context.Context, query string, args ...interface{}) (*domain.RegistryEntry, error) {
	var e domain.RegistryEntry
	var registry, ledger, controller string
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&registry, &e.TokenName, &ledger, &controller, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("cannot find the registered token address")
	}
	if err != nil {
		return nil, err
	}
	e.Registry = domain.Account(registry)
	e.Ledger = domain.Account(ledger)
	e.Controller = domain.Account(controller)
	e.CreatedAt = createdAt
	return &e, nil
}
