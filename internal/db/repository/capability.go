package repository

import (
	"context"
	"database/sql"
	"errors"

	"proxymint/internal/domain"
)

// CapabilityRepo stores capability sets and their membership.
type CapabilityRepo struct {
	db *sql.DB
}

func NewCapabilityRepo(db *sql.DB) *CapabilityRepo {
	return &CapabilityRepo{db: db}
}

func (r *CapabilityRepo) CreateSet(ctx context.Context, set *domain.CapabilitySet) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO capability_sets (name, owner) VALUES (?, ?)`,
		set.Name, set.Owner.String())
	return mapDBError(err)
}

func (r *CapabilityRepo) GetSet(ctx context.Context, name string) (*domain.CapabilitySet, error) {
	var set domain.CapabilitySet
	var owner string
	err := r.db.QueryRowContext(ctx,
		`SELECT name, owner FROM capability_sets WHERE name = ?`, name).
		Scan(&set.Name, &owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("capability set %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	set.Owner = domain.Account(owner)
	return &set, nil
}

func (r *CapabilityRepo) AddMember(ctx context.Context, set string, account domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO capability_members (set_name, account) VALUES (?, ?)`,
		set, account.String())
	return mapDBError(err)
}

func (r *CapabilityRepo) RemoveMember(ctx context.Context, set string, account domain.Account) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM capability_members WHERE set_name = ? AND account = ?`,
		set, account.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("account is not a member of %q", set)
	}
	return nil
}

func (r *CapabilityRepo) IsMember(ctx context.Context, set string, account domain.Account) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM capability_members WHERE set_name = ? AND account = ?`,
		set, account.String()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
