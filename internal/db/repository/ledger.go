package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"proxymint/internal/domain"
)

// LedgerRepo stores ledgers, balances, and both allowance dimensions.
// Multi-row mutations run inside a single transaction so a failed
// precondition leaves no partial state.
type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

func (r *LedgerRepo) Create(ctx context.Context, l *domain.Ledger) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ledgers (address, owner, name, symbol, decimals) VALUES (?, ?, ?, ?, ?)`,
		l.Address.String(), l.Owner.String(), l.Name, l.Symbol, l.Decimals)
	return mapDBError(err)
}

func (r *LedgerRepo) GetByAddress(ctx context.Context, address domain.Account) (*domain.Ledger, error) {
	var l domain.Ledger
	var addr, owner string
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT address, owner, name, symbol, decimals, created_at FROM ledgers WHERE address = ?`,
		address.String()).
		Scan(&addr, &owner, &l.Name, &l.Symbol, &l.Decimals, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("ledger %s not found", address)
	}
	if err != nil {
		return nil, err
	}
	l.Address = domain.Account(addr)
	l.Owner = domain.Account(owner)
	l.CreatedAt = createdAt
	return &l, nil
}

func (r *LedgerRepo) BalanceOf(ctx context.Context, ledger, account domain.Account) (int64, error) {
	var amount int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM balances WHERE ledger = ? AND account = ?`,
		ledger.String(), account.String()).Scan(&amount)
	return amount, err
}

// TotalSupply is computed as the sum of all balances, so the supply
// invariant holds by construction.
func (r *LedgerRepo) TotalSupply(ctx context.Context, ledger domain.Account) (int64, error) {
	var amount int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM balances WHERE ledger = ?`,
		ledger.String()).Scan(&amount)
	return amount, err
}

func (r *LedgerRepo) Credit(ctx context.Context, ledger, to domain.Account, amount int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := creditTx(ctx, tx, ledger, to, amount); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *LedgerRepo) Debit(ctx context.Context, ledger, from domain.Account, amount int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := debitTx(ctx, tx, ledger, from, amount); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *LedgerRepo) Transfer(ctx context.Context, ledger, from, to domain.Account, amount int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := debitTx(ctx, tx, ledger, from, amount); err != nil {
		return err
	}
	if err := creditTx(ctx, tx, ledger, to, amount); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *LedgerRepo) TransferFrom(ctx context.Context, ledger, owner, spender, to domain.Account, amount int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	allowance, err := allowanceTx(ctx, tx, "allowances", "spender", ledger, owner, spender)
	if err != nil {
		return 0, err
	}
	if allowance < amount {
		return 0, domain.ErrResource("insufficient allowance: have %d, need %d", allowance, amount)
	}
	if err := debitTx(ctx, tx, ledger, owner, amount); err != nil {
		return 0, err
	}
	if err := creditTx(ctx, tx, ledger, to, amount); err != nil {
		return 0, err
	}
	remaining := allowance - amount
	if err := setAllowanceTx(ctx, tx, "allowances", "spender", ledger, owner, spender, remaining); err != nil {
		return 0, err
	}
	return remaining, tx.Commit()
}

func (r *LedgerRepo) Allowance(ctx context.Context, ledger, owner, spender domain.Account) (int64, error) {
	var amount int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM allowances WHERE ledger = ? AND owner = ? AND spender = ?`,
		ledger.String(), owner.String(), spender.String()).Scan(&amount)
	return amount, err
}

func (r *LedgerRepo) SetAllowance(ctx context.Context, ledger, owner, spender domain.Account, amount int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO allowances (ledger, owner, spender, amount) VALUES (?, ?, ?, ?)
		 ON CONFLICT (ledger, owner, spender) DO UPDATE SET amount = excluded.amount`,
		ledger.String(), owner.String(), spender.String(), amount)
	return err
}

func (r *LedgerRepo) AdjustAllowance(ctx context.Context, ledger, owner, spender domain.Account, delta int64) (int64, error) {
	return r.adjust(ctx, "allowances", "spender", ledger, owner, spender, delta,
		"insufficient allowance")
}

func (r *LedgerRepo) BurnAllowance(ctx context.Context, ledger, owner, burner domain.Account) (int64, error) {
	var amount int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM burn_allowances WHERE ledger = ? AND owner = ? AND burner = ?`,
		ledger.String(), owner.String(), burner.String()).Scan(&amount)
	return amount, err
}

func (r *LedgerRepo) AdjustBurnAllowance(ctx context.Context, ledger, owner, burner domain.Account, delta int64) (int64, error) {
	return r.adjust(ctx, "burn_allowances", "burner", ledger, owner, burner, delta,
		"insufficient burn allowance")
}

func (r *LedgerRepo) BurnFrom(ctx context.Context, ledger, owner, burner domain.Account, amount int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	allowance, err := allowanceTx(ctx, tx, "burn_allowances", "burner", ledger, owner, burner)
	if err != nil {
		return 0, err
	}
	if allowance < amount {
		return 0, domain.ErrResource("not enough burn allowance: have %d, need %d", allowance, amount)
	}
	if err := debitTx(ctx, tx, ledger, owner, amount); err != nil {
		return 0, err
	}
	remaining := allowance - amount
	if err := setAllowanceTx(ctx, tx, "burn_allowances", "burner", ledger, owner, burner, remaining); err != nil {
		return 0, err
	}
	return remaining, tx.Commit()
}

// adjust applies a signed delta to an allowance row, rejecting drops below
// zero.
func (r *LedgerRepo) adjust(ctx context.Context, table, holderCol string, ledger, owner, holder domain.Account, delta int64, shortfall string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	current, err := allowanceTx(ctx, tx, table, holderCol, ledger, owner, holder)
	if err != nil {
		return 0, err
	}
	if delta < 0 && current < -delta {
		return 0, domain.ErrResource("%s: have %d, need %d", shortfall, current, -delta)
	}
	if delta > 0 && current > math.MaxInt64-delta {
		return 0, domain.ErrValidation("allowance overflow")
	}
	next := current + delta
	if err := setAllowanceTx(ctx, tx, table, holderCol, ledger, owner, holder, next); err != nil {
		return 0, err
	}
	return next, tx.Commit()
}

func creditTx(ctx context.Context, tx *sql.Tx, ledger, to domain.Account, amount int64) error {
	var current int64
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM balances WHERE ledger = ? AND account = ?`,
		ledger.String(), to.String()).Scan(&current)
	if err != nil {
		return err
	}
	if current > math.MaxInt64-amount {
		return domain.ErrValidation("balance overflow")
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO balances (ledger, account, amount) VALUES (?, ?, ?)
		 ON CONFLICT (ledger, account) DO UPDATE SET amount = balances.amount + excluded.amount`,
		ledger.String(), to.String(), amount)
	return err
}

func debitTx(ctx context.Context, tx *sql.Tx, ledger, from domain.Account, amount int64) error {
	var current int64
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM balances WHERE ledger = ? AND account = ?`,
		ledger.String(), from.String()).Scan(&current)
	if err != nil {
		return err
	}
	if current < amount {
		return domain.ErrResource("insufficient balance: have %d, need %d", current, amount)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE balances SET amount = amount - ? WHERE ledger = ? AND account = ?`,
		amount, ledger.String(), from.String())
	return err
}

func allowanceTx(ctx context.Context, tx *sql.Tx, table, holderCol string, ledger, owner, holder domain.Account) (int64, error) {
	var amount int64
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM `+table+` WHERE ledger = ? AND owner = ? AND `+holderCol+` = ?`,
		ledger.String(), owner.String(), holder.String()).Scan(&amount)
	return amount, err
}

func setAllowanceTx(ctx context.Context, tx *sql.Tx, table, holderCol string, ledger, owner, holder domain.Account, amount int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO `+table+` (ledger, owner, `+holderCol+`, amount) VALUES (?, ?, ?, ?)
		 ON CONFLICT (ledger, owner, `+holderCol+`) DO UPDATE SET amount = excluded.amount`,
		ledger.String(), owner.String(), holder.String(), amount)
	return err
}
