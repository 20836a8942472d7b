package repository

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "proxymint/internal/db"
	"proxymint/internal/domain"
)

func newLedger(t *testing.T, repo *LedgerRepo) *domain.Ledger {
	t.Helper()
	l := &domain.Ledger{
		Address:  domain.NewAccount(),
		Owner:    domain.NewAccount(),
		Name:     "Test Token",
		Symbol:   "TST-" + string(domain.NewAccount())[:8],
		Decimals: 2,
	}
	require.NoError(t, repo.Create(context.Background(), l))
	return l
}

func TestLedgerRepo_CreditDebit(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewLedgerRepo(db)
	ctx := context.Background()
	l := newLedger(t, repo)
	holder := domain.NewAccount()

	require.NoError(t, repo.Credit(ctx, l.Address, holder, 500))

	bal, err := repo.BalanceOf(ctx, l.Address, holder)
	require.NoError(t, err)
	assert.Equal(t, int64(500), bal)

	require.NoError(t, repo.Debit(ctx, l.Address, holder, 200))
	bal, err = repo.BalanceOf(ctx, l.Address, holder)
	require.NoError(t, err)
	assert.Equal(t, int64(300), bal)

	supply, err := repo.TotalSupply(ctx, l.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(300), supply)
}

func TestLedgerRepo_Debit_Insufficient(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewLedgerRepo(db)
	ctx := context.Background()
	l := newLedger(t, repo)
	holder := domain.NewAccount()

	require.NoError(t, repo.Credit(ctx, l.Address, holder, 100))

	err := repo.Debit(ctx, l.Address, holder, 150)
	var resErr *domain.ResourceError
	require.ErrorAs(t, err, &resErr)

	// balance untouched after the failed debit
	bal, err := repo.BalanceOf(ctx, l.Address, holder)
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal)
}

func TestLedgerRepo_Transfer_Atomic(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewLedgerRepo(db)
	ctx := context.Background()
	l := newLedger(t, repo)
	a := domain.NewAccount()
	b := domain.NewAccount()

	require.NoError(t, repo.Credit(ctx, l.Address, a, 100))

	err := repo.Transfer(ctx, l.Address, a, b, 200)
	var resErr *domain.ResourceError
	require.ErrorAs(t, err, &resErr)

	balA, _ := repo.BalanceOf(ctx, l.Address, a)
	balB, _ := repo.BalanceOf(ctx, l.Address, b)
	assert.Equal(t, int64(100), balA)
	assert.Equal(t, int64(0), balB)

	require.NoError(t, repo.Transfer(ctx, l.Address, a, b, 60))
	balA, _ = repo.BalanceOf(ctx, l.Address, a)
	balB, _ = repo.BalanceOf(ctx, l.Address, b)
	assert.Equal(t, int64(40), balA)
	assert.Equal(t, int64(60), balB)
}

func TestLedgerRepo_TransferFrom(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewLedgerRepo(db)
	ctx := context.Background()
	l := newLedger(t, repo)
	owner := domain.NewAccount()
	spender := domain.NewAccount()
	dest := domain.NewAccount()

	require.NoError(t, repo.Credit(ctx, l.Address, owner, 1_000))
	require.NoError(t, repo.SetAllowance(ctx, l.Address, owner, spender, 400))

	remaining, err := repo.TransferFrom(ctx, l.Address, owner, spender, dest, 150)
	require.NoError(t, err)
	assert.Equal(t, int64(250), remaining)

	_, err = repo.TransferFrom(ctx, l.Address, owner, spender, dest, 300)
	var resErr *domain.ResourceError
	require.ErrorAs(t, err, &resErr)

	// allowance unchanged after the failed spend
	allowance, err := repo.Allowance(ctx, l.Address, owner, spender)
	require.NoError(t, err)
	assert.Equal(t, int64(250), allowance)
}

func TestLedgerRepo_BurnDimensionIsSeparate(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewLedgerRepo(db)
	ctx := context.Background()
	l := newLedger(t, repo)
	owner := domain.NewAccount()
	burner := domain.NewAccount()

	require.NoError(t, repo.Credit(ctx, l.Address, owner, 1_000))
	require.NoError(t, repo.SetAllowance(ctx, l.Address, owner, burner, 500))

	// spending allowance does not permit burning
	_, err := repo.BurnFrom(ctx, l.Address, owner, burner, 100)
	var resErr *domain.ResourceError
	require.ErrorAs(t, err, &resErr)

	_, err = repo.AdjustBurnAllowance(ctx, l.Address, owner, burner, 300)
	require.NoError(t, err)

	remaining, err := repo.BurnFrom(ctx, l.Address, owner, burner, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(200), remaining)

	// spending allowance untouched
	allowance, err := repo.Allowance(ctx, l.Address, owner, burner)
	require.NoError(t, err)
	assert.Equal(t, int64(500), allowance)

	supply, err := repo.TotalSupply(ctx, l.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(900), supply)
}

func TestLedgerRepo_AdjustAllowance_Shortfall(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewLedgerRepo(db)
	ctx := context.Background()
	l := newLedger(t, repo)
	owner := domain.NewAccount()
	spender := domain.NewAccount()

	remaining, err := repo.AdjustAllowance(ctx, l.Address, owner, spender, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), remaining)

	_, err = repo.AdjustAllowance(ctx, l.Address, owner, spender, -60)
	var resErr *domain.ResourceError
	require.ErrorAs(t, err, &resErr)
}

func TestLedgerRepo_DuplicateSymbol(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewLedgerRepo(db)
	ctx := context.Background()

	l := &domain.Ledger{Address: domain.NewAccount(), Owner: domain.NewAccount(), Name: "A", Symbol: "DUP", Decimals: 2}
	require.NoError(t, repo.Create(ctx, l))

	dup := &domain.Ledger{Address: domain.NewAccount(), Owner: domain.NewAccount(), Name: "B", Symbol: "DUP", Decimals: 2}
	err := repo.Create(ctx, dup)
	var stateErr *domain.StateError
	assert.ErrorAs(t, err, &stateErr)
}
