package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proxymint/internal/domain"
)

func TestLedgerService_Create_InitialSupply(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Governance Token", "GOV", 2, 10_000)
	require.NoError(t, err)
	assert.Equal(t, "Governance Token", l.Name)
	assert.Equal(t, "GOV", l.Symbol)
	assert.Equal(t, 2, l.Decimals)

	bal, err := fx.ledgers.BalanceOf(callerCtx(owner), l.Address, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(10_000), bal)

	supply, err := fx.ledgers.TotalSupply(callerCtx(owner), l.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(10_000), supply)
}

func TestLedgerService_Create_DuplicateSymbol(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()

	_, err := fx.ledgers.Create(callerCtx(owner), owner, "Token A", "TKN", 2, 0)
	require.NoError(t, err)

	_, err = fx.ledgers.Create(callerCtx(owner), owner, "Token B", "TKN", 2, 0)
	var stateErr *domain.StateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestLedgerService_Transfer(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	holder := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 1_000)
	require.NoError(t, err)

	require.NoError(t, fx.ledgers.Transfer(callerCtx(owner), l.Address, holder, 300))

	ownerBal, err := fx.ledgers.BalanceOf(callerCtx(owner), l.Address, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(700), ownerBal)

	holderBal, err := fx.ledgers.BalanceOf(callerCtx(owner), l.Address, holder)
	require.NoError(t, err)
	assert.Equal(t, int64(300), holderBal)

	supply, err := fx.ledgers.TotalSupply(callerCtx(owner), l.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000), supply)
}

func TestLedgerService_Transfer_InsufficientBalance(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	holder := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 100)
	require.NoError(t, err)

	err = fx.ledgers.Transfer(callerCtx(owner), l.Address, holder, 101)
	var resErr *domain.ResourceError
	require.ErrorAs(t, err, &resErr)

	bal, err := fx.ledgers.BalanceOf(callerCtx(owner), l.Address, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal)
}

func TestLedgerService_TransferFrom_ConsumesAllowance(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	spender := domain.NewAccount()
	dest := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 1_000)
	require.NoError(t, err)

	require.NoError(t, fx.ledgers.Approve(callerCtx(owner), l.Address, spender, 400))
	require.NoError(t, fx.ledgers.TransferFrom(callerCtx(spender), l.Address, owner, dest, 150))

	remaining, err := fx.ledgers.Allowance(callerCtx(owner), l.Address, owner, spender)
	require.NoError(t, err)
	assert.Equal(t, int64(250), remaining)

	destBal, err := fx.ledgers.BalanceOf(callerCtx(owner), l.Address, dest)
	require.NoError(t, err)
	assert.Equal(t, int64(150), destBal)
}

func TestLedgerService_TransferFrom_ExceedsAllowance(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	spender := domain.NewAccount()
	dest := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 1_000)
	require.NoError(t, err)
	require.NoError(t, fx.ledgers.Approve(callerCtx(owner), l.Address, spender, 100))

	err = fx.ledgers.TransferFrom(callerCtx(spender), l.Address, owner, dest, 101)
	var resErr *domain.ResourceError
	assert.ErrorAs(t, err, &resErr)
}

func TestLedgerService_DecreaseAllowance_Shortfall(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	spender := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 0)
	require.NoError(t, err)
	require.NoError(t, fx.ledgers.IncreaseAllowance(callerCtx(owner), l.Address, spender, 50))

	err = fx.ledgers.DecreaseAllowance(callerCtx(owner), l.Address, spender, 60)
	var resErr *domain.ResourceError
	require.ErrorAs(t, err, &resErr)

	remaining, err := fx.ledgers.Allowance(callerCtx(owner), l.Address, owner, spender)
	require.NoError(t, err)
	assert.Equal(t, int64(50), remaining)
}

func TestLedgerService_Mint_RequiresRole(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	minter := domain.NewAccount()
	dest := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 0)
	require.NoError(t, err)

	err = fx.ledgers.Mint(callerCtx(minter), l.Address, dest, 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sender does not have a minter role")

	require.NoError(t, fx.ledgers.AddMinter(callerCtx(owner), l.Address, minter))
	require.NoError(t, fx.ledgers.Mint(callerCtx(minter), l.Address, dest, 500))

	supply, err := fx.ledgers.TotalSupply(callerCtx(owner), l.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(500), supply)
}

func TestLedgerService_Mint_ZeroAmount(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	minter := domain.NewAccount()
	dest := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 0)
	require.NoError(t, err)
	require.NoError(t, fx.ledgers.AddMinter(callerCtx(owner), l.Address, minter))

	// a zero-amount mint is legal and still leaves a transfer record
	require.NoError(t, fx.ledgers.Mint(callerCtx(minter), l.Address, dest, 0))

	evts, err := fx.events.List(callerCtx(owner), domain.EventFilter{Scope: string(l.Address), Name: domain.EventTransfer})
	require.NoError(t, err)
	require.Len(t, evts, 1)
	assert.Equal(t, int64(0), evts[0].Amount)
}

func TestLedgerService_RenounceMinter(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	minter := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 0)
	require.NoError(t, err)
	require.NoError(t, fx.ledgers.AddMinter(callerCtx(owner), l.Address, minter))
	require.NoError(t, fx.ledgers.RenounceMinter(callerCtx(minter), l.Address))

	ok, err := fx.ledgers.IsMinter(callerCtx(owner), l.Address, minter)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLedgerService_Burn_RequiresRole(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 1_000)
	require.NoError(t, err)

	err = fx.ledgers.Burn(callerCtx(owner), l.Address, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sender does not have a burner role")
}

func TestLedgerService_Burn(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	burner := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 1_000)
	require.NoError(t, err)
	require.NoError(t, fx.ledgers.AddBurner(callerCtx(owner), l.Address, burner))
	require.NoError(t, fx.ledgers.Transfer(callerCtx(owner), l.Address, burner, 400))

	require.NoError(t, fx.ledgers.Burn(callerCtx(burner), l.Address, 250))

	bal, err := fx.ledgers.BalanceOf(callerCtx(owner), l.Address, burner)
	require.NoError(t, err)
	assert.Equal(t, int64(150), bal)

	supply, err := fx.ledgers.TotalSupply(callerCtx(owner), l.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(750), supply)
}

func TestLedgerService_BurnFrom_UsesBurnAllowanceOnly(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	burner := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 1_000)
	require.NoError(t, err)
	require.NoError(t, fx.ledgers.AddBurner(callerCtx(owner), l.Address, burner))

	// a spending allowance alone must not permit burning
	require.NoError(t, fx.ledgers.Approve(callerCtx(owner), l.Address, burner, 500))
	err = fx.ledgers.BurnFrom(callerCtx(burner), l.Address, owner, 100)
	var resErr *domain.ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, err.Error(), "not enough burn allowance")

	require.NoError(t, fx.ledgers.IncreaseBurnAllowance(callerCtx(owner), l.Address, burner, 300))
	require.NoError(t, fx.ledgers.BurnFrom(callerCtx(burner), l.Address, owner, 100))

	remaining, err := fx.ledgers.BurnAllowance(callerCtx(owner), l.Address, owner, burner)
	require.NoError(t, err)
	assert.Equal(t, int64(200), remaining)

	// the spending allowance is untouched by the burn
	spend, err := fx.ledgers.Allowance(callerCtx(owner), l.Address, owner, burner)
	require.NoError(t, err)
	assert.Equal(t, int64(500), spend)

	bal, err := fx.ledgers.BalanceOf(callerCtx(owner), l.Address, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(900), bal)
}

func TestLedgerService_BurnAllowance_ZeroBurner(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()

	l, err := fx.ledgers.Create(callerCtx(owner), owner, "Token", "TKN", 2, 0)
	require.NoError(t, err)

	err = fx.ledgers.IncreaseBurnAllowance(callerCtx(owner), l.Address, domain.ZeroAccount, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid burner address")
}
