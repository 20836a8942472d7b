package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proxymint/internal/domain"
)

func TestRequestStoreService_OwnerIsBarred(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()

	store, err := fx.stores.CreateStore(callerCtx(owner), owner)
	require.NoError(t, err)

	_, err = fx.stores.CreateMintRequest(callerCtx(owner), store.Address)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner is not authorized")
}

func TestRequestStoreService_NonWriterIsRejected(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	stranger := domain.NewAccount()

	store, err := fx.stores.CreateStore(callerCtx(owner), owner)
	require.NoError(t, err)

	_, err = fx.stores.CreateMintRequest(callerCtx(stranger), store.Address)
	var authErr *domain.AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, err.Error(), "not authorized")

	n, err := fx.stores.MintRequestCount(callerCtx(owner), store.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRequestStoreService_DenseIDsPerKind(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	writer := domain.NewAccount()

	store, err := fx.stores.CreateStore(callerCtx(owner), owner)
	require.NoError(t, err)
	require.NoError(t, fx.stores.AuthorizeWriter(callerCtx(owner), store.Address, writer))

	// mint and burn requests number independently from zero
	id0, err := fx.stores.CreateMintRequest(callerCtx(writer), store.Address)
	require.NoError(t, err)
	id1, err := fx.stores.CreateMintRequest(callerCtx(writer), store.Address)
	require.NoError(t, err)
	b0, err := fx.stores.CreateBurnRequest(callerCtx(writer), store.Address)
	require.NoError(t, err)

	assert.Equal(t, int64(0), id0)
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(0), b0)

	mints, err := fx.stores.MintRequestCount(callerCtx(owner), store.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(2), mints)

	burns, err := fx.stores.BurnRequestCount(callerCtx(owner), store.Address)
	require.NoError(t, err)
	assert.Equal(t, int64(1), burns)
}

func TestRequestStoreService_SetDetails(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	writer := domain.NewAccount()
	requester := domain.NewAccount()
	beneficiary := domain.NewAccount()

	store, err := fx.stores.CreateStore(callerCtx(owner), owner)
	require.NoError(t, err)
	require.NoError(t, fx.stores.AuthorizeWriter(callerCtx(owner), store.Address, writer))

	id, err := fx.stores.CreateMintRequest(callerCtx(writer), store.Address)
	require.NoError(t, err)
	require.NoError(t, fx.stores.SetMintRequestDetails(callerCtx(writer), store.Address, id, requester, beneficiary, 750, "wire ref 42"))

	req, err := fx.stores.MintRequest(callerCtx(owner), store.Address, id)
	require.NoError(t, err)
	assert.Equal(t, requester, req.Requester)
	assert.Equal(t, beneficiary, req.Beneficiary)
	assert.Equal(t, int64(750), req.Amount)
	assert.Equal(t, "wire ref 42", req.CreatePayload)
	assert.Equal(t, domain.StatusNew, req.Status)
}

func TestRequestStoreService_SetStatus_TerminalOnly(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	writer := domain.NewAccount()

	store, err := fx.stores.CreateStore(callerCtx(owner), owner)
	require.NoError(t, err)
	require.NoError(t, fx.stores.AuthorizeWriter(callerCtx(owner), store.Address, writer))

	id, err := fx.stores.CreateBurnRequest(callerCtx(writer), store.Address)
	require.NoError(t, err)

	err = fx.stores.SetBurnRequestStatus(callerCtx(writer), store.Address, id, domain.StatusNew, "")
	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)

	require.NoError(t, fx.stores.SetBurnRequestStatus(callerCtx(writer), store.Address, id, domain.StatusCancelled, "withdrawn"))

	req, err := fx.stores.BurnRequest(callerCtx(owner), store.Address, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, req.Status)
	assert.Equal(t, "withdrawn", req.CancelPayload)
}

func TestRequestStoreService_GetUnknownID(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()

	store, err := fx.stores.CreateStore(callerCtx(owner), owner)
	require.NoError(t, err)

	_, err = fx.stores.MintRequest(callerCtx(owner), store.Address, 7)
	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestRequestStoreService_DeauthorizeWriter(t *testing.T) {
	fx := newFixture(t)
	owner := domain.NewAccount()
	writer := domain.NewAccount()

	store, err := fx.stores.CreateStore(callerCtx(owner), owner)
	require.NoError(t, err)
	require.NoError(t, fx.stores.AuthorizeWriter(callerCtx(owner), store.Address, writer))
	require.NoError(t, fx.stores.DeauthorizeWriter(callerCtx(owner), store.Address, writer))

	_, err = fx.stores.CreateMintRequest(callerCtx(writer), store.Address)
	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}
