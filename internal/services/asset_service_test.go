package services_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services/mocks"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type assetFixture struct {
	registry *mocks.ContractRegistry
	chain    *mocks.ChainClient
	signer   *services.Signer
	service  services.AssetService
}

func newAssetFixture(t *testing.T) *assetFixture {
	f := &assetFixture{
		registry: &mocks.ContractRegistry{},
		chain:    &mocks.ChainClient{},
		signer:   testSigner(t),
	}
	f.service = services.NewAssetService(f.registry, services.NewEvmService(), f.chain, f.signer, zap.NewNop())
	return f
}

func TestAssetServiceMint(t *testing.T) {
	f := newAssetFixture(t)
	asset := testContract(t, contracts.SugarFungeAsset, assetAddress)
	tx := testTransaction(assetAddress)

	f.registry.On("Resolve", mock.Anything, contracts.SugarFungeAsset).Return(asset, nil).Once()

	var submitted *services.Call
	f.chain.On("Submit", mock.Anything, mock.AnythingOfType("*services.Call")).
		Run(func(args mock.Arguments) { submitted = args.Get(1).(*services.Call) }).
		Return(tx, nil).Once()

	result, err := f.service.Mint(context.Background(), models.AssetMint{
		Account: accountAddress,
		Amount:  50,
		ID:      3,
		Data:    testData,
	})
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), result.Hash)
	assert.Nil(t, result.To)
	assert.Nil(t, result.From)

	encoded, err := utils.EncodeAssetData(testData)
	require.NoError(t, err)

	require.NotNil(t, submitted)
	assert.Equal(t, "mint", submitted.Method)
	assert.Equal(t, assetAddress, submitted.Contract.Address)
	assert.Equal(t, f.signer, submitted.Signer)
	assert.Equal(t, []any{accountAddress, big.NewInt(3), big.NewInt(50), encoded}, submitted.Args)

	f.registry.AssertExpectations(t)
	f.chain.AssertExpectations(t)
}

func TestAssetServiceTransfer(t *testing.T) {
	f := newAssetFixture(t)
	asset := testContract(t, contracts.SugarFungeAsset, assetAddress)

	f.registry.On("Resolve", mock.Anything, contracts.SugarFungeAsset).Return(asset, nil)

	var submitted *services.Call
	f.chain.On("Submit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { submitted = args.Get(1).(*services.Call) }).
		Return(testTransaction(assetAddress), nil)

	_, err := f.service.Transfer(context.Background(), models.AssetTransfer{
		From:   accountAddress,
		To:     otherAddress,
		Amount: 10,
		ID:     1,
		Data:   testData,
	})
	require.NoError(t, err)

	require.NotNil(t, submitted)
	assert.Equal(t, "safeTransferFrom", submitted.Method)
	assert.Equal(t, accountAddress, submitted.Args[0])
	assert.Equal(t, otherAddress, submitted.Args[1])
	assert.Equal(t, big.NewInt(1), submitted.Args[2])
	assert.Equal(t, big.NewInt(10), submitted.Args[3])
}

func TestAssetServiceBatchTransfer(t *testing.T) {
	t.Run("encodes every leg", func(t *testing.T) {
		f := newAssetFixture(t)
		asset := testContract(t, contracts.SugarFungeAsset, assetAddress)
		data := []models.AssetData{testData, {Name: "other", Symbol: "OTH", Decimals: 0}}

		f.registry.On("Resolve", mock.Anything, contracts.SugarFungeAsset).Return(asset, nil)

		var submitted *services.Call
		f.chain.On("Submit", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { submitted = args.Get(1).(*services.Call) }).
			Return(testTransaction(assetAddress), nil)

		_, err := f.service.BatchTransfer(context.Background(), models.AssetBatchTransfer{
			From:    accountAddress,
			To:      otherAddress,
			Amounts: []uint64{10, 20},
			IDs:     []uint64{1, 2},
			Data:    data,
		})
		require.NoError(t, err)

		encoded, err := utils.EncodeBatchAssetData(data)
		require.NoError(t, err)

		require.NotNil(t, submitted)
		assert.Equal(t, "safeBatchTransferFrom", submitted.Method)
		assert.Equal(t, []*big.Int{big.NewInt(1), big.NewInt(2)}, submitted.Args[2])
		assert.Equal(t, []*big.Int{big.NewInt(10), big.NewInt(20)}, submitted.Args[3])
		assert.Equal(t, encoded, submitted.Args[4])
	})

	t.Run("length mismatch is rejected before resolution", func(t *testing.T) {
		f := newAssetFixture(t)

		_, err := f.service.BatchTransfer(context.Background(), models.AssetBatchTransfer{
			From:    accountAddress,
			To:      otherAddress,
			Amounts: []uint64{10, 20},
			IDs:     []uint64{1, 2},
			Data:    []models.AssetData{testData},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apierrors.ErrInvalidRequest))

		f.registry.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
		f.chain.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})
}

func TestAssetServiceErrors(t *testing.T) {
	req := models.AssetMint{Account: accountAddress, Amount: 1, ID: 1, Data: testData}

	t.Run("resolution failure", func(t *testing.T) {
		f := newAssetFixture(t)
		f.registry.On("Resolve", mock.Anything, contracts.SugarFungeAsset).
			Return(nil, apierrors.ContractResolution(nil, "not deployed"))

		_, err := f.service.Mint(context.Background(), req)
		assert.True(t, errors.Is(err, apierrors.ErrContractResolution))
		f.chain.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("node rejection", func(t *testing.T) {
		f := newAssetFixture(t)
		f.registry.On("Resolve", mock.Anything, contracts.SugarFungeAsset).
			Return(testContract(t, contracts.SugarFungeAsset, assetAddress), nil)
		f.chain.On("Submit", mock.Anything, mock.Anything).
			Return(nil, apierrors.Method(errors.New("execution reverted"), "Failed to submit"))

		_, err := f.service.Mint(context.Background(), req)
		assert.True(t, errors.Is(err, apierrors.ErrMethod))
	})

	t.Run("unreachable node", func(t *testing.T) {
		f := newAssetFixture(t)
		f.registry.On("Resolve", mock.Anything, contracts.SugarFungeAsset).
			Return(testContract(t, contracts.SugarFungeAsset, assetAddress), nil)
		f.chain.On("Submit", mock.Anything, mock.Anything).
			Return(nil, apierrors.Transport(errors.New("connection refused"), "Failed to submit"))

		_, err := f.service.Mint(context.Background(), req)
		assert.True(t, errors.Is(err, apierrors.ErrTransport))
	})
}

func TestAssetServiceLogsSubmittedCall(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	registry := &mocks.ContractRegistry{}
	chain := &mocks.ChainClient{}
	service := services.NewAssetService(registry, services.NewEvmService(), chain, testSigner(t), zap.New(core))

	tx := testTransaction(assetAddress)
	registry.On("Resolve", mock.Anything, contracts.SugarFungeAsset).
		Return(testContract(t, contracts.SugarFungeAsset, assetAddress), nil)
	chain.On("Submit", mock.Anything, mock.Anything).Return(tx, nil)

	_, err := service.Mint(context.Background(), models.AssetMint{
		Account: accountAddress,
		Amount:  50,
		ID:      3,
		Data:    testData,
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("Call submitted").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, contracts.SugarFungeAsset, fields["contract"])
	assert.Equal(t, "mint", fields["method"])
	assert.Equal(t, tx.Hash().Hex(), fields["tx"])

	var args map[string]string
	for _, field := range entries[0].Context {
		if field.Key == "args" {
			args, _ = field.Interface.(map[string]string)
		}
	}
	require.NotNil(t, args)
	assert.Equal(t, accountAddress.Hex(), args["account"])
	assert.Equal(t, "3", args["id"])
	assert.Equal(t, "50", args["amount"])
}
