package services_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services/mocks"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type WrapperServiceTestSuite struct {
	suite.Suite
	registry *mocks.ContractRegistry
	chain    *mocks.ChainClient
	signer   *services.Signer
	asset    *services.Contract
	factory  *services.Contract
	service  services.WrapperService

	resolved  []string
	submitted []*services.Call
}

func (s *WrapperServiceTestSuite) SetupTest() {
	t := s.T()
	s.registry = &mocks.ContractRegistry{}
	s.chain = &mocks.ChainClient{}
	s.signer = testSigner(t)
	s.asset = testContract(t, contracts.SugarFungeAsset, assetAddress)
	s.factory = testContract(t, contracts.Wrapped1155Factory, factoryAddress)
	s.resolved = nil
	s.submitted = nil

	evm := services.NewEvmService()
	assets := services.NewAssetService(s.registry, evm, s.chain, s.signer, zap.NewNop())
	s.service = services.NewWrapperService(assets, s.registry, evm, s.chain, s.signer, zap.NewNop())
}

func (s *WrapperServiceTestSuite) expectResolve(name string, contract *services.Contract, err error) {
	call := s.registry.On("Resolve", mock.Anything, name).
		Run(func(args mock.Arguments) { s.resolved = append(s.resolved, args.String(1)) })
	if err != nil {
		call.Return(nil, err)
		return
	}
	call.Return(contract, nil)
}

func (s *WrapperServiceTestSuite) expectSubmit(tx *types.Transaction) {
	s.chain.On("Submit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { s.submitted = append(s.submitted, args.Get(1).(*services.Call)) }).
		Return(tx, nil)
}

func (s *WrapperServiceTestSuite) TestWrapTransfersToFactory() {
	s.expectResolve(contracts.Wrapped1155Factory, s.factory, nil)
	s.expectResolve(contracts.SugarFungeAsset, s.asset, nil)
	tx := testTransaction(assetAddress)
	s.expectSubmit(tx)

	result, err := s.service.Wrap(context.Background(), models.Wrap1155{
		From:   accountAddress,
		Amount: 15,
		ID:     7,
		Data:   testData,
	})
	s.Require().NoError(err)
	s.Equal(tx.Hash(), result.Hash)

	s.Require().Len(s.submitted, 1)
	call := s.submitted[0]
	s.Equal("safeTransferFrom", call.Method)
	s.Equal(assetAddress, call.Contract.Address)
	s.Equal(accountAddress, call.Args[0])
	s.Equal(factoryAddress, call.Args[1])
	s.Equal(big.NewInt(7), call.Args[2])
	s.Equal(big.NewInt(15), call.Args[3])
	s.Equal([]string{contracts.Wrapped1155Factory, contracts.SugarFungeAsset}, s.resolved)
}

func (s *WrapperServiceTestSuite) TestBatchWrapTransfersToFactory() {
	s.expectResolve(contracts.Wrapped1155Factory, s.factory, nil)
	s.expectResolve(contracts.SugarFungeAsset, s.asset, nil)
	s.expectSubmit(testTransaction(assetAddress))

	_, err := s.service.BatchWrap(context.Background(), models.BatchWrap1155{
		From:    accountAddress,
		Amounts: []uint64{1, 2},
		IDs:     []uint64{3, 4},
		Data:    []models.AssetData{testData, testData},
	})
	s.Require().NoError(err)

	s.Require().Len(s.submitted, 1)
	s.Equal("safeBatchTransferFrom", s.submitted[0].Method)
	s.Equal(factoryAddress, s.submitted[0].Args[1])
}

func (s *WrapperServiceTestSuite) TestBatchWrapLengthMismatch() {
	_, err := s.service.BatchWrap(context.Background(), models.BatchWrap1155{
		From:    accountAddress,
		Amounts: []uint64{1},
		IDs:     []uint64{3, 4},
		Data:    []models.AssetData{testData, testData},
	})
	s.True(errors.Is(err, apierrors.ErrInvalidRequest))
	s.registry.AssertNotCalled(s.T(), "Resolve", mock.Anything, mock.Anything)
}

func (s *WrapperServiceTestSuite) TestUnwrapWithReceipt() {
	s.expectResolve(contracts.Wrapped1155Factory, s.factory, nil)
	s.expectResolve(contracts.SugarFungeAsset, s.asset, nil)
	tx := testTransaction(factoryAddress)
	s.expectSubmit(tx)
	s.chain.On("Receipt", mock.Anything, tx.Hash()).Return(&types.Receipt{TxHash: tx.Hash(), Status: types.ReceiptStatusSuccessful}, nil)

	result, err := s.service.Unwrap(context.Background(), models.Unwrap1155{
		ID:               7,
		Amount:           5,
		RecipientAddress: otherAddress,
		Data:             testData,
	})
	s.Require().NoError(err)

	s.Equal([]string{contracts.Wrapped1155Factory, contracts.SugarFungeAsset}, s.resolved)
	s.Equal(tx.Hash(), result.Hash)
	s.Require().NotNil(result.To)
	s.Require().NotNil(result.From)
	s.Equal(factoryAddress, *result.To)
	s.Equal(s.signer.Address(), *result.From)

	encoded, err := utils.EncodeAssetData(testData)
	s.Require().NoError(err)

	s.Require().Len(s.submitted, 1)
	call := s.submitted[0]
	s.Equal("unwrap", call.Method)
	s.Equal(factoryAddress, call.Contract.Address)
	s.Equal(s.signer, call.Signer)
	s.Equal([]any{assetAddress, big.NewInt(7), big.NewInt(5), otherAddress, encoded}, call.Args)
}

func (s *WrapperServiceTestSuite) TestUnwrapWithoutReceipt() {
	s.expectResolve(contracts.Wrapped1155Factory, s.factory, nil)
	s.expectResolve(contracts.SugarFungeAsset, s.asset, nil)
	tx := testTransaction(factoryAddress)
	s.expectSubmit(tx)
	s.chain.On("Receipt", mock.Anything, tx.Hash()).Return(nil, services.ErrReceiptUnavailable)

	result, err := s.service.Unwrap(context.Background(), models.Unwrap1155{
		ID:               7,
		Amount:           5,
		RecipientAddress: otherAddress,
		Data:             testData,
	})
	s.Require().NoError(err)
	s.Equal(tx.Hash(), result.Hash)
	s.Nil(result.To)
	s.Nil(result.From)
}

func (s *WrapperServiceTestSuite) TestUnwrapResolutionFailures() {
	tests := []struct {
		name        string
		factoryErr  error
		assetErr    error
		wantResolve []string
	}{
		{
			name:        "factory missing",
			factoryErr:  apierrors.ContractResolution(nil, "not deployed"),
			wantResolve: []string{contracts.Wrapped1155Factory},
		},
		{
			name:        "asset missing",
			assetErr:    apierrors.ContractResolution(nil, "not deployed"),
			wantResolve: []string{contracts.Wrapped1155Factory, contracts.SugarFungeAsset},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.expectResolve(contracts.Wrapped1155Factory, s.factory, tt.factoryErr)
			s.expectResolve(contracts.SugarFungeAsset, s.asset, tt.assetErr)

			_, err := s.service.Unwrap(context.Background(), models.Unwrap1155{
				ID: 1, Amount: 1, RecipientAddress: otherAddress, Data: testData,
			})
			s.True(errors.Is(err, apierrors.ErrContractResolution))
			s.False(errors.Is(err, apierrors.ErrMethod))
			s.Equal(tt.wantResolve, s.resolved)
			s.chain.AssertNotCalled(s.T(), "Submit", mock.Anything, mock.Anything)

			_, err = s.service.GetWrapped(context.Background(), models.GetWrapped1155{ID: 1, Data: testData})
			s.True(errors.Is(err, apierrors.ErrContractResolution))
			s.chain.AssertNotCalled(s.T(), "Evaluate", mock.Anything, mock.Anything)
		})
	}
}

func (s *WrapperServiceTestSuite) TestGetWrappedEvaluatesWithoutSigner() {
	s.expectResolve(contracts.Wrapped1155Factory, s.factory, nil)
	s.expectResolve(contracts.SugarFungeAsset, s.asset, nil)

	var evaluated *services.Call
	s.chain.On("Evaluate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { evaluated = args.Get(1).(*services.Call) }).
		Return([]any{otherAddress}, nil)

	value, err := s.service.GetWrapped(context.Background(), models.GetWrapped1155{ID: 7, Data: testData})
	s.Require().NoError(err)
	s.Equal(otherAddress.Hex(), value)

	s.Require().NotNil(evaluated)
	s.Nil(evaluated.Signer)
	s.Equal("getWrapped1155", evaluated.Method)
	s.Equal(factoryAddress, evaluated.Contract.Address)
	s.Equal(assetAddress, evaluated.Args[0])
	s.Equal(big.NewInt(7), evaluated.Args[1])
	s.Equal([]string{contracts.Wrapped1155Factory, contracts.SugarFungeAsset}, s.resolved)
	s.chain.AssertNotCalled(s.T(), "Submit", mock.Anything, mock.Anything)
}

func (s *WrapperServiceTestSuite) TestGetWrappedEmptyOutput() {
	s.expectResolve(contracts.Wrapped1155Factory, s.factory, nil)
	s.expectResolve(contracts.SugarFungeAsset, s.asset, nil)
	s.chain.On("Evaluate", mock.Anything, mock.Anything).Return([]any{}, nil)

	_, err := s.service.GetWrapped(context.Background(), models.GetWrapped1155{ID: 7, Data: testData})
	s.True(errors.Is(err, apierrors.ErrMethod))
}

func TestWrapperServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WrapperServiceTestSuite))
}

func TestWrapperServiceRequiresFactoryAddressAsTarget(t *testing.T) {
	registry := &mocks.ContractRegistry{}
	assets := &mocks.AssetService{}
	service := services.NewWrapperService(assets, registry, services.NewEvmService(), &mocks.ChainClient{}, testSigner(t), zap.NewNop())

	registry.On("Resolve", mock.Anything, contracts.Wrapped1155Factory).
		Return(testContract(t, contracts.Wrapped1155Factory, factoryAddress), nil)
	assets.On("Transfer", mock.Anything, models.AssetTransfer{
		From:   accountAddress,
		To:     factoryAddress,
		Amount: 15,
		ID:     7,
		Data:   testData,
	}).Return(&models.TransactionResult{}, nil).Once()

	_, err := service.Wrap(context.Background(), models.Wrap1155{From: accountAddress, Amount: 15, ID: 7, Data: testData})
	require.NoError(t, err)
	assets.AssertExpectations(t)
	assert.Len(t, registry.Calls, 1)
}
