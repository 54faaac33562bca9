package mocks

import (
	"context"
	"encoding/json"

	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/stretchr/testify/mock"
)

// AssetService is a mock of services.AssetService
type AssetService struct {
	mock.Mock
}

var _ services.AssetService = (*AssetService)(nil)

func (m *AssetService) Mint(ctx context.Context, req models.AssetMint) (*models.TransactionResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.TransactionResult)
	return result, args.Error(1)
}

func (m *AssetService) Transfer(ctx context.Context, req models.AssetTransfer) (*models.TransactionResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.TransactionResult)
	return result, args.Error(1)
}

func (m *AssetService) BatchTransfer(ctx context.Context, req models.AssetBatchTransfer) (*models.TransactionResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.TransactionResult)
	return result, args.Error(1)
}

// WrapperService is a mock of services.WrapperService
type WrapperService struct {
	mock.Mock
}

var _ services.WrapperService = (*WrapperService)(nil)

func (m *WrapperService) Wrap(ctx context.Context, req models.Wrap1155) (*models.TransactionResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.TransactionResult)
	return result, args.Error(1)
}

func (m *WrapperService) BatchWrap(ctx context.Context, req models.BatchWrap1155) (*models.TransactionResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.TransactionResult)
	return result, args.Error(1)
}

func (m *WrapperService) Unwrap(ctx context.Context, req models.Unwrap1155) (*models.TransactionResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.TransactionResult)
	return result, args.Error(1)
}

func (m *WrapperService) GetWrapped(ctx context.Context, req models.GetWrapped1155) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MoralisService is a mock of services.MoralisService
type MoralisService struct {
	mock.Mock
}

var _ services.MoralisService = (*MoralisService)(nil)

func (m *MoralisService) raw(args mock.Arguments) (json.RawMessage, error) {
	body, _ := args.Get(0).(json.RawMessage)
	return body, args.Error(1)
}

func (m *MoralisService) GetNFTs(ctx context.Context, q models.AddressQuery) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, q))
}

func (m *MoralisService) GetContractNFTs(ctx context.Context, q models.AccountTokenQuery) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, q))
}

func (m *MoralisService) GetNFTTransfers(ctx context.Context, q models.AddressQuery) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, q))
}

func (m *MoralisService) GetNFTTransfersByBlock(ctx context.Context, q models.BlockQuery) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, q))
}

func (m *MoralisService) GetAllTokenIDs(ctx context.Context, q models.TokenQuery) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, q))
}

func (m *MoralisService) GetContractNFTTransfers(ctx context.Context, q models.TokenQuery) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, q))
}

func (m *MoralisService) GetNFTMetadata(ctx context.Context, q models.TokenQuery) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, q))
}

func (m *MoralisService) GetNFTOwners(ctx context.Context, q models.TokenQuery) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, q))
}

func (m *MoralisService) GetTokenIDMetadata(ctx context.Context, q models.TokenIDQuery) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, q))
}

func (m *MoralisService) GetTokenIDOwners(ctx context.Context, q models.TokenIDQuery) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, q))
}

func (m *MoralisService) GetTransaction(ctx context.Context, q models.TransactionQuery) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, q))
}
