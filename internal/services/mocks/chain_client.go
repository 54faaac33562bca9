package mocks

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/stretchr/testify/mock"
)

// ChainClient is a mock of services.ChainClient
type ChainClient struct {
	mock.Mock
}

var _ services.ChainClient = (*ChainClient)(nil)

func (m *ChainClient) ChainID(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	chainID, _ := args.Get(0).(*big.Int)
	return chainID, args.Error(1)
}

func (m *ChainClient) Submit(ctx context.Context, call *services.Call) (*types.Transaction, error) {
	args := m.Called(ctx, call)
	tx, _ := args.Get(0).(*types.Transaction)
	return tx, args.Error(1)
}

func (m *ChainClient) Evaluate(ctx context.Context, call *services.Call) ([]any, error) {
	args := m.Called(ctx, call)
	out, _ := args.Get(0).([]any)
	return out, args.Error(1)
}

func (m *ChainClient) Receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	args := m.Called(ctx, hash)
	receipt, _ := args.Get(0).(*types.Receipt)
	return receipt, args.Error(1)
}

func (m *ChainClient) Close() {
	m.Called()
}
