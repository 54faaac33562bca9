package mocks

import (
	"context"

	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/stretchr/testify/mock"
)

// ContractRegistry is a mock of services.ContractRegistry
type ContractRegistry struct {
	mock.Mock
}

var _ services.ContractRegistry = (*ContractRegistry)(nil)

func (m *ContractRegistry) Resolve(ctx context.Context, name string) (*services.Contract, error) {
	args := m.Called(ctx, name)
	contract, _ := args.Get(0).(*services.Contract)
	return contract, args.Error(1)
}

func (m *ContractRegistry) Invalidate() {
	m.Called()
}
