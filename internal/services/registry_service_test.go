package services_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type RegistryTestSuite struct {
	suite.Suite
	db          services.DBService
	deployments services.DeploymentService
	chain       *mocks.ChainClient
	registry    services.ContractRegistry
}

func (s *RegistryTestSuite) SetupTest() {
	db, err := services.NewSqliteDBService(":memory:")
	s.Require().NoError(err)
	s.db = db
	s.deployments = services.NewDeploymentService(db.GetDB())
	s.chain = &mocks.ChainClient{}

	registry, err := services.NewContractRegistry(s.chain, s.deployments, zap.NewNop())
	s.Require().NoError(err)
	s.registry = registry

	s.Require().NoError(s.deployments.UpsertDeployment(&models.ContractDeployment{
		Name:      contracts.SugarFungeAsset,
		NetworkID: "31337",
		Address:   assetAddress.Hex(),
	}))
}

func (s *RegistryTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *RegistryTestSuite) TestResolve() {
	s.chain.On("ChainID", mock.Anything).Return(big.NewInt(testChainID), nil)

	contract, err := s.registry.Resolve(context.Background(), contracts.SugarFungeAsset)
	s.Require().NoError(err)
	s.Equal(contracts.SugarFungeAsset, contract.Name)
	s.Equal(assetAddress, contract.Address)
	s.Contains(contract.ABI.Methods, "mint")
}

func (s *RegistryTestSuite) TestResolveIsCached() {
	s.chain.On("ChainID", mock.Anything).Return(big.NewInt(testChainID), nil)

	_, err := s.registry.Resolve(context.Background(), contracts.SugarFungeAsset)
	s.Require().NoError(err)

	s.Require().NoError(s.deployments.DeleteDeployment(contracts.SugarFungeAsset, "31337"))

	contract, err := s.registry.Resolve(context.Background(), contracts.SugarFungeAsset)
	s.Require().NoError(err)
	s.Equal(assetAddress, contract.Address)

	s.registry.Invalidate()
	_, err = s.registry.Resolve(context.Background(), contracts.SugarFungeAsset)
	s.True(errors.Is(err, apierrors.ErrContractResolution))
}

func (s *RegistryTestSuite) TestResolveConcurrently() {
	s.chain.On("ChainID", mock.Anything).Return(big.NewInt(testChainID), nil)

	var wg sync.WaitGroup
	results := make([]*services.Contract, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			contract, err := s.registry.Resolve(context.Background(), contracts.SugarFungeAsset)
			if err == nil {
				results[i] = contract
			}
		}(i)
	}
	wg.Wait()

	for _, contract := range results {
		s.Require().NotNil(contract)
		s.Equal(assetAddress, contract.Address)
	}
}

func (s *RegistryTestSuite) TestResolveMissingDeployment() {
	s.chain.On("ChainID", mock.Anything).Return(big.NewInt(testChainID), nil)

	_, err := s.registry.Resolve(context.Background(), contracts.Wrapped1155Factory)
	s.True(errors.Is(err, apierrors.ErrContractResolution))
	s.True(errors.Is(err, services.ErrDeploymentNotFound))
}

func (s *RegistryTestSuite) TestResolveOtherNetwork() {
	s.chain.On("ChainID", mock.Anything).Return(big.NewInt(1), nil)

	_, err := s.registry.Resolve(context.Background(), contracts.SugarFungeAsset)
	s.True(errors.Is(err, apierrors.ErrContractResolution))
}

func (s *RegistryTestSuite) TestResolveUnknownContract() {
	_, err := s.registry.Resolve(context.Background(), "ERC20")
	s.True(errors.Is(err, apierrors.ErrContractResolution))
	s.chain.AssertNotCalled(s.T(), "ChainID", mock.Anything)
}

func (s *RegistryTestSuite) TestResolveChainIDFailures() {
	s.Run("transport error is kept", func() {
		s.chain = &mocks.ChainClient{}
		registry, err := services.NewContractRegistry(s.chain, s.deployments, zap.NewNop())
		s.Require().NoError(err)
		s.chain.On("ChainID", mock.Anything).Return(nil, apierrors.Transport(errors.New("dial tcp: refused"), "unreachable"))

		_, err = registry.Resolve(context.Background(), contracts.SugarFungeAsset)
		s.True(errors.Is(err, apierrors.ErrTransport))
	})

	s.Run("other errors become resolution errors", func() {
		s.chain = &mocks.ChainClient{}
		registry, err := services.NewContractRegistry(s.chain, s.deployments, zap.NewNop())
		s.Require().NoError(err)
		s.chain.On("ChainID", mock.Anything).Return(nil, apierrors.Method(errors.New("method not found"), "rejected"))

		_, err = registry.Resolve(context.Background(), contracts.SugarFungeAsset)
		s.True(errors.Is(err, apierrors.ErrContractResolution))
	})
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}
