package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultRegistryCacheSize = 64

// ContractRegistry resolves a contract name to a handle on the active network
type ContractRegistry interface {
	Resolve(ctx context.Context, name string) (*Contract, error)
	// Invalidate drops cached addresses, e.g. after the directory changed
	Invalidate()
}

type registryService struct {
	chain       ChainClient
	deployments DeploymentService
	abis        map[string]abi.ABI
	cache       *lru.Cache
	group       singleflight.Group
	logger      *zap.Logger
}

// NewContractRegistry parses the ABI of every known contract up front
func NewContractRegistry(chain ChainClient, deployments DeploymentService, logger *zap.Logger) (ContractRegistry, error) {
	abis := make(map[string]abi.ABI)
	for _, name := range contracts.Names() {
		artifact, err := contracts.GetContractArtifact(name)
		if err != nil {
			return nil, err
		}
		parsed, err := artifact.ParsedABI()
		if err != nil {
			return nil, err
		}
		abis[name] = parsed
	}

	cache, err := lru.New(defaultRegistryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry cache: %w", err)
	}

	return &registryService{
		chain:       chain,
		deployments: deployments,
		abis:        abis,
		cache:       cache,
		logger:      logger,
	}, nil
}

func (r *registryService) Resolve(ctx context.Context, name string) (*Contract, error) {
	parsedABI, ok := r.abis[name]
	if !ok {
		return nil, apierrors.ContractResolution(nil, "Unknown contract %s", name)
	}

	chainID, err := r.chain.ChainID(ctx)
	if err != nil {
		if errors.Is(err, apierrors.ErrTransport) {
			return nil, err
		}
		return nil, apierrors.ContractResolution(err, "Failed to determine the network of %s", name)
	}
	networkID := chainID.String()
	key := name + "@" + networkID

	if cached, ok := r.cache.Get(key); ok {
		return cached.(*Contract), nil
	}

	value, err, _ := r.group.Do(key, func() (interface{}, error) {
		deployment, err := r.deployments.GetDeployment(name, networkID)
		if err != nil {
			return nil, err
		}

		contract := &Contract{
			Name:    name,
			Address: common.HexToAddress(deployment.Address),
			ABI:     parsedABI,
		}
		r.cache.Add(key, contract)
		r.logger.Debug("Contract resolved",
			zap.String("contract", name),
			zap.String("network", networkID),
			zap.String("address", contract.Address.Hex()),
		)
		return contract, nil
	})
	if err != nil {
		return nil, apierrors.ContractResolution(err, "Contract %s is not deployed on network %s", name, networkID)
	}
	return value.(*Contract), nil
}

func (r *registryService) Invalidate() {
	r.cache.Purge()
}
