package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/sugarfunge-integration/internal/config"
	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"go.uber.org/zap"
)

// Services holds every long lived component built from the configuration
type Services struct {
	DB          services.DBService
	Deployments services.DeploymentService
	Chain       services.ChainClient
	Registry    services.ContractRegistry
	Evm         services.EvmService
	Assets      services.AssetService
	Wrappers    services.WrapperService
	Moralis     services.MoralisService
	Signer      *services.Signer
}

// Close releases the chain connection and the database
func (s *Services) Close() error {
	if s.Chain != nil {
		s.Chain.Close()
	}
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// InitializeDeployments opens the database and seeds the deployment directory
func InitializeDeployments(cfg *config.Config, logger *zap.Logger) (services.DBService, services.DeploymentService, error) {
	dbService, err := services.NewDBService(cfg.DatabaseURL, cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deploymentService := services.NewDeploymentService(dbService.GetDB())
	if err := SeedDeployments(cfg, deploymentService, logger); err != nil {
		dbService.Close()
		return nil, nil, err
	}
	return dbService, deploymentService, nil
}

// InitializeServices wires the flows on top of the deployment directory.
// Nothing is dialed here; the chain client connects on first use.
func InitializeServices(cfg *config.Config, logger *zap.Logger) (*Services, error) {
	dbService, deploymentService, err := InitializeDeployments(cfg, logger)
	if err != nil {
		return nil, err
	}

	chainClient := services.NewChainClient(cfg.RPCURL(), logger)
	registry, err := services.NewContractRegistry(chainClient, deploymentService, logger)
	if err != nil {
		dbService.Close()
		return nil, fmt.Errorf("failed to initialize contract registry: %w", err)
	}

	evmService := services.NewEvmService()
	signer := services.NewSigner(cfg.SignerKey(), cfg.ChainIDBig())
	assetService := services.NewAssetService(registry, evmService, chainClient, signer, logger)
	wrapperService := services.NewWrapperService(assetService, registry, evmService, chainClient, signer, logger)
	moralisService := services.NewMoralisService(cfg.MoralisBaseURL, cfg.MoralisAPIKey, logger)

	return &Services{
		DB:          dbService,
		Deployments: deploymentService,
		Chain:       chainClient,
		Registry:    registry,
		Evm:         evmService,
		Assets:      assetService,
		Wrappers:    wrapperService,
		Moralis:     moralisService,
		Signer:      signer,
	}, nil
}

// SeedDeployments loads the artifacts' network maps into the directory, then
// applies the address overrides from the environment for the configured network.
// Network maps from ARTIFACTS_DIR take precedence over the embedded ones.
func SeedDeployments(cfg *config.Config, deploymentService services.DeploymentService, logger *zap.Logger) error {
	for _, name := range contracts.Names() {
		artifact, err := loadArtifact(cfg.ArtifactsDir, name)
		if err != nil {
			return err
		}

		count, err := deploymentService.SeedFromArtifact(artifact, models.DeploymentSourceArtifact)
		if err != nil {
			return fmt.Errorf("failed to seed %s deployments: %w", name, err)
		}
		logger.Debug("Seeded deployments from artifact", zap.String("contract", name), zap.Int("networks", count))
	}

	overrides := map[string]string{
		contracts.SugarFungeAsset:    cfg.AssetContractAddress,
		contracts.Wrapped1155Factory: cfg.WrapperFactoryAddress,
	}
	for name, address := range overrides {
		if address == "" {
			continue
		}
		err := deploymentService.UpsertDeployment(&models.ContractDeployment{
			Name:      name,
			NetworkID: cfg.NetworkID(),
			Address:   address,
			Source:    models.DeploymentSourceEnv,
		})
		if err != nil {
			return fmt.Errorf("failed to apply %s address override: %w", name, err)
		}
		logger.Info("Using contract address from environment",
			zap.String("contract", name),
			zap.String("network", cfg.NetworkID()),
			zap.String("address", address),
		)
	}
	return nil
}

func loadArtifact(dir, name string) (*contracts.ContractArtifact, error) {
	if dir != "" {
		path := filepath.Join(dir, name+".json")
		artifact, err := contracts.LoadArtifactFile(path)
		if err == nil {
			return artifact, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return contracts.GetContractArtifact(name)
}
