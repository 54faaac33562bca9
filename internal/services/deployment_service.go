package services

import (
	"errors"
	"fmt"

	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDeploymentNotFound is returned when no address is recorded for a contract on a network
var ErrDeploymentNotFound = errors.New("deployment not found")

// DeploymentService is the directory of deployed contract addresses per network
type DeploymentService interface {
	GetDeployment(name, networkID string) (*models.ContractDeployment, error)
	ListDeployments() ([]models.ContractDeployment, error)
	ListDeploymentsByNetwork(networkID string) ([]models.ContractDeployment, error)
	UpsertDeployment(deployment *models.ContractDeployment) error
	DeleteDeployment(name, networkID string) error
	SeedFromArtifact(artifact *contracts.ContractArtifact, source models.DeploymentSource) (int, error)
}

type deploymentService struct {
	db *gorm.DB
}

// NewDeploymentService creates a new DeploymentService
func NewDeploymentService(db *gorm.DB) DeploymentService {
	return &deploymentService{db: db}
}

// GetDeployment returns the deployment of name on networkID
func (s *deploymentService) GetDeployment(name, networkID string) (*models.ContractDeployment, error) {
	var deployment models.ContractDeployment
	err := s.db.Where("name = ? AND network_id = ?", name, networkID).First(&deployment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s on network %s", ErrDeploymentNotFound, name, networkID)
	}
	if err != nil {
		return nil, err
	}
	return &deployment, nil
}

// ListDeployments returns all deployments
func (s *deploymentService) ListDeployments() ([]models.ContractDeployment, error) {
	var deployments []models.ContractDeployment
	err := s.db.Order("network_id, name").Find(&deployments).Error
	return deployments, err
}

// ListDeploymentsByNetwork returns all deployments on one network
func (s *deploymentService) ListDeploymentsByNetwork(networkID string) ([]models.ContractDeployment, error) {
	var deployments []models.ContractDeployment
	err := s.db.Where("network_id = ?", networkID).Order("name").Find(&deployments).Error
	return deployments, err
}

// UpsertDeployment creates the deployment or replaces the address of an existing one
func (s *deploymentService) UpsertDeployment(deployment *models.ContractDeployment) error {
	if deployment.Name == "" || deployment.NetworkID == "" {
		return fmt.Errorf("deployment name and network id are required")
	}
	address, err := utils.NormalizeAddress(deployment.Address)
	if err != nil {
		return fmt.Errorf("invalid address for %s: %w", deployment.Name, err)
	}
	deployment.Address = address
	if deployment.Source == "" {
		deployment.Source = models.DeploymentSourceManual
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "network_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"address", "source", "updated_at"}),
	}).Create(deployment).Error
}

// DeleteDeployment removes the deployment of name on networkID
func (s *deploymentService) DeleteDeployment(name, networkID string) error {
	result := s.db.Where("name = ? AND network_id = ?", name, networkID).Delete(&models.ContractDeployment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s on network %s", ErrDeploymentNotFound, name, networkID)
	}
	return nil
}

// SeedFromArtifact records every network entry of a truffle artifact, returning how many were written.
// Manually recorded addresses are only replaced by a manual seed.
func (s *deploymentService) SeedFromArtifact(artifact *contracts.ContractArtifact, source models.DeploymentSource) (int, error) {
	count := 0
	for networkID, network := range artifact.Networks {
		if network.Address == "" {
			continue
		}
		if source != models.DeploymentSourceManual {
			existing, err := s.GetDeployment(artifact.ContractName, networkID)
			if err != nil && !errors.Is(err, ErrDeploymentNotFound) {
				return count, err
			}
			if existing != nil && existing.Source == models.DeploymentSourceManual {
				continue
			}
		}
		err := s.UpsertDeployment(&models.ContractDeployment{
			Name:      artifact.ContractName,
			NetworkID: networkID,
			Address:   network.Address,
			Source:    source,
		})
		if err != nil {
			return count, fmt.Errorf("failed to seed %s on network %s: %w", artifact.ContractName, networkID, err)
		}
		count++
	}
	return count, nil
}
