package models

import "time"

type DeploymentSource string

const (
	DeploymentSourceArtifact DeploymentSource = "artifact"
	DeploymentSourceEnv      DeploymentSource = "env"
	DeploymentSourceManual   DeploymentSource = "manual"
)

// ContractDeployment maps a contract name to its address on one network
type ContractDeployment struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Name      string           `gorm:"not null;uniqueIndex:idx_contract_network" json:"name"`
	NetworkID string           `gorm:"not null;uniqueIndex:idx_contract_network" json:"network_id"`
	Address   string           `gorm:"not null" json:"address"`
	Source    DeploymentSource `gorm:"default:manual" json:"source"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
