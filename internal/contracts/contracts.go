package contracts

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	// SugarFungeAsset is the ERC-1155 multi-token asset contract
	SugarFungeAsset = "SugarFungeAsset"
	// Wrapped1155Factory wraps SugarFungeAsset tokens into ERC-20s
	Wrapped1155Factory = "Wrapped1155Factory"
)

//go:embed artifacts/SugarFungeAsset.json
var sugarFungeAssetJSON []byte

//go:embed artifacts/Wrapped1155Factory.json
var wrapped1155FactoryJSON []byte

// NetworkDeployment is a single entry of a truffle artifact's "networks" map
type NetworkDeployment struct {
	Address         string `json:"address"`
	TransactionHash string `json:"transactionHash,omitempty"`
}

// ContractArtifact represents a truffle contract artifact
type ContractArtifact struct {
	ContractName string                       `json:"contractName"`
	ABI          json.RawMessage              `json:"abi"`
	Networks     map[string]NetworkDeployment `json:"networks"`
}

// ParsedABI parses the artifact's ABI
func (a *ContractArtifact) ParsedABI() (abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse %s ABI: %w", a.ContractName, err)
	}
	return parsed, nil
}

// Names returns the names of all known contracts
func Names() []string {
	return []string{SugarFungeAsset, Wrapped1155Factory}
}

// GetContractArtifact returns the embedded contract artifact by name
func GetContractArtifact(name string) (*ContractArtifact, error) {
	switch name {
	case SugarFungeAsset:
		return parseArtifact(name, sugarFungeAssetJSON)
	case Wrapped1155Factory:
		return parseArtifact(name, wrapped1155FactoryJSON)
	default:
		return nil, fmt.Errorf("unknown contract: %s", name)
	}
}

// LoadArtifactFile loads a truffle artifact from disk, e.g. build/contracts/SugarFungeAsset.json
func LoadArtifactFile(path string) (*ContractArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]
	return parseArtifact(name, data)
}

func parseArtifact(name string, data []byte) (*ContractArtifact, error) {
	var artifact ContractArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s artifact: %w", name, err)
	}
	if artifact.ContractName == "" {
		artifact.ContractName = name
	}
	return &artifact, nil
}
