package config

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultListenURL        = ":8080"
	DefaultInfuraNetwork    = "ropsten"
	DefaultCORSOriginPrefix = "http://localhost"
	DefaultLogLevel         = "info"
	DefaultDatabaseFile     = "sugarfunge.db"
)

// Config is built once at startup and never mutated afterwards
type Config struct {
	ListenURL        string `validate:"required"`
	InfuraProjectID  string `validate:"required_without=RPCURLOverride"`
	InfuraNetwork    string `validate:"required"`
	RPCURLOverride   string `validate:"omitempty,url"`
	SignerPrivateKey string `validate:"required"`
	SignerAddress    string `validate:"omitempty,eth_addr"`
	ChainID          uint64 `validate:"required"`
	MoralisBaseURL   string `validate:"omitempty,url"`
	MoralisAPIKey    string
	TestingAddress   string `validate:"omitempty,eth_addr"`

	DatabaseURL  string
	DatabasePath string

	ArtifactsDir          string `validate:"omitempty,dir"`
	AssetContractAddress  string `validate:"omitempty,eth_addr"`
	WrapperFactoryAddress string `validate:"omitempty,eth_addr"`

	LogLevel         string `validate:"oneof=debug info warn error"`
	LogFile          string
	JWTSecret        string
	CORSOriginPrefix string

	signerKey *ecdsa.PrivateKey
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		ListenURL:             getEnv("LISTEN_URL", DefaultListenURL),
		InfuraProjectID:       os.Getenv("INFURA_PROJECT_ID"),
		InfuraNetwork:         getEnv("INFURA_NETWORK", DefaultInfuraNetwork),
		RPCURLOverride:        os.Getenv("RPC_URL"),
		SignerPrivateKey:      os.Getenv("SIGNER_PRIVATE_KEY"),
		SignerAddress:         os.Getenv("SIGNER_ADDRESS"),
		MoralisBaseURL:        os.Getenv("MORALIS_BASE_URL"),
		MoralisAPIKey:         os.Getenv("MORALIS_API_KEY"),
		TestingAddress:        os.Getenv("TESTING_ADDRESS"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		DatabasePath:          os.Getenv("DATABASE_PATH"),
		ArtifactsDir:          os.Getenv("ARTIFACTS_DIR"),
		AssetContractAddress:  os.Getenv("ASSET_CONTRACT_ADDRESS"),
		WrapperFactoryAddress: os.Getenv("WRAPPER_FACTORY_ADDRESS"),
		LogLevel:              strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFile:               os.Getenv("LOG_FILE"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		CORSOriginPrefix:      getEnv("CORS_ORIGIN_PREFIX", DefaultCORSOriginPrefix),
	}

	if raw := os.Getenv("CHAIN_ID"); raw != "" {
		chainID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CHAIN_ID %q: %w", raw, err)
		}
		cfg.ChainID = chainID
	}

	if cfg.DatabaseURL == "" && cfg.DatabasePath == "" {
		homePath, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.DatabasePath = filepath.Join(homePath, DefaultDatabaseFile)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(c.SignerPrivateKey, "0x"))
	if err != nil {
		return fmt.Errorf("invalid SIGNER_PRIVATE_KEY: %w", err)
	}
	c.signerKey = key

	if c.SignerAddress != "" && common.HexToAddress(c.SignerAddress) != c.SignerAddressFromKey() {
		return fmt.Errorf("SIGNER_ADDRESS %s does not match SIGNER_PRIVATE_KEY", c.SignerAddress)
	}
	return nil
}

// RPCURL is the chain endpoint. It embeds the project id, so never log it.
func (c *Config) RPCURL() string {
	if c.RPCURLOverride != "" {
		return c.RPCURLOverride
	}
	return fmt.Sprintf("https://%s.infura.io/v3/%s", c.InfuraNetwork, c.InfuraProjectID)
}

func (c *Config) SignerKey() *ecdsa.PrivateKey {
	return c.signerKey
}

func (c *Config) SignerAddressFromKey() common.Address {
	return crypto.PubkeyToAddress(c.signerKey.PublicKey)
}

func (c *Config) ChainIDBig() *big.Int {
	return new(big.Int).SetUint64(c.ChainID)
}

// NetworkID is the key used for the deployment directory
func (c *Config) NetworkID() string {
	return strconv.FormatUint(c.ChainID, 10)
}

// String omits every secret
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{ListenURL: %s, InfuraNetwork: %s, RPCOverride: %t, Signer: %s, ChainID: %d, MoralisBaseURL: %s, Database: %s, LogLevel: %s, Auth: %t}",
		c.ListenURL, c.InfuraNetwork, c.RPCURLOverride != "", c.SignerAddressFromKey().Hex(), c.ChainID,
		c.MoralisBaseURL, c.databaseKind(), c.LogLevel, c.JWTSecret != "",
	)
}

func (c *Config) databaseKind() string {
	if c.DatabaseURL != "" {
		return "postgres"
	}
	return "sqlite:" + c.DatabasePath
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
