package services_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/stretchr/testify/require"
)

const (
	testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testChainID    = 31337
)

var (
	assetAddress   = common.HexToAddress("0xAAA0000000000000000000000000000000000001")
	factoryAddress = common.HexToAddress("0xFFF0000000000000000000000000000000000009")
	accountAddress = common.HexToAddress("0xAAA0000000000000000000000000000000000002")
	otherAddress   = common.HexToAddress("0xBBB0000000000000000000000000000000000003")

	testData = models.AssetData{Name: "name", Symbol: "symbol", Decimals: 8}
)

func testSigner(t *testing.T) *services.Signer {
	t.Helper()
	key, err := crypto.HexToECDSA(testPrivateKey)
	require.NoError(t, err)
	return services.NewSigner(key, big.NewInt(testChainID))
}

func testContract(t *testing.T, name string, address common.Address) *services.Contract {
	t.Helper()
	artifact, err := contracts.GetContractArtifact(name)
	require.NoError(t, err)
	parsed, err := artifact.ParsedABI()
	require.NoError(t, err)
	return &services.Contract{Name: name, Address: address, ABI: parsed}
}

func testTransaction(to common.Address) *types.Transaction {
	return types.NewTx(&types.LegacyTx{
		Nonce:    7,
		To:       &to,
		Gas:      100000,
		GasPrice: big.NewInt(1),
		Value:    big.NewInt(0),
	})
}

func ptr[T any](v T) *T {
	return &v
}
