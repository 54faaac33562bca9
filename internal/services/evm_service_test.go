package services_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCall(t *testing.T) {
	evmService := services.NewEvmService()
	asset := testContract(t, contracts.SugarFungeAsset, assetAddress)
	factory := testContract(t, contracts.Wrapped1155Factory, factoryAddress)

	t.Run("Build safeTransferFrom", func(t *testing.T) {
		signer := testSigner(t)
		call, err := evmService.BuildCall(services.BuildCallArgs{
			Contract: asset,
			Method:   "safeTransferFrom",
			Args:     []any{accountAddress.Hex(), otherAddress, uint64(1), "100", []byte{0x01}},
			Signer:   signer,
		})
		require.NoError(t, err)

		assert.Equal(t, asset, call.Contract)
		assert.Equal(t, signer, call.Signer)
		// safeTransferFrom(address,address,uint256,uint256,bytes)
		assert.Equal(t, "0xf242432a", hexutil.Encode(call.Data[:4]))
		require.Len(t, call.Args, 5)
		assert.Equal(t, accountAddress, call.Args[0])
		assert.Equal(t, otherAddress, call.Args[1])
		assert.Equal(t, big.NewInt(1), call.Args[2])
		assert.Equal(t, big.NewInt(100), call.Args[3])
	})

	t.Run("Build batch transfer", func(t *testing.T) {
		call, err := evmService.BuildCall(services.BuildCallArgs{
			Contract: asset,
			Method:   "safeBatchTransferFrom",
			Args: []any{
				accountAddress, otherAddress,
				[]*big.Int{big.NewInt(1), big.NewInt(2)},
				[]*big.Int{big.NewInt(10), big.NewInt(20)},
				[]byte{},
			},
		})
		require.NoError(t, err)

		expected, err := asset.ABI.Pack("safeBatchTransferFrom", accountAddress, otherAddress,
			[]*big.Int{big.NewInt(1), big.NewInt(2)},
			[]*big.Int{big.NewInt(10), big.NewInt(20)},
			[]byte{})
		require.NoError(t, err)
		assert.Equal(t, expected, call.Data)
		assert.Nil(t, call.Signer)
	})

	t.Run("Build read only call", func(t *testing.T) {
		call, err := evmService.BuildCall(services.BuildCallArgs{
			Contract: factory,
			Method:   "getWrapped1155",
			Args:     []any{assetAddress, uint64(1), []byte{}},
		})
		require.NoError(t, err)
		assert.Equal(t, factory.ABI.Methods["getWrapped1155"].ID, call.Data[:4])
	})

	t.Run("Unknown method", func(t *testing.T) {
		_, err := evmService.BuildCall(services.BuildCallArgs{
			Contract: asset,
			Method:   "burn",
			Args:     []any{},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "method burn not found")
	})

	t.Run("Wrong argument count", func(t *testing.T) {
		_, err := evmService.BuildCall(services.BuildCallArgs{
			Contract: asset,
			Method:   "mint",
			Args:     []any{accountAddress, uint64(1)},
		})
		assert.Error(t, err)
	})

	t.Run("Invalid argument", func(t *testing.T) {
		_, err := evmService.BuildCall(services.BuildCallArgs{
			Contract: asset,
			Method:   "mint",
			Args:     []any{accountAddress, "not a number", uint64(1), []byte{}},
		})
		assert.Error(t, err)
	})

	t.Run("Missing required fields", func(t *testing.T) {
		_, err := evmService.BuildCall(services.BuildCallArgs{Method: "mint"})
		assert.Error(t, err)

		_, err = evmService.BuildCall(services.BuildCallArgs{Contract: asset})
		assert.Error(t, err)
	})
}

func TestDescribeCall(t *testing.T) {
	evmService := services.NewEvmService()
	asset := testContract(t, contracts.SugarFungeAsset, assetAddress)

	data, err := utils.EncodeAssetData(testData)
	require.NoError(t, err)

	call, err := evmService.BuildCall(services.BuildCallArgs{
		Contract: asset,
		Method:   "mint",
		Args:     []any{accountAddress, uint64(7), uint64(100), data},
	})
	require.NoError(t, err)

	described, err := evmService.DescribeCall(call)
	require.NoError(t, err)
	assert.Equal(t, accountAddress.Hex(), described["account"])
	assert.Equal(t, "7", described["id"])
	assert.Equal(t, "100", described["amount"])
	assert.Equal(t, hexutil.Encode(data), described["data"])

	_, err = evmService.DescribeCall(&services.Call{Contract: asset, Method: "burn"})
	assert.Error(t, err)

	_, err = evmService.DescribeCall(&services.Call{
		Contract: &services.Contract{Name: "Empty", Address: common.Address{}},
		Method:   "mint",
	})
	assert.Error(t, err)
}
