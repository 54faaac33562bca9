package utils

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
)

// assetDataArguments describes the single tuple argument (string name, string symbol, uint256 decimals)
var assetDataArguments = func() abi.Arguments {
	tupleType, err := abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "name", Type: "string"},
		{Name: "symbol", Type: "string"},
		{Name: "decimals", Type: "uint256"},
	})
	if err != nil {
		panic(fmt.Sprintf("invalid asset data tuple: %v", err))
	}
	return abi.Arguments{{Name: "data", Type: tupleType}}
}()

type assetDataTuple struct {
	Name     string
	Symbol   string
	Decimals *big.Int
}

// EncodeAssetData ABI encodes the metadata as one dynamic tuple: a 32 byte
// offset word followed by the tuple body.
func EncodeAssetData(data models.AssetData) ([]byte, error) {
	encoded, err := assetDataArguments.Pack(assetDataTuple{
		Name:     data.Name,
		Symbol:   data.Symbol,
		Decimals: new(big.Int).SetUint64(data.Decimals),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode asset data: %w", err)
	}
	return encoded, nil
}

// EncodeBatchAssetData concatenates the encoding of each element in order.
// An empty list encodes to an empty payload.
func EncodeBatchAssetData(data []models.AssetData) ([]byte, error) {
	var buf bytes.Buffer
	for i, d := range data {
		encoded, err := EncodeAssetData(d)
		if err != nil {
			return nil, fmt.Errorf("failed to encode asset data %d: %w", i, err)
		}
		buf.Write(encoded)
	}
	return buf.Bytes(), nil
}

// DecodeAssetData reverses EncodeAssetData
func DecodeAssetData(encoded []byte) (models.AssetData, error) {
	values, err := assetDataArguments.Unpack(encoded)
	if err != nil {
		return models.AssetData{}, fmt.Errorf("failed to decode asset data: %w", err)
	}
	if len(values) != 1 {
		return models.AssetData{}, fmt.Errorf("expected 1 value, got %d", len(values))
	}

	tuple := *abi.ConvertType(values[0], new(assetDataTuple)).(*assetDataTuple)
	if !tuple.Decimals.IsUint64() {
		return models.AssetData{}, fmt.Errorf("decimals %s does not fit in 64 bits", tuple.Decimals)
	}

	return models.AssetData{
		Name:     tuple.Name,
		Symbol:   tuple.Symbol,
		Decimals: tuple.Decimals.Uint64(),
	}, nil
}
