package models

import "github.com/ethereum/go-ethereum/common"

// AssetData is the per-asset metadata attached to every mint, transfer and wrap
type AssetData struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint64 `json:"decimals"`
}

type AssetMint struct {
	Account common.Address
	Amount  uint64
	ID      uint64
	Data    AssetData
}

type AssetTransfer struct {
	From   common.Address
	To     common.Address
	Amount uint64
	ID     uint64
	Data   AssetData
}

// AssetBatchTransfer describes one leg per index across Amounts, IDs and Data
type AssetBatchTransfer struct {
	From    common.Address
	To      common.Address
	Amounts []uint64
	IDs     []uint64
	Data    []AssetData
}

// LengthsMatch reports whether every leg has an id, an amount and metadata
func (b AssetBatchTransfer) LengthsMatch() bool {
	return batchLengthsMatch(b.Amounts, b.IDs, b.Data)
}

func batchLengthsMatch(amounts, ids []uint64, data []AssetData) bool {
	return len(ids) == len(amounts) && len(amounts) == len(data)
}
