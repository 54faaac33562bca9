package models

import "github.com/ethereum/go-ethereum/common"

// Wrap1155 moves tokens from From into the wrapper factory
type Wrap1155 struct {
	From   common.Address
	Amount uint64
	ID     uint64
	Data   AssetData
}

type BatchWrap1155 struct {
	From    common.Address
	Amounts []uint64
	IDs     []uint64
	Data    []AssetData
}

// LengthsMatch reports whether every leg has an id, an amount and metadata
func (b BatchWrap1155) LengthsMatch() bool {
	return batchLengthsMatch(b.Amounts, b.IDs, b.Data)
}

type Unwrap1155 struct {
	ID               uint64
	Amount           uint64
	RecipientAddress common.Address
	Data             AssetData
}

type GetWrapped1155 struct {
	ID   uint64
	Data AssetData
}
