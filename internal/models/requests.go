package models

import "github.com/ethereum/go-ethereum/common"

// Request bodies as received over HTTP and MCP. Numeric and metadata fields
// are pointers so that a missing field fails validation instead of
// defaulting to zero.

type AssetDataRequest struct {
	Name     *string `json:"name" validate:"required"`
	Symbol   *string `json:"symbol" validate:"required"`
	Decimals *uint64 `json:"decimals" validate:"required"`
}

func (r *AssetDataRequest) ToModel() AssetData {
	return AssetData{Name: *r.Name, Symbol: *r.Symbol, Decimals: *r.Decimals}
}

func assetDataList(in []AssetDataRequest) []AssetData {
	out := make([]AssetData, len(in))
	for i := range in {
		out[i] = in[i].ToModel()
	}
	return out
}

type MintRequest struct {
	Account string            `json:"account" validate:"required,eth_addr"`
	Amount  *uint64           `json:"amount" validate:"required"`
	ID      *uint64           `json:"id" validate:"required"`
	Data    *AssetDataRequest `json:"data" validate:"required"`
}

func (r *MintRequest) ToModel() AssetMint {
	return AssetMint{
		Account: common.HexToAddress(r.Account),
		Amount:  *r.Amount,
		ID:      *r.ID,
		Data:    r.Data.ToModel(),
	}
}

type TransferRequest struct {
	From   string            `json:"from" validate:"required,eth_addr"`
	To     string            `json:"to" validate:"required,eth_addr"`
	Amount *uint64           `json:"amount" validate:"required"`
	ID     *uint64           `json:"id" validate:"required"`
	Data   *AssetDataRequest `json:"data" validate:"required"`
}

func (r *TransferRequest) ToModel() AssetTransfer {
	return AssetTransfer{
		From:   common.HexToAddress(r.From),
		To:     common.HexToAddress(r.To),
		Amount: *r.Amount,
		ID:     *r.ID,
		Data:   r.Data.ToModel(),
	}
}

type BatchTransferRequest struct {
	From    string             `json:"from" validate:"required,eth_addr"`
	To      string             `json:"to" validate:"required,eth_addr"`
	Amounts []uint64           `json:"amounts" validate:"required"`
	IDs     []uint64           `json:"ids" validate:"required"`
	Data    []AssetDataRequest `json:"data" validate:"required,dive"`
}

func (r *BatchTransferRequest) ToModel() AssetBatchTransfer {
	return AssetBatchTransfer{
		From:    common.HexToAddress(r.From),
		To:      common.HexToAddress(r.To),
		Amounts: r.Amounts,
		IDs:     r.IDs,
		Data:    assetDataList(r.Data),
	}
}

type WrapRequest struct {
	From   string            `json:"from" validate:"required,eth_addr"`
	Amount *uint64           `json:"amount" validate:"required"`
	ID     *uint64           `json:"id" validate:"required"`
	Data   *AssetDataRequest `json:"data" validate:"required"`
}

func (r *WrapRequest) ToModel() Wrap1155 {
	return Wrap1155{
		From:   common.HexToAddress(r.From),
		Amount: *r.Amount,
		ID:     *r.ID,
		Data:   r.Data.ToModel(),
	}
}

type BatchWrapRequest struct {
	From    string             `json:"from" validate:"required,eth_addr"`
	Amounts []uint64           `json:"amounts" validate:"required"`
	IDs     []uint64           `json:"ids" validate:"required"`
	Data    []AssetDataRequest `json:"data" validate:"required,dive"`
}

func (r *BatchWrapRequest) ToModel() BatchWrap1155 {
	return BatchWrap1155{
		From:    common.HexToAddress(r.From),
		Amounts: r.Amounts,
		IDs:     r.IDs,
		Data:    assetDataList(r.Data),
	}
}

type UnwrapRequest struct {
	ID               *uint64           `json:"id" validate:"required"`
	Amount           *uint64           `json:"amount" validate:"required"`
	RecipientAddress string            `json:"recipientAddress" validate:"required,eth_addr"`
	Data             *AssetDataRequest `json:"data" validate:"required"`
}

func (r *UnwrapRequest) ToModel() Unwrap1155 {
	return Unwrap1155{
		ID:               *r.ID,
		Amount:           *r.Amount,
		RecipientAddress: common.HexToAddress(r.RecipientAddress),
		Data:             r.Data.ToModel(),
	}
}

type GetWrappedRequest struct {
	ID   *uint64           `json:"id" validate:"required"`
	Data *AssetDataRequest `json:"data" validate:"required"`
}

func (r *GetWrappedRequest) ToModel() GetWrapped1155 {
	return GetWrapped1155{ID: *r.ID, Data: r.Data.ToModel()}
}

// GetWrappedResponse carries the factory's decoded return value as hex
type GetWrappedResponse struct {
	Tx string `json:"tx"`
}
