package models

import "github.com/ethereum/go-ethereum/common"

// TransactionResult is returned by every flow that submits a transaction.
// To and From are only set when the receipt was available at submission time.
type TransactionResult struct {
	Hash common.Hash
	To   *common.Address
	From *common.Address
}

// TransactionResponse is the JSON body of a successful transaction flow
type TransactionResponse struct {
	Tx   string `json:"tx"`
	To   string `json:"to,omitempty"`
	From string `json:"from,omitempty"`
}

// Response converts the result into its JSON representation
func (r *TransactionResult) Response() TransactionResponse {
	resp := TransactionResponse{Tx: r.Hash.Hex()}
	if r.To != nil {
		resp.To = r.To.Hex()
	}
	if r.From != nil {
		resp.From = r.From.Hex()
	}
	return resp
}
