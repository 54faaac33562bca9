package models

const (
	DefaultQueryChain  = "rinkeby"
	DefaultQueryFormat = "decimal"
	DefaultQueryOffset = uint64(0)
	DefaultQueryLimit  = uint64(10)
)

// QueryParams are forwarded to the indexing API as query parameters
type QueryParams struct {
	Chain  *string `json:"chain,omitempty"`
	Format *string `json:"format,omitempty"`
	Offset *uint64 `json:"offset,omitempty"`
	Limit  *uint64 `json:"limit,omitempty"`
}

// WithDefaults returns a copy with every unset parameter filled in
func (p *QueryParams) WithDefaults() QueryParams {
	out := QueryParams{}
	if p != nil {
		out = *p
	}
	if out.Chain == nil {
		chain := DefaultQueryChain
		out.Chain = &chain
	}
	if out.Format == nil {
		format := DefaultQueryFormat
		out.Format = &format
	}
	if out.Offset == nil {
		offset := DefaultQueryOffset
		out.Offset = &offset
	}
	if out.Limit == nil {
		limit := DefaultQueryLimit
		out.Limit = &limit
	}
	return out
}

type AddressQuery struct {
	Address string       `json:"address" validate:"required"`
	Options *QueryParams `json:"options,omitempty"`
}

type TokenQuery struct {
	TokenAddress string       `json:"token_address" validate:"required"`
	Options      *QueryParams `json:"options,omitempty"`
}

type AccountTokenQuery struct {
	Address      string       `json:"address" validate:"required"`
	TokenAddress string       `json:"token_address" validate:"required"`
	Options      *QueryParams `json:"options,omitempty"`
}

type TokenIDQuery struct {
	TokenAddress string       `json:"token_address" validate:"required"`
	ID           *uint64      `json:"id" validate:"required"`
	Options      *QueryParams `json:"options,omitempty"`
}

type BlockQuery struct {
	Block   *uint64      `json:"block" validate:"required"`
	Options *QueryParams `json:"options,omitempty"`
}

type TransactionQuery struct {
	Tx      string       `json:"tx" validate:"required"`
	Options *QueryParams `json:"options,omitempty"`
}
