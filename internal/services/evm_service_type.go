package services

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Contract is a resolved contract handle shared by every flow
type Contract struct {
	Name    string
	Address common.Address
	ABI     abi.ABI
}

// Signer signs state-changing calls; ChainID tags every signed transaction
type Signer struct {
	Key     *ecdsa.PrivateKey
	ChainID *big.Int
}

func NewSigner(key *ecdsa.PrivateKey, chainID *big.Int) *Signer {
	return &Signer{Key: key, ChainID: chainID}
}

func (s *Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.Key.PublicKey)
}

// Call is an unsent, fully specified contract invocation. A nil Signer
// means the call can only be evaluated, not submitted.
type Call struct {
	Contract *Contract
	Method   string
	Args     []any
	Data     []byte
	Signer   *Signer
}

type BuildCallArgs struct {
	Contract *Contract `validate:"required"`
	Method   string    `validate:"required"`
	Args     []any
	Signer   *Signer
}
