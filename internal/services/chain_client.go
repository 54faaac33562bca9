package services

import (
	"context"
	"errors"
	"math/big"
	"net"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"go.uber.org/zap"
)

// ErrReceiptUnavailable is returned while a transaction has no receipt yet
var ErrReceiptUnavailable = errors.New("receipt not available")

// ChainClient submits and evaluates calls against the configured chain
type ChainClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	// Submit signs and sends the call, returning once the node accepted it
	Submit(ctx context.Context, call *Call) (*types.Transaction, error)
	// Evaluate runs a read-only call and returns its decoded outputs
	Evaluate(ctx context.Context, call *Call) ([]any, error)
	// Receipt performs a single lookup; it never waits for mining
	Receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	Close()
}

// ChainBackend is satisfied by *ethclient.Client and the simulated backend client
type ChainBackend interface {
	bind.ContractBackend
	ethereum.ChainIDReader
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type DialFunc func(ctx context.Context, rawURL string) (ChainBackend, error)

func dialEthClient(ctx context.Context, rawURL string) (ChainBackend, error) {
	return ethclient.DialContext(ctx, rawURL)
}

type chainClient struct {
	rpcURL string
	dial   DialFunc
	logger *zap.Logger

	mu      sync.Mutex
	backend ChainBackend
	chainID *big.Int
}

// NewChainClient returns a client that dials rpcURL on first use
func NewChainClient(rpcURL string, logger *zap.Logger) ChainClient {
	return NewChainClientWithDialer(rpcURL, dialEthClient, logger)
}

func NewChainClientWithDialer(rpcURL string, dial DialFunc, logger *zap.Logger) ChainClient {
	return &chainClient{rpcURL: rpcURL, dial: dial, logger: logger}
}

// NewChainClientWithBackend wraps an already connected backend
func NewChainClientWithBackend(backend ChainBackend, logger *zap.Logger) ChainClient {
	return &chainClient{backend: backend, logger: logger}
}

func (c *chainClient) connect(ctx context.Context) (ChainBackend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, nil
	}

	backend, err := c.dial(ctx, c.rpcURL)
	if err != nil {
		// the url carries the project id, keep it out of the message
		return nil, apierrors.Transport(err, "Failed to connect to the RPC endpoint")
	}
	c.backend = backend
	return backend, nil
}

func (c *chainClient) ChainID(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	cached := c.chainID
	c.mu.Unlock()
	if cached != nil {
		return new(big.Int).Set(cached), nil
	}

	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, classifyChainError(err, "Failed to get chain id")
	}

	c.mu.Lock()
	c.chainID = chainID
	c.mu.Unlock()
	return new(big.Int).Set(chainID), nil
}

func (c *chainClient) Submit(ctx context.Context, call *Call) (*types.Transaction, error) {
	if call.Signer == nil {
		return nil, apierrors.Method(nil, "Call %s.%s has no signer", call.Contract.Name, call.Method)
	}

	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(call.Signer.Key, call.Signer.ChainID)
	if err != nil {
		return nil, apierrors.Method(err, "Failed to create transactor")
	}
	opts.Context = ctx

	contract := bind.NewBoundContract(call.Contract.Address, call.Contract.ABI, backend, backend, backend)
	tx, err := contract.Transact(opts, call.Method, call.Args...)
	if err != nil {
		return nil, classifyChainError(err, "Failed to submit %s.%s", call.Contract.Name, call.Method)
	}

	c.logger.Info("Transaction submitted",
		zap.String("contract", call.Contract.Name),
		zap.String("method", call.Method),
		zap.String("to", call.Contract.Address.Hex()),
		zap.String("from", opts.From.Hex()),
		zap.String("tx", tx.Hash().Hex()),
		zap.Uint64("nonce", tx.Nonce()),
	)
	return tx, nil
}

func (c *chainClient) Evaluate(ctx context.Context, call *Call) ([]any, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	var out []any
	contract := bind.NewBoundContract(call.Contract.Address, call.Contract.ABI, backend, backend, backend)
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, call.Method, call.Args...); err != nil {
		return nil, classifyChainError(err, "Failed to evaluate %s.%s", call.Contract.Name, call.Method)
	}

	c.logger.Debug("Call evaluated",
		zap.String("contract", call.Contract.Name),
		zap.String("method", call.Method),
		zap.Int("outputs", len(out)),
	)
	return out, nil
}

func (c *chainClient) Receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := backend.TransactionReceipt(ctx, hash)
	if errors.Is(err, ethereum.NotFound) || (err == nil && receipt == nil) {
		return nil, ErrReceiptUnavailable
	}
	if err != nil {
		return nil, classifyChainError(err, "Failed to get receipt for %s", hash.Hex())
	}
	return receipt, nil
}

func (c *chainClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if closer, ok := c.backend.(interface{ Close() }); ok {
		closer.Close()
	}
	c.backend = nil
}

// classifyChainError separates an unreachable endpoint from a rejected call
func classifyChainError(err error, format string, args ...any) error {
	if isTransportError(err) {
		return apierrors.Transport(err, format, args...)
	}
	return apierrors.Method(err, format, args...)
}

func isTransportError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
