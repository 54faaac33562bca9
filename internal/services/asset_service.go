package services

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
	"go.uber.org/zap"
)

// AssetService runs the flows that call the asset contract directly
type AssetService interface {
	Mint(ctx context.Context, req models.AssetMint) (*models.TransactionResult, error)
	Transfer(ctx context.Context, req models.AssetTransfer) (*models.TransactionResult, error)
	BatchTransfer(ctx context.Context, req models.AssetBatchTransfer) (*models.TransactionResult, error)
}

type assetService struct {
	registry ContractRegistry
	evm      EvmService
	chain    ChainClient
	signer   *Signer
	logger   *zap.Logger
}

func NewAssetService(registry ContractRegistry, evm EvmService, chain ChainClient, signer *Signer, logger *zap.Logger) AssetService {
	return &assetService{
		registry: registry,
		evm:      evm,
		chain:    chain,
		signer:   signer,
		logger:   logger,
	}
}

func (s *assetService) Mint(ctx context.Context, req models.AssetMint) (*models.TransactionResult, error) {
	data, err := utils.EncodeAssetData(req.Data)
	if err != nil {
		return nil, apierrors.InvalidRequest(err, "Invalid asset data")
	}

	asset, err := s.registry.Resolve(ctx, contracts.SugarFungeAsset)
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, asset, "mint", req.Account, uint64ToBig(req.ID), uint64ToBig(req.Amount), data)
}

func (s *assetService) Transfer(ctx context.Context, req models.AssetTransfer) (*models.TransactionResult, error) {
	data, err := utils.EncodeAssetData(req.Data)
	if err != nil {
		return nil, apierrors.InvalidRequest(err, "Invalid asset data")
	}

	asset, err := s.registry.Resolve(ctx, contracts.SugarFungeAsset)
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, asset, "safeTransferFrom", req.From, req.To, uint64ToBig(req.ID), uint64ToBig(req.Amount), data)
}

func (s *assetService) BatchTransfer(ctx context.Context, req models.AssetBatchTransfer) (*models.TransactionResult, error) {
	if !req.LengthsMatch() {
		return nil, batchLengthError(len(req.IDs), len(req.Amounts), len(req.Data))
	}

	data, err := utils.EncodeBatchAssetData(req.Data)
	if err != nil {
		return nil, apierrors.InvalidRequest(err, "Invalid asset data")
	}

	asset, err := s.registry.Resolve(ctx, contracts.SugarFungeAsset)
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, asset, "safeBatchTransferFrom", req.From, req.To, uint64sToBig(req.IDs), uint64sToBig(req.Amounts), data)
}

// submit builds a signed call on contract and sends it
func (s *assetService) submit(ctx context.Context, contract *Contract, method string, args ...any) (*models.TransactionResult, error) {
	call, err := s.evm.BuildCall(BuildCallArgs{
		Contract: contract,
		Method:   method,
		Args:     args,
		Signer:   s.signer,
	})
	if err != nil {
		return nil, apierrors.Method(err, "Failed to build %s.%s", contract.Name, method)
	}

	tx, err := s.chain.Submit(ctx, call)
	if err != nil {
		return nil, apierrors.Classify(err)
	}

	s.logger.Info("Call submitted", callFields(s.evm, call, tx)...)
	return &models.TransactionResult{Hash: tx.Hash()}, nil
}

// callFields describes a submitted call for the flow logs
func callFields(evm EvmService, call *Call, tx *types.Transaction) []zap.Field {
	fields := []zap.Field{
		zap.String("contract", call.Contract.Name),
		zap.String("method", call.Method),
		zap.String("tx", tx.Hash().Hex()),
	}
	if args, err := evm.DescribeCall(call); err == nil {
		fields = append(fields, zap.Any("args", args))
	}
	return fields
}

func batchLengthError(ids, amounts, data int) error {
	return apierrors.InvalidRequest(nil, "ids, amounts and data must have the same length (got %d, %d and %d)", ids, amounts, data)
}

func uint64ToBig(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

func uint64sToBig(values []uint64) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = uint64ToBig(v)
	}
	return out
}
