package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/contracts"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
	"go.uber.org/zap"
)

// WrapperService runs the flows that involve the wrapper factory
type WrapperService interface {
	Wrap(ctx context.Context, req models.Wrap1155) (*models.TransactionResult, error)
	BatchWrap(ctx context.Context, req models.BatchWrap1155) (*models.TransactionResult, error)
	Unwrap(ctx context.Context, req models.Unwrap1155) (*models.TransactionResult, error)
	// GetWrapped returns the factory's answer as hex; no transaction is sent
	GetWrapped(ctx context.Context, req models.GetWrapped1155) (string, error)
}

type wrapperService struct {
	assets   AssetService
	registry ContractRegistry
	evm      EvmService
	chain    ChainClient
	signer   *Signer
	logger   *zap.Logger
}

func NewWrapperService(assets AssetService, registry ContractRegistry, evm EvmService, chain ChainClient, signer *Signer, logger *zap.Logger) WrapperService {
	return &wrapperService{
		assets:   assets,
		registry: registry,
		evm:      evm,
		chain:    chain,
		signer:   signer,
		logger:   logger,
	}
}

// Wrap transfers the tokens to the factory, which mints the wrapped ERC-20 on receipt
func (s *wrapperService) Wrap(ctx context.Context, req models.Wrap1155) (*models.TransactionResult, error) {
	factory, err := s.registry.Resolve(ctx, contracts.Wrapped1155Factory)
	if err != nil {
		return nil, err
	}

	return s.assets.Transfer(ctx, models.AssetTransfer{
		From:   req.From,
		To:     factory.Address,
		Amount: req.Amount,
		ID:     req.ID,
		Data:   req.Data,
	})
}

func (s *wrapperService) BatchWrap(ctx context.Context, req models.BatchWrap1155) (*models.TransactionResult, error) {
	if !req.LengthsMatch() {
		return nil, batchLengthError(len(req.IDs), len(req.Amounts), len(req.Data))
	}

	factory, err := s.registry.Resolve(ctx, contracts.Wrapped1155Factory)
	if err != nil {
		return nil, err
	}

	return s.assets.BatchTransfer(ctx, models.AssetBatchTransfer{
		From:    req.From,
		To:      factory.Address,
		Amounts: req.Amounts,
		IDs:     req.IDs,
		Data:    req.Data,
	})
}

func (s *wrapperService) Unwrap(ctx context.Context, req models.Unwrap1155) (*models.TransactionResult, error) {
	factory, asset, err := s.resolvePair(ctx)
	if err != nil {
		return nil, err
	}

	data, err := utils.EncodeAssetData(req.Data)
	if err != nil {
		return nil, apierrors.InvalidRequest(err, "Invalid asset data")
	}

	call, err := s.evm.BuildCall(BuildCallArgs{
		Contract: factory,
		Method:   "unwrap",
		Args:     []any{asset.Address, uint64ToBig(req.ID), uint64ToBig(req.Amount), req.RecipientAddress, data},
		Signer:   s.signer,
	})
	if err != nil {
		return nil, apierrors.Method(err, "Failed to build %s.unwrap", factory.Name)
	}

	tx, err := s.chain.Submit(ctx, call)
	if err != nil {
		return nil, apierrors.Classify(err)
	}
	s.logger.Info("Call submitted", callFields(s.evm, call, tx)...)

	result := &models.TransactionResult{Hash: tx.Hash()}

	// to/from are only reported when the receipt already exists
	if _, err := s.chain.Receipt(ctx, tx.Hash()); err != nil {
		if !errors.Is(err, ErrReceiptUnavailable) {
			s.logger.Warn("Failed to get unwrap receipt", zap.String("tx", tx.Hash().Hex()), zap.Error(err))
		}
		return result, nil
	}

	from := s.signer.Address()
	result.From = &from
	result.To = tx.To()
	return result, nil
}

func (s *wrapperService) GetWrapped(ctx context.Context, req models.GetWrapped1155) (string, error) {
	factory, asset, err := s.resolvePair(ctx)
	if err != nil {
		return "", err
	}

	data, err := utils.EncodeAssetData(req.Data)
	if err != nil {
		return "", apierrors.InvalidRequest(err, "Invalid asset data")
	}

	call, err := s.evm.BuildCall(BuildCallArgs{
		Contract: factory,
		Method:   "getWrapped1155",
		Args:     []any{asset.Address, uint64ToBig(req.ID), data},
	})
	if err != nil {
		return "", apierrors.Method(err, "Failed to build %s.getWrapped1155", factory.Name)
	}

	out, err := s.chain.Evaluate(ctx, call)
	if err != nil {
		return "", apierrors.Classify(err)
	}
	if len(out) == 0 {
		return "", apierrors.Method(nil, "%s.getWrapped1155 returned no value", factory.Name)
	}

	return formatReturnValue(out[0]), nil
}

// resolvePair resolves the factory (the call target) before the asset (the argument)
func (s *wrapperService) resolvePair(ctx context.Context) (*Contract, *Contract, error) {
	factory, err := s.registry.Resolve(ctx, contracts.Wrapped1155Factory)
	if err != nil {
		return nil, nil, err
	}
	asset, err := s.registry.Resolve(ctx, contracts.SugarFungeAsset)
	if err != nil {
		return nil, nil, err
	}
	return factory, asset, nil
}

func formatReturnValue(value any) string {
	switch v := value.(type) {
	case common.Address:
		return v.Hex()
	case *big.Int:
		return hexutil.EncodeBig(v)
	case []byte:
		return hexutil.Encode(v)
	case [32]byte:
		return hexutil.Encode(v[:])
	case bool:
		if v {
			return "0x1"
		}
		return "0x0"
	default:
		return fmt.Sprintf("%v", v)
	}
}
