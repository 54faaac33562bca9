package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/models"
	"go.uber.org/zap"
)

const (
	defaultMoralisTimeout = 30 * time.Second
	moralisAPIKeyHeader   = "X-API-Key"
)

// MoralisService forwards read-only queries to the Moralis indexing API
type MoralisService interface {
	GetNFTs(ctx context.Context, q models.AddressQuery) (json.RawMessage, error)
	GetContractNFTs(ctx context.Context, q models.AccountTokenQuery) (json.RawMessage, error)
	GetNFTTransfers(ctx context.Context, q models.AddressQuery) (json.RawMessage, error)
	GetNFTTransfersByBlock(ctx context.Context, q models.BlockQuery) (json.RawMessage, error)
	GetAllTokenIDs(ctx context.Context, q models.TokenQuery) (json.RawMessage, error)
	GetContractNFTTransfers(ctx context.Context, q models.TokenQuery) (json.RawMessage, error)
	GetNFTMetadata(ctx context.Context, q models.TokenQuery) (json.RawMessage, error)
	GetNFTOwners(ctx context.Context, q models.TokenQuery) (json.RawMessage, error)
	GetTokenIDMetadata(ctx context.Context, q models.TokenIDQuery) (json.RawMessage, error)
	GetTokenIDOwners(ctx context.Context, q models.TokenIDQuery) (json.RawMessage, error)
	GetTransaction(ctx context.Context, q models.TransactionQuery) (json.RawMessage, error)
}

type moralisService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewMoralisService(baseURL, apiKey string, logger *zap.Logger) MoralisService {
	return &moralisService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultMoralisTimeout},
		logger:  logger,
	}
}

func (s *moralisService) GetNFTs(ctx context.Context, q models.AddressQuery) (json.RawMessage, error) {
	return s.get(ctx, q.Options, q.Address, "nft")
}

func (s *moralisService) GetContractNFTs(ctx context.Context, q models.AccountTokenQuery) (json.RawMessage, error) {
	return s.get(ctx, q.Options, q.Address, "nft", q.TokenAddress)
}

func (s *moralisService) GetNFTTransfers(ctx context.Context, q models.AddressQuery) (json.RawMessage, error) {
	return s.get(ctx, q.Options, "nft", q.Address, "transfers")
}

func (s *moralisService) GetNFTTransfersByBlock(ctx context.Context, q models.BlockQuery) (json.RawMessage, error) {
	return s.get(ctx, q.Options, "block", strconv.FormatUint(*q.Block, 10), "nft", "transfers")
}

func (s *moralisService) GetAllTokenIDs(ctx context.Context, q models.TokenQuery) (json.RawMessage, error) {
	return s.get(ctx, q.Options, "nft", q.TokenAddress)
}

func (s *moralisService) GetContractNFTTransfers(ctx context.Context, q models.TokenQuery) (json.RawMessage, error) {
	return s.get(ctx, q.Options, "nft", q.TokenAddress, "transfers")
}

func (s *moralisService) GetNFTMetadata(ctx context.Context, q models.TokenQuery) (json.RawMessage, error) {
	return s.get(ctx, q.Options, "nft", q.TokenAddress, "metadata")
}

func (s *moralisService) GetNFTOwners(ctx context.Context, q models.TokenQuery) (json.RawMessage, error) {
	return s.get(ctx, q.Options, "nft", q.TokenAddress, "owners")
}

func (s *moralisService) GetTokenIDMetadata(ctx context.Context, q models.TokenIDQuery) (json.RawMessage, error) {
	return s.get(ctx, q.Options, "nft", q.TokenAddress, strconv.FormatUint(*q.ID, 10))
}

func (s *moralisService) GetTokenIDOwners(ctx context.Context, q models.TokenIDQuery) (json.RawMessage, error) {
	return s.get(ctx, q.Options, "nft", q.TokenAddress, strconv.FormatUint(*q.ID, 10), "owners")
}

func (s *moralisService) GetTransaction(ctx context.Context, q models.TransactionQuery) (json.RawMessage, error) {
	return s.get(ctx, q.Options, "transaction", q.Tx)
}

// get issues GET baseURL/segments... with defaulted query parameters and returns the body unmodified
func (s *moralisService) get(ctx context.Context, options *models.QueryParams, segments ...string) (json.RawMessage, error) {
	if s.baseURL == "" {
		return nil, apierrors.Upstream(nil, "Indexing API is not configured")
	}

	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	endpoint := s.baseURL + "/" + strings.Join(escaped, "/")

	params := options.WithDefaults()
	query := url.Values{}
	query.Set("chain", *params.Chain)
	query.Set("format", *params.Format)
	query.Set("offset", strconv.FormatUint(*params.Offset, 10))
	query.Set("limit", strconv.FormatUint(*params.Limit, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, apierrors.Upstream(err, "Failed to create indexing API request")
	}
	req.Header.Set(moralisAPIKeyHeader, s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apierrors.Upstream(err, "Indexing API request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.Upstream(err, "Failed to read indexing API response")
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("Indexing API request failed",
			zap.String("path", strings.Join(segments[:1], "/")),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, apierrors.Upstream(nil, "Indexing API returned status %d", resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, apierrors.Upstream(fmt.Errorf("invalid JSON body"), "Indexing API returned a malformed response")
	}
	return json.RawMessage(body), nil
}
