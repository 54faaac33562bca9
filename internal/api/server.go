package api

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rxtech-lab/sugarfunge-integration/internal/api/middleware"
	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/services"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
	"go.uber.org/zap"
)

const defaultCORSOriginPrefix = "http://localhost"

// Options configures the HTTP surface; services are required, the rest optional
type Options struct {
	Assets           services.AssetService
	Wrappers         services.WrapperService
	Moralis          services.MoralisService
	Registry         services.ContractRegistry
	Logger           *zap.Logger
	CORSOriginPrefix string
	// JWTAuthenticator enables bearer auth on the flow endpoints when set
	JWTAuthenticator *utils.JwtAuthenticator
	// Registry for request metrics; a fresh one is created when nil
	Metrics *prometheus.Registry
}

type APIServer struct {
	app       *fiber.App
	assets    services.AssetService
	wrappers  services.WrapperService
	moralis   services.MoralisService
	registry  services.ContractRegistry
	logger    *zap.Logger
	validator *validator.Validate
	port      int
}

func NewAPIServer(opts Options) *APIServer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	originPrefix := opts.CORSOriginPrefix
	if originPrefix == "" {
		originPrefix = defaultCORSOriginPrefix
	}
	metricsRegistry := opts.Metrics
	if metricsRegistry == nil {
		metricsRegistry = prometheus.NewRegistry()
	}

	server := &APIServer{
		assets:    opts.Assets,
		wrappers:  opts.Wrappers,
		moralis:   opts.Moralis,
		registry:  opts.Registry,
		logger:    logger,
		validator: newValidator(),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          server.handleError,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(middleware.NewMetrics(metricsRegistry).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: originPrefix,
		AllowOriginsFunc: func(origin string) bool {
			return strings.HasPrefix(origin, originPrefix)
		},
		AllowMethods: "GET,POST",
		AllowHeaders: "Authorization,Accept,Content-Type",
		MaxAge:       3600,
	}))

	server.app = app
	server.setupRoutes(opts.JWTAuthenticator, metricsRegistry)
	return server
}

func (s *APIServer) setupRoutes(authenticator *utils.JwtAuthenticator, metricsRegistry *prometheus.Registry) {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})))

	// Contract directory (read only)
	s.app.Get("/contracts/:name", s.handleContract)

	// Asset and wrapper flows sign with the service key, so they sit behind auth
	auth := middleware.AuthMiddleware(middleware.AuthConfig{
		JWTAuthenticator: authenticator,
	})
	s.app.Post("/mint_nft", auth, s.handleMint)
	s.app.Post("/transfer_nft", auth, s.handleTransfer)
	s.app.Post("/batch_transfer_nft", auth, s.handleBatchTransfer)
	s.app.Post("/wrap_1155", auth, s.handleWrap)
	s.app.Post("/batch_wrap_1155", auth, s.handleBatchWrap)
	s.app.Post("/unwrap_1155", auth, s.handleUnwrap)
	s.app.Post("/get_wrapped_1155", auth, s.handleGetWrapped)

	// Indexing API proxy
	s.app.Post("/get_nfts", s.handleGetNFTs)
	s.app.Post("/get_contract_nfts", s.handleGetContractNFTs)
	s.app.Post("/get_nft_transfers", s.handleGetNFTTransfers)
	s.app.Post("/get_nft_transfers_by_block", s.handleGetNFTTransfersByBlock)
	s.app.Post("/get_all_token_ids", s.handleGetAllTokenIDs)
	s.app.Post("/get_contract_nft_transfers", s.handleGetContractNFTTransfers)
	s.app.Post("/get_nft_metadata", s.handleGetNFTMetadata)
	s.app.Post("/get_nft_owners", s.handleGetNFTOwners)
	s.app.Post("/get_token_id_metadata", s.handleGetTokenIDMetadata)
	s.app.Post("/get_token_id_owners", s.handleGetTokenIDOwners)
	s.app.Post("/get_transaction", s.handleGetTransaction)
}

// Listen serves on addr, e.g. ":8080" or "127.0.0.1:0", and blocks until Shutdown
func (s *APIServer) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	s.logger.Info("API server listening", zap.String("addr", listener.Addr().String()))
	return s.app.Listener(listener)
}

// Start listens on addr and serves in the background, returning the bound port
func (s *APIServer) Start(addr string) (int, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	go func() {
		if err := s.app.Listener(listener); err != nil {
			s.logger.Error("API server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("API server started", zap.Int("port", s.port))
	return s.port, nil
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

func (s *APIServer) GetPort() int {
	return s.port
}

// handleError renders every failure as {"code", "error", "message"}
func (s *APIServer) handleError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		response := apierrors.StatusResponse(fiberErr.Code, fiberErr.Message)
		return c.Status(response.Code).JSON(response)
	}

	response := apierrors.ToResponse(err)
	if response.Code >= fiber.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("kind", response.Error),
			zap.String("error", apierrors.Scrub(err.Error())),
		)
	}
	return c.Status(response.Code).JSON(response)
}
