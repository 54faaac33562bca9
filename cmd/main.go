package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v4"
	_ "github.com/joho/godotenv/autoload" // Automatically load .env file if present
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/api"
	"github.com/rxtech-lab/sugarfunge-integration/internal/config"
	"github.com/rxtech-lab/sugarfunge-integration/internal/logger"
	"github.com/rxtech-lab/sugarfunge-integration/internal/mcp"
	"github.com/rxtech-lab/sugarfunge-integration/internal/server"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Build information (set via ldflags)
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "sugarfunge",
		Short:        "HTTP and MCP facade over the SugarFunge asset and wrapper contracts",
		Version:      fmt.Sprintf("%s (commit %s, built %s)", Version, CommitHash, BuildTime),
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMCPCommand())
	root.AddCommand(newContractsCommand())
	root.AddCommand(newTokenCommand())
	return root
}

// loadRuntime reads the configuration and builds the logger. The MCP command
// logs to stderr since stdout carries the protocol.
func loadRuntime(stderr bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Stderr: stderr})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime(false)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			log.Info("Starting SugarFunge API", zap.String("version", Version), zap.Stringer("config", cfg))

			svc, err := server.InitializeServices(cfg, log)
			if err != nil {
				return err
			}
			defer svc.Close()

			var authenticator *utils.JwtAuthenticator
			if cfg.JWTSecret != "" {
				authenticator = utils.NewJwtAuthenticator(cfg.JWTSecret)
			} else {
				log.Warn("JWT_SECRET is not set, flow endpoints are unauthenticated")
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			apiServer := api.NewAPIServer(api.Options{
				Assets:           svc.Assets,
				Wrappers:         svc.Wrappers,
				Moralis:          svc.Moralis,
				Registry:         svc.Registry,
				Logger:           log,
				CORSOriginPrefix: cfg.CORSOriginPrefix,
				JWTAuthenticator: authenticator,
				Metrics:          registry,
			})

			errCh := make(chan error, 1)
			go func() {
				errCh <- apiServer.Listen(cfg.ListenURL)
			}()

			// Set up graceful shutdown
			signals := make(chan os.Signal, 1)
			signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-signals:
				log.Info("Shutting down API server", zap.String("signal", sig.String()))
			}

			if err := apiServer.Shutdown(); err != nil {
				log.Error("Error shutting down API server", zap.Error(err))
				return err
			}
			log.Info("API server shut down successfully")
			return nil
		},
	}
}

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime(true)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			svc, err := server.InitializeServices(cfg, log)
			if err != nil {
				return err
			}
			defer svc.Close()

			mcpServer := mcp.NewMCPServer(mcp.Services{
				Assets:      svc.Assets,
				Wrappers:    svc.Wrappers,
				Deployments: svc.Deployments,
				Registry:    svc.Registry,
			}, Version)
			return mcpServer.Start()
		},
	}
}

func newTokenCommand() *cobra.Command {
	var (
		subject  string
		audience []string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the flow endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return errors.New("JWT_SECRET is not set")
			}

			claims := jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(time.Now())}
			if ttl > 0 {
				claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
			}

			token, err := utils.NewJwtAuthenticator(secret).GenerateToken(subject, audience, claims)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "token subject")
	cmd.Flags().StringSliceVar(&audience, "aud", nil, "token audience")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
