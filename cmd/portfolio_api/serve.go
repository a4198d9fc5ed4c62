package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daniel/portfolio-api/internal/analytics"
	"github.com/daniel/portfolio-api/internal/assess"
	"github.com/daniel/portfolio-api/internal/config"
	"github.com/daniel/portfolio-api/internal/jobdesc"
	"github.com/daniel/portfolio-api/internal/llm"
	"github.com/daniel/portfolio-api/internal/logger"
	"github.com/daniel/portfolio-api/internal/profile"
	"github.com/daniel/portfolio-api/internal/server"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the assessment, chat, and admin endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a config file (optional)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	secrets := config.LoadSecrets()
	if secrets.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	adminCfg, err := config.NewAdminConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	client, err := llm.NewClient(ctx, nil, secrets.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	owner, err := profile.Load(cfg.Profile.Path)
	if err != nil {
		return fmt.Errorf("failed to load owner profile: %w", err)
	}

	resolver := jobdesc.NewResolver(jobdesc.Options{
		DNS:          jobdesc.SystemDNS(),
		UserAgent:    cfg.Resolver.UserAgent,
		MaxBytes:     cfg.Resolver.MaxResponseBytes,
		Timeout:      cfg.Resolver.ResolverTimeout(),
		MaxRedirects: cfg.Resolver.MaxRedirects,
		DNSTimeout:   cfg.Resolver.DNSTimeout(),
		Logger:       log,
	})

	service := assess.NewService(resolver, client, owner, log)

	// Analytics is optional: without DATABASE_URL the server runs with
	// recording disabled.
	var store *analytics.Store
	if secrets.DatabaseURL != "" {
		store, err = analytics.Connect(ctx, secrets.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to analytics store: %w", err)
		}
		log.Info("analytics store connected")
	} else {
		log.Info("DATABASE_URL not set, assessment analytics disabled")
	}

	srv, err := server.New(server.Config{
		Port:                  cfg.Server.Port,
		RateLimitEnabled:      cfg.RateLimit.Enabled,
		RateLimitCleanupEvery: cfg.RateLimit.CleanupInterval(),
	}, server.Deps{
		Service: service,
		Store:   store,
		JWT:     jwtCfg,
		Admin:   adminCfg,
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
