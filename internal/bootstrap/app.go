// Package bootstrap handles application initialization and lifecycle
// management for the newsdesk service.
package bootstrap

import (
	"flag"
	"fmt"

	"github.com/gazetadovale/newsdesk/internal/config"
	"github.com/gazetadovale/newsdesk/internal/logger"
	"github.com/gazetadovale/newsdesk/internal/upstream"
)

const version = "dev"

// Start initializes and runs the newsdesk application.
func Start() error {
	// Phase 1: config and logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = log.With(
		logger.String("service", "newsdesk"),
		logger.String("version", version),
	)

	// Phase 2: upstream API client
	client := upstream.New(cfg.Upstream, log)
	log.Info("Upstream client configured",
		logger.String("base_url", client.BaseURL()),
	)

	// Phase 3: optional event publisher
	publisher := SetupEventPublisher(cfg, log)

	// Phase 4: HTTP server
	server := SetupHTTPServer(cfg, client, publisher, log)

	log.Info("Starting HTTP server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
	)

	if runErr := server.Run(); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}

// LoadConfig loads configuration. Uses the -config flag with a
// CONFIG_PATH-aware default.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", config.GetConfigPath("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
