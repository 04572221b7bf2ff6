package bootstrap

import (
	"github.com/gazetadovale/newsdesk/internal/api"
	"github.com/gazetadovale/newsdesk/internal/config"
	"github.com/gazetadovale/newsdesk/internal/console"
	"github.com/gazetadovale/newsdesk/internal/events"
	"github.com/gazetadovale/newsdesk/internal/handlers"
	"github.com/gazetadovale/newsdesk/internal/importer"
	"github.com/gazetadovale/newsdesk/internal/logger"
	"github.com/gazetadovale/newsdesk/internal/metadata"
	"github.com/gazetadovale/newsdesk/internal/upstream"
)

// SetupHTTPServer wires the session manager, handlers and router.
func SetupHTTPServer(
	cfg *config.Config,
	client *upstream.Client,
	publisher *events.Publisher,
	log logger.Logger,
) *api.Server {
	sessions := console.NewSessionManager(cfg.Session.TTL.Std(), client)

	h := api.Handlers{
		Feed:   handlers.NewFeedHandler(client, log),
		Auth:   handlers.NewAuthHandler(client, sessions, log),
		Form:   handlers.NewNewsFormHandler(publisher, log),
		Admin:  handlers.NewAdminHandler(publisher, log),
		Create: handlers.NewCreateHandler(client, publisher, log),
		Tools: handlers.NewToolsHandler(
			metadata.NewExtractor(log),
			importer.New(client, log),
			log,
		),
	}

	router := api.NewRouter(cfg, h, log)
	return api.NewServer(cfg, router, log)
}
