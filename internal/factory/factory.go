// Package factory wires the application: storage driver selection, schema
// registration, collections, services and the remote client.
package factory

import (
	"io"
	"log/slog"

	"github.com/mjaasund/steeldart/internal/clientdb"
	"github.com/mjaasund/steeldart/internal/config"
	"github.com/mjaasund/steeldart/internal/dependencies/clock"
	"github.com/mjaasund/steeldart/internal/dependencies/ident"
	"github.com/mjaasund/steeldart/internal/model"
	"github.com/mjaasund/steeldart/internal/remote"
	"github.com/mjaasund/steeldart/internal/services/roster"
	"github.com/mjaasund/steeldart/internal/services/uploader"
	"github.com/mjaasund/steeldart/internal/store"
	"github.com/mjaasund/steeldart/internal/store/memory"
	redisstore "github.com/mjaasund/steeldart/internal/store/redis"
)

// App contains all wired application components
type App struct {
	DB    *store.Database
	Users *store.Collection[model.User]
	Games *store.Collection[model.Game]

	Clock clock.Clock
	IDs   ident.Source

	Remote   *remote.Client
	Roster   *roster.Service
	Uploader *uploader.Service

	Logger *slog.Logger
}

// New creates a new application from configuration
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	driver, err := newDriver(cfg)
	if err != nil {
		return nil, err
	}

	return newWithDriver(cfg.Server.Endpoint, driver, logger)
}

// NewWithDriver creates an application over an explicit driver (useful
// for testing)
func NewWithDriver(endpoint string, driver store.Driver, logger *slog.Logger) (*App, error) {
	return newWithDriver(endpoint, driver, logger)
}

func newDriver(cfg *config.Config) (store.Driver, error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		redisCfg := redisstore.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		redisCfg.KeyPrefix = cfg.Redis.KeyPrefix
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		return redisstore.New(redisCfg)
	default:
		return memory.New(), nil
	}
}

func newWithDriver(endpoint string, driver store.Driver, logger *slog.Logger) (*App, error) {
	catalog := store.NewCatalog()
	if err := clientdb.Register(catalog); err != nil {
		return nil, err
	}

	db, err := catalog.Connect(clientdb.DatabaseName, driver)
	if err != nil {
		return nil, err
	}

	users, err := store.CollectionOf(db, clientdb.Users)
	if err != nil {
		return nil, err
	}
	games, err := store.CollectionOf(db, clientdb.Games)
	if err != nil {
		return nil, err
	}

	client := remote.NewClient(endpoint)
	ids := ident.New()

	return &App{
		DB:       db,
		Users:    users,
		Games:    games,
		Clock:    clock.New(),
		IDs:      ids,
		Remote:   client,
		Roster:   roster.New(users, client, ids, logger),
		Uploader: uploader.New(games, client, logger),
		Logger:   logger,
	}, nil
}
