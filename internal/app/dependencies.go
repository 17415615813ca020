package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistrot/internal/catalog"
	"github.com/vladislavdragonenkov/bistrot/internal/metrics"
	"github.com/vladislavdragonenkov/bistrot/internal/platform"
	"github.com/vladislavdragonenkov/bistrot/internal/product"
	"github.com/vladislavdragonenkov/bistrot/internal/storage"
	"github.com/vladislavdragonenkov/bistrot/internal/storage/memory"
	"github.com/vladislavdragonenkov/bistrot/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	KV       storage.KeyValueStore
	PG       *postgres.Store
	Platform *platform.Client
	Metrics  *metrics.ClientMetrics
	View     *catalog.View
	Produtos *product.Reader
}

// NewDependencies создаёт и связывает зависимости приложения.
// Хранилище состояния выбирается по конфигурации: PostgreSQL при заданном
// DSN (со свежей схемой), иначе in-memory.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	m := metrics.NewClientMetrics()

	var (
		kv storage.KeyValueStore
		pg *postgres.Store
	)
	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		pg = store
		kv = postgres.NewKeyValueStore(store)
		logger.Info("хранилище состояния: postgres")
	} else {
		kv = memory.NewKeyValueStore()
		logger.Info("хранилище состояния: in-memory")
	}

	client, err := platform.NewClient(cfg.APIBaseURL, logger.WithField("component", "platform"), m)
	if err != nil {
		if pg != nil {
			_ = pg.Close()
		}
		return nil, err
	}

	return &Dependencies{
		KV:       kv,
		PG:       pg,
		Platform: client,
		Metrics:  m,
		View:     catalog.NewView(client, logger.WithField("component", "catalog"), m),
		Produtos: product.NewReader(kv, client, logger.WithField("component", "product"), m),
	}, nil
}

// Close освобождает ресурсы зависимостей.
func (d *Dependencies) Close(logger *log.Entry) {
	if d == nil || d.PG == nil {
		return
	}
	if err := d.PG.Close(); err != nil {
		logger.WithError(err).Warn("failed to close postgres store")
	}
}
