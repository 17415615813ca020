// Package product реализует двухуровневое чтение продукта:
// локальный кэш, затем платформа. Явная модель cache.get(id) orElse remote.get(id).
package product

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistrot/internal/domain"
	"github.com/vladislavdragonenkov/bistrot/internal/metrics"
	"github.com/vladislavdragonenkov/bistrot/internal/storage"
)

// RemoteSource — удалённый источник карточек продуктов.
type RemoteSource interface {
	GetProduct(ctx context.Context, id int64) (domain.Produto, error)
}

// Reader читает продукт кэш-first. Кэш здесь не наполняется и не
// инвалидируется: устаревший снапшот — известное ограничение, TTL нет.
type Reader struct {
	store   storage.KeyValueStore
	remote  RemoteSource
	logger  *log.Entry
	metrics *metrics.ClientMetrics
}

// NewReader создаёт reader поверх хранилища и клиента платформы.
func NewReader(store storage.KeyValueStore, remote RemoteSource, logger *log.Entry, m *metrics.ClientMetrics) *Reader {
	if logger == nil {
		logger = log.WithField("component", "product")
	}
	return &Reader{
		store:   store,
		remote:  remote,
		logger:  logger,
		metrics: m,
	}
}

// Get возвращает продукт и признак «из кэша». Нечитаемый кэшированный
// снапшот не фатален: логируем и падаем обратно на платформу.
func (r *Reader) Get(ctx context.Context, id int64) (domain.Produto, bool, error) {
	raw, ok, err := r.store.Get(ctx, storage.ProductKey(id))
	if err != nil {
		return domain.Produto{}, false, fmt.Errorf("read product cache: %w", err)
	}
	if ok {
		var produto domain.Produto
		if err := json.Unmarshal(raw, &produto); err == nil {
			if errs := produto.ValidateInvariants(); len(errs) == 0 {
				if r.metrics != nil {
					r.metrics.RecordProductCacheHit()
				}
				return produto, true, nil
			}
		}
		r.logger.WithField("produto_id", id).Warn("кэшированный снапшот продукта нечитаем, идём на платформу")
	}

	if r.metrics != nil {
		r.metrics.RecordProductCacheMiss()
	}

	produto, err := r.remote.GetProduct(ctx, id)
	if err != nil {
		return domain.Produto{}, false, err
	}
	return produto, false, nil
}
