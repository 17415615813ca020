// Package cart реализует корзину: слияние строк по продукту и сохранение
// снапшота целиком в key-value хранилище пользователя.
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistrot/internal/domain"
	"github.com/vladislavdragonenkov/bistrot/internal/metrics"
	"github.com/vladislavdragonenkov/bistrot/internal/storage"
)

// Session — корзина одного пользователя на время жизни экрана продукта.
// Снапшот читается один раз при Open, дальнейшие Add работают с копией в
// памяти и каждый раз перезаписывают ключ целиком (last-writer-wins).
type Session struct {
	store   storage.KeyValueStore
	logger  *log.Entry
	metrics *metrics.ClientMetrics

	userID string
	itens  []domain.ItemCarrinho
}

// Open загружает идентификатор пользователя и снапшот его корзины.
// Отсутствие userId не мешает открыть сессию: экран продукта доступен и
// анониму, запрет срабатывает только на Add.
func Open(ctx context.Context, store storage.KeyValueStore, logger *log.Entry, m *metrics.ClientMetrics) (*Session, error) {
	if logger == nil {
		logger = log.WithField("component", "cart")
	}

	s := &Session{
		store:   store,
		logger:  logger,
		metrics: m,
	}

	raw, ok, err := store.Get(ctx, storage.UserIDKey)
	if err != nil {
		return nil, fmt.Errorf("read user id: %w", err)
	}
	if !ok {
		return s, nil
	}
	s.userID = string(raw)

	snapshot, ok, err := store.Get(ctx, storage.CartKey(s.userID))
	if err != nil {
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}
	if !ok {
		return s, nil
	}

	var itens []domain.ItemCarrinho
	if err := json.Unmarshal(snapshot, &itens); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	for i := range itens {
		if errs := itens[i].ValidateInvariants(); len(errs) != 0 {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrSnapshotCorrupt, i, errs)
		}
	}
	s.itens = itens

	return s, nil
}

// Add добавляет продукт в корзину. Повторное добавление того же продукта
// увеличивает количество и сумму существующей строки; дубликатов по
// produto.id не бывает, порядок вставки сохраняется.
func (s *Session) Add(ctx context.Context, produto *domain.Produto, quantidade int) error {
	if s.userID == "" {
		if s.metrics != nil {
			s.metrics.RecordCartAddRejected()
		}
		return domain.ErrAuthRequired
	}
	if produto == nil {
		if s.metrics != nil {
			s.metrics.RecordCartAddRejected()
		}
		// Ошибка уровня программирования: логируем, сообщения пользователю нет.
		s.logger.Error("добавление в корзину без выбранного продукта")
		return domain.ErrProdutoRequired
	}
	if quantidade < 1 {
		if s.metrics != nil {
			s.metrics.RecordCartAddRejected()
		}
		return domain.ErrQuantidadeInvalid
	}

	delta := produto.Preco * float64(quantidade)

	merged := false
	for i := range s.itens {
		if s.itens[i].Produto.ID == produto.ID {
			s.itens[i].Quantidade += quantidade
			s.itens[i].PrecoTotal += delta
			merged = true
			break
		}
	}
	if !merged {
		s.itens = append(s.itens, domain.ItemCarrinho{
			ID:         uuid.New().String(),
			Produto:    *produto,
			Quantidade: quantidade,
			PrecoTotal: delta,
		})
	}

	snapshot, err := json.Marshal(s.itens)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	if err := s.store.Set(ctx, storage.CartKey(s.userID), snapshot); err != nil {
		return fmt.Errorf("persist cart snapshot: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordCartAdd()
	}
	s.logger.WithFields(log.Fields{
		"produto_id": produto.ID,
		"quantidade": quantidade,
		"merged":     merged,
	}).Info("продукт добавлен в корзину")
	return nil
}

// Itens возвращает копию строк корзины в порядке вставки.
func (s *Session) Itens() []domain.ItemCarrinho {
	return append([]domain.ItemCarrinho(nil), s.itens...)
}

// Authenticated сообщает, есть ли у сессии идентификатор пользователя.
func (s *Session) Authenticated() bool {
	return s.userID != ""
}
