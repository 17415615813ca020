// Package platform содержит HTTP-клиент серверной части платформы заказов.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistrot/internal/domain"
	"github.com/vladislavdragonenkov/bistrot/internal/metrics"
)

const defaultRequestTimeout = 10 * time.Second

// Client выполняет запросы к платформе: список заказов, карточка продукта.
// Ретраев и повторов нет: неудачный запрос терминален для текущего экрана,
// повторная попытка — только явная перезагрузка. Cookie jar нужен, чтобы
// запросы продукта шли с учётными данными сессии.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Entry
	metrics *metrics.ClientMetrics
}

// NewClient создаёт клиента платформы. baseURL — корень API без завершающего слэша.
func NewClient(baseURL string, logger *log.Entry, m *metrics.ClientMetrics) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("platform base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse platform base url: %w", err)
	}
	if logger == nil {
		logger = log.WithField("component", "platform")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: defaultRequestTimeout,
			Jar:     jar,
		},
		logger:  logger,
		metrics: m,
	}, nil
}

// ListOrders запрашивает GET /pedidos и возвращает валидные заказы.
// Записи, не проходящие валидацию, пропускаются с предупреждением,
// чтобы одна битая строка не ломала весь каталог.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Pedido, error) {
	start := time.Now()
	defer c.observe("pedidos", start)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/pedidos", nil)
	if err != nil {
		return nil, fmt.Errorf("build pedidos request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch pedidos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch pedidos: unexpected status %d", resp.StatusCode)
	}

	var raw []domain.Pedido
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode pedidos: %w", err)
	}

	pedidos := make([]domain.Pedido, 0, len(raw))
	for _, pedido := range raw {
		if errs := pedido.ValidateInvariants(); len(errs) != 0 {
			c.logger.WithFields(log.Fields{
				"numero_pedido": pedido.NumeroPedido,
				"errors":        errs,
			}).Warn("пропускаем невалидный заказ из ответа платформы")
			continue
		}
		pedidos = append(pedidos, pedido)
	}

	return pedidos, nil
}

// GetProduct запрашивает GET /produtos/{id} с учётными данными сессии.
func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Produto, error) {
	start := time.Now()
	defer c.observe("produtos", start)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/produtos/%d", c.baseURL, id), nil)
	if err != nil {
		return domain.Produto{}, fmt.Errorf("build produto request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Produto{}, fmt.Errorf("fetch produto %d: %w", id, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return domain.Produto{}, domain.ErrProdutoNotFound
	default:
		return domain.Produto{}, fmt.Errorf("fetch produto %d: unexpected status %d", id, resp.StatusCode)
	}

	var produto domain.Produto
	if err := json.NewDecoder(resp.Body).Decode(&produto); err != nil {
		return domain.Produto{}, fmt.Errorf("decode produto %d: %w", id, err)
	}
	if errs := produto.ValidateInvariants(); len(errs) != 0 {
		return domain.Produto{}, fmt.Errorf("produto %d failed validation: %v", id, errs)
	}

	return produto, nil
}

// Ping проверяет достижимость платформы; любой ответ ниже 500 считается
// признаком жизни. Используется health-чекером.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/pedidos", nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping platform: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("ping platform: status %d", resp.StatusCode)
	}
	return nil
}

// AssetURL возвращает адрес статического файла (фото продукта).
func (c *Client) AssetURL(filename string) string {
	return fmt.Sprintf("%s/files/%s", c.baseURL, url.PathEscape(filename))
}

func (c *Client) observe(endpoint string, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveFetchDuration(endpoint, time.Since(start))
	}
}
