// Package catalog реализует экран «все заказы»: одна загрузка с платформы,
// затем синхронные фильтрация и сортировка поверх локальной коллекции.
package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistrot/internal/domain"
	"github.com/vladislavdragonenkov/bistrot/internal/metrics"
)

// FilterAll — специальный токен, снимающий фильтрацию.
const FilterAll = "Todos"

// dateBR — формат даты для текстового поиска, как её видит пользователь
// (toLocaleDateString pt-BR в исходном интерфейсе).
const dateBR = "02/01/2006"

// Source отдаёт полную коллекцию заказов; пагинации и серверных фильтров нет.
type Source interface {
	ListOrders(ctx context.Context) ([]domain.Pedido, error)
}

// View держит полную коллекцию заказов и её видимую проекцию.
// Полная коллекция неизменяема между загрузками; проекция — всегда
// производное представление (фильтр/сортировка), никогда не мутация.
type View struct {
	mu      sync.RWMutex
	source  Source
	logger  *log.Entry
	metrics *metrics.ClientMetrics

	pedidos   []domain.Pedido
	visiveis  []domain.Pedido
	ascending bool
}

// NewView создаёт пустую проекцию; заказы появляются после Load.
func NewView(source Source, logger *log.Entry, m *metrics.ClientMetrics) *View {
	if logger == nil {
		logger = log.WithField("component", "catalog")
	}
	return &View{
		source:    source,
		logger:    logger,
		metrics:   m,
		ascending: true,
	}
}

// Load выполняет единственный сетевой запрос экрана. Успех заменяет обе
// коллекции в серверном порядке и сбрасывает сортировку; неудача оставляет
// их пустыми — экран рендерит явное состояние «ничего не найдено».
func (v *View) Load(ctx context.Context) error {
	if v.metrics != nil {
		v.metrics.RecordCatalogLoad()
	}

	pedidos, err := v.source.ListOrders(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		v.pedidos = nil
		v.visiveis = nil
		v.ascending = true
		if v.metrics != nil {
			v.metrics.RecordCatalogLoadFailure()
			v.metrics.SetVisibleOrders(0)
		}
		v.logger.WithError(err).Error("не удалось загрузить список заказов")
		return err
	}

	v.pedidos = append([]domain.Pedido(nil), pedidos...)
	v.visiveis = append([]domain.Pedido(nil), pedidos...)
	v.ascending = true
	if v.metrics != nil {
		v.metrics.SetVisibleOrders(len(v.visiveis))
	}
	v.logger.WithField("count", len(pedidos)).Info("каталог заказов загружен")
	return nil
}

// Filter пересчитывает видимую проекцию по строке запроса или токену статуса.
// Фильтр всегда берёт полную коллекцию за основу; заказ попадает в проекцию,
// если совпало хотя бы одно из пяти полей (OR).
func (v *View) Filter(term string) {
	if v.metrics != nil {
		v.metrics.RecordCatalogFilter()
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if strings.EqualFold(term, FilterAll) {
		v.visiveis = append([]domain.Pedido(nil), v.pedidos...)
		if v.metrics != nil {
			v.metrics.SetVisibleOrders(len(v.visiveis))
		}
		return
	}

	needle := strings.ToLower(term)
	filtered := make([]domain.Pedido, 0, len(v.pedidos))
	for _, pedido := range v.pedidos {
		if matches(pedido, needle) {
			filtered = append(filtered, pedido)
		}
	}

	v.visiveis = filtered
	if v.metrics != nil {
		v.metrics.SetVisibleOrders(len(v.visiveis))
	}
}

// matches — точное совпадение статуса или подстрока в одном из полей:
// имя клиента, номер заказа, статус, локализованная дата, название позиции.
func matches(pedido domain.Pedido, needle string) bool {
	if strings.ToLower(pedido.StatusPedido) == needle {
		return true
	}

	fields := []string{
		strings.ToLower(pedido.NomeCliente),
		strconv.FormatInt(pedido.NumeroPedido, 10),
		strings.ToLower(pedido.StatusPedido),
		pedido.Data.Format(dateBR),
	}
	for _, field := range fields {
		if strings.Contains(field, needle) {
			return true
		}
	}
	for _, item := range pedido.Produtos {
		if strings.Contains(strings.ToLower(item.Nome), needle) {
			return true
		}
	}

	return false
}

// ToggleSort сортирует ТЕКУЩУЮ видимую проекцию по дате в текущем
// направлении и переключает флаг. Фильтрация не сбрасывает порядок,
// а свежая загрузка — сбрасывает.
func (v *View) ToggleSort() {
	if v.metrics != nil {
		v.metrics.RecordSortToggle()
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	asc := v.ascending
	sort.SliceStable(v.visiveis, func(i, j int) bool {
		if asc {
			return v.visiveis[i].Data.Before(v.visiveis[j].Data)
		}
		return v.visiveis[i].Data.After(v.visiveis[j].Data)
	})
	v.ascending = !v.ascending
}

// Visible возвращает копию видимой проекции.
func (v *View) Visible() []domain.Pedido {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]domain.Pedido(nil), v.visiveis...)
}

// Ascending сообщает направление, в котором отработает следующий ToggleSort.
func (v *View) Ascending() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.ascending
}
