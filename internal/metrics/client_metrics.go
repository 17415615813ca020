package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ClientMetrics содержит метрики каталога заказов и корзины.
type ClientMetrics struct {
	// Счётчики каталога
	catalogLoads        prometheus.Counter
	catalogLoadFailures prometheus.Counter
	catalogFilters      prometheus.Counter
	catalogSortToggles  prometheus.Counter

	// Счётчики корзины
	cartAdds         prometheus.Counter
	cartAddsRejected prometheus.Counter

	// Кэш продуктов
	productCacheHits   prometheus.Counter
	productCacheMisses prometheus.Counter

	// Гистограмма времени запросов к платформе
	fetchDuration *prometheus.HistogramVec

	// Gauge размера видимой проекции
	visibleOrders prometheus.Gauge
}

// NewClientMetrics создаёт метрики с регистрацией в DefaultRegisterer.
func NewClientMetrics() *ClientMetrics {
	return newClientMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newClientMetricsWithRegisterer(registerer prometheus.Registerer) *ClientMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ClientMetrics{
		catalogLoads: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bistrot_catalog_loads_total",
			Help: "Total number of order catalog loads attempted",
		}),
		catalogLoadFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bistrot_catalog_load_failures_total",
			Help: "Total number of order catalog loads that failed",
		}),
		catalogFilters: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bistrot_catalog_filters_total",
			Help: "Total number of filter operations over the order catalog",
		}),
		catalogSortToggles: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bistrot_catalog_sort_toggles_total",
			Help: "Total number of date sort toggles",
		}),
		cartAdds: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bistrot_cart_adds_total",
			Help: "Total number of successful cart additions",
		}),
		cartAddsRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bistrot_cart_adds_rejected_total",
			Help: "Total number of cart additions rejected (missing identity or product)",
		}),
		productCacheHits: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bistrot_product_cache_hits_total",
			Help: "Total number of product reads served from the local cache",
		}),
		productCacheMisses: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bistrot_product_cache_misses_total",
			Help: "Total number of product reads that fell back to the remote API",
		}),
		fetchDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "bistrot_remote_fetch_duration_seconds",
			Help:    "Duration of requests to the platform API in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"endpoint"}),
		visibleOrders: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "bistrot_catalog_visible_orders",
			Help: "Number of orders in the visible projection",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCatalogLoad увеличивает счётчик загрузок каталога.
func (m *ClientMetrics) RecordCatalogLoad() {
	m.catalogLoads.Inc()
}

// RecordCatalogLoadFailure увеличивает счётчик неудачных загрузок.
func (m *ClientMetrics) RecordCatalogLoadFailure() {
	m.catalogLoadFailures.Inc()
}

// RecordCatalogFilter увеличивает счётчик операций фильтрации.
func (m *ClientMetrics) RecordCatalogFilter() {
	m.catalogFilters.Inc()
}

// RecordSortToggle увеличивает счётчик переключений сортировки.
func (m *ClientMetrics) RecordSortToggle() {
	m.catalogSortToggles.Inc()
}

// RecordCartAdd увеличивает счётчик успешных добавлений в корзину.
func (m *ClientMetrics) RecordCartAdd() {
	m.cartAdds.Inc()
}

// RecordCartAddRejected увеличивает счётчик отклонённых добавлений.
func (m *ClientMetrics) RecordCartAddRejected() {
	m.cartAddsRejected.Inc()
}

// RecordProductCacheHit увеличивает счётчик попаданий в кэш продуктов.
func (m *ClientMetrics) RecordProductCacheHit() {
	m.productCacheHits.Inc()
}

// RecordProductCacheMiss увеличивает счётчик промахов кэша продуктов.
func (m *ClientMetrics) RecordProductCacheMiss() {
	m.productCacheMisses.Inc()
}

// ObserveFetchDuration записывает время запроса к платформе.
func (m *ClientMetrics) ObserveFetchDuration(endpoint string, duration time.Duration) {
	m.fetchDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// SetVisibleOrders выставляет размер видимой проекции каталога.
func (m *ClientMetrics) SetVisibleOrders(n int) {
	m.visibleOrders.Set(float64(n))
}
