package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/bistrot/internal/health"
	"github.com/vladislavdragonenkov/bistrot/internal/httpapi"
	"github.com/vladislavdragonenkov/bistrot/internal/version"
)

// Config описывает минимальные настройки запуска приложения.
type Config struct {
	// APIBaseURL — корень API платформы заказов.
	APIBaseURL string
	// HTTPAddr — адрес JSON-поверхности каталога и корзины.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера (/metrics, /healthz).
	MetricsAddr string
	// PostgresDSN включает PostgreSQL-хранилище состояния; пустая строка
	// означает in-memory.
	PostgresDSN string
}

// DefaultConfig возвращает адреса для локального запуска рядом с платформой.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:  "http://localhost:6969",
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close(logger)

	// Первая загрузка каталога — аналог монтирования экрана. Неудача не
	// фатальна: каталог остаётся пустым до ручной перезагрузки.
	if err := deps.View.Load(ctx); err != nil {
		logger.WithError(err).Warn("первичная загрузка каталога не удалась, продолжаем с пустой проекцией")
	}

	api := httpapi.NewServer(
		deps.View,
		deps.Produtos,
		deps.KV,
		deps.Platform.AssetURL,
		logger.WithField("layer", "http"),
		deps.Metrics,
	)
	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: api.Router()}

	healthHandler := healthcheck.NewHandler(version.String())
	healthHandler.RegisterChecker("platform", healthcheck.NewSimpleChecker("platform", func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return deps.Platform.Ping(pingCtx)
	}))
	if deps.PG != nil {
		healthHandler.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func() error {
			return deps.PG.Ping(context.Background())
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP-серверы")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает служебный HTTP-сервер с метриками и health-чеками.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
