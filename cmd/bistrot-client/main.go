package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistrot/internal/app"
)

const (
	envAPIBaseURL  = "BISTROT_API_URL"
	envHTTPAddr    = "BISTROT_HTTP_ADDR"
	envMetricsAddr = "BISTROT_METRICS_ADDR"
	envPostgresDSN = "BISTROT_POSTGRES_DSN"
)

// envLookup абстрагирует чтение переменных окружения для тестируемости.
type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для клиента.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv формирует конфигурацию приложения поверх значений по умолчанию.
// Пустые после обрезки пробелов переопределения игнорируются с предупреждением.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	override := func(key string, dst *string) {
		raw, ok := lookup(key)
		if !ok {
			return
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			warnings = append(warnings, fmt.Sprintf("%s is set but blank, keeping default", key))
			return
		}
		*dst = value
	}

	override(envAPIBaseURL, &cfg.APIBaseURL)
	override(envHTTPAddr, &cfg.HTTPAddr)
	override(envMetricsAddr, &cfg.MetricsAddr)

	// DSN по умолчанию пуст, пустое значение здесь не ошибка.
	if raw, ok := lookup(envPostgresDSN); ok {
		cfg.PostgresDSN = strings.TrimSpace(raw)
	}

	return cfg, warnings
}

func main() {
	setupLogger()

	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, warning := range warnings {
		log.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"api_base_url": cfg.APIBaseURL,
		"http_addr":    cfg.HTTPAddr,
		"metrics_addr": cfg.MetricsAddr,
	}).Info("запускаем клиент bistrot")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("клиент bistrot остановлен")
}
