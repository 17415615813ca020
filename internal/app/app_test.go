package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIBaseURL == "" {
		t.Fatal("api base url must have a default")
	}
	if cfg.HTTPAddr == "" || cfg.MetricsAddr == "" {
		t.Fatalf("addresses must have defaults: %+v", cfg)
	}
	if cfg.PostgresDSN != "" {
		t.Fatal("postgres must be opt-in")
	}
}

func TestNewDependencies_MemoryStore(t *testing.T) {
	cfg := DefaultConfig()

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new dependencies: %v", err)
	}
	defer deps.Close(nil)

	if deps.KV == nil || deps.Platform == nil || deps.View == nil || deps.Produtos == nil {
		t.Fatalf("dependencies are not fully wired: %+v", deps)
	}
	if deps.PG != nil {
		t.Fatal("postgres store must be nil without a DSN")
	}
}

func TestNewDependencies_RejectsEmptyBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIBaseURL = "   "

	if _, err := NewDependencies(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	platformSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer platformSrv.Close()

	cfg := Config{
		APIBaseURL:  platformSrv.URL,
		HTTPAddr:    "127.0.0.1:0",
		MetricsAddr: "127.0.0.1:0",
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, cfg)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not stop after context cancel")
	}
}
