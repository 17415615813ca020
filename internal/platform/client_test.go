package platform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vladislavdragonenkov/bistrot/internal/domain"
)

const pedidosPayload = `[
	{
		"numero_pedido": 1,
		"nome_cliente": "Maria Souza",
		"id_cliente": 7,
		"status_pedido": "Entregue",
		"data": "2024-01-01T12:00:00Z",
		"produtos": [{"nome": "Coxinha"}],
		"valor_total": 25.9
	},
	{
		"numero_pedido": 0,
		"nome_cliente": "",
		"status_pedido": "",
		"valor_total": -1
	},
	{
		"numero_pedido": 2,
		"nome_cliente": "João Lima",
		"id_cliente": 8,
		"status_pedido": "Em análise",
		"data": "2024-02-01T12:00:00Z",
		"produtos": [{"nome": "Pastel"}],
		"valor_total": 10
	}
]`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewClient("   ", nil, nil); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestListOrders_SkipsInvalidRecords(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pedidos" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pedidosPayload))
	}))

	pedidos, err := client.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}

	if len(pedidos) != 2 {
		t.Fatalf("expected 2 valid orders, got %d", len(pedidos))
	}
	if pedidos[0].NumeroPedido != 1 || pedidos[1].NumeroPedido != 2 {
		t.Fatalf("server order must be preserved: %+v", pedidos)
	}
}

func TestListOrders_ServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	if _, err := client.ListOrders(context.Background()); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestListOrders_MalformedBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))

	if _, err := client.ListOrders(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGetProduct_Ok(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/produtos/3" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":3,"nome":"Pastel","preco":10,"foto":"pastel.png","categoria":"Salgados"}`))
	}))

	produto, err := client.GetProduct(context.Background(), 3)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if produto.ID != 3 || produto.Nome != "Pastel" || produto.Preco != 10 {
		t.Fatalf("unexpected product: %+v", produto)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetProduct(context.Background(), 99)
	if !errors.Is(err, domain.ErrProdutoNotFound) {
		t.Fatalf("expected ErrProdutoNotFound, got %v", err)
	}
}

func TestGetProduct_RejectsInvalidPayload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":0,"nome":"","preco":-1}`))
	}))

	if _, err := client.GetProduct(context.Background(), 3); err == nil {
		t.Fatal("expected validation error for malformed product")
	}
}

func TestAssetURL(t *testing.T) {
	client, err := NewClient("http://localhost:6969/", nil, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if got := client.AssetURL("coxinha 1.png"); got != "http://localhost:6969/files/coxinha%201.png" {
		t.Fatalf("unexpected asset url: %s", got)
	}
}
