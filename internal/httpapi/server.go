// Package httpapi — JSON-поверхность поверх каталога заказов и корзины.
// Маршруты повторяют события интерфейса: монтирование экрана, ввод в поиск,
// переключение сортировки, клик «добавить в корзину».
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistrot/internal/cart"
	"github.com/vladislavdragonenkov/bistrot/internal/catalog"
	"github.com/vladislavdragonenkov/bistrot/internal/domain"
	"github.com/vladislavdragonenkov/bistrot/internal/metrics"
	"github.com/vladislavdragonenkov/bistrot/internal/product"
	"github.com/vladislavdragonenkov/bistrot/internal/storage"
)

// Server связывает поверхность API с движком каталога и корзиной.
type Server struct {
	router   *mux.Router
	view     *catalog.View
	produtos *product.Reader
	store    storage.KeyValueStore
	logger   *log.Entry
	metrics  *metrics.ClientMetrics
	assetURL func(string) string
}

// NewServer регистрирует маршруты. assetURL может быть nil, тогда ссылки
// на фото не отдаются.
func NewServer(view *catalog.View, produtos *product.Reader, store storage.KeyValueStore,
	assetURL func(string) string, logger *log.Entry, m *metrics.ClientMetrics) *Server {
	if logger == nil {
		logger = log.WithField("component", "httpapi")
	}

	s := &Server{
		router:   mux.NewRouter(),
		view:     view,
		produtos: produtos,
		store:    store,
		logger:   logger,
		metrics:  m,
		assetURL: assetURL,
	}

	s.router.Use(s.requestIDMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/pedidos/recarregar", s.handleReload).Methods(http.MethodPost)
	api.HandleFunc("/pedidos/filtro", s.handleFilter).Methods(http.MethodPost)
	api.HandleFunc("/pedidos/ordem", s.handleToggleSort).Methods(http.MethodPost)
	api.HandleFunc("/pedidos", s.handleListOrders).Methods(http.MethodGet)
	api.HandleFunc("/produtos/{id:[0-9]+}", s.handleGetProduct).Methods(http.MethodGet)
	api.HandleFunc("/carrinho/itens", s.handleCartAdd).Methods(http.MethodPost)
	api.HandleFunc("/carrinho", s.handleCartGet).Methods(http.MethodGet)

	return s
}

// Router возвращает корневой обработчик для HTTP-сервера.
func (s *Server) Router() http.Handler {
	return s.router
}

// pedidoRow — строка таблицы заказов: заказ плюс его цветовая группа.
type pedidoRow struct {
	domain.Pedido
	Tier domain.StatusTier `json:"tier"`
}

type pedidosResponse struct {
	Pedidos   []pedidoRow `json:"pedidos"`
	Ascending bool        `json:"ascending"`
}

func (s *Server) projectionResponse() pedidosResponse {
	visiveis := s.view.Visible()
	rows := make([]pedidoRow, 0, len(visiveis))
	for _, pedido := range visiveis {
		rows = append(rows, pedidoRow{
			Pedido: pedido,
			Tier:   domain.TierForStatus(pedido.StatusPedido),
		})
	}
	return pedidosResponse{Pedidos: rows, Ascending: s.view.Ascending()}
}

// handleReload — монтирование экрана или ручная перезагрузка.
// Неудачная загрузка не ошибка ответа: экран рендерит пустое состояние.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.view.Load(r.Context()); err != nil {
		s.logger.WithError(err).Warn("перезагрузка каталога не удалась, отдаём пустую проекцию")
	}
	writeJSON(w, http.StatusOK, s.projectionResponse())
}

func (s *Server) handleListOrders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.projectionResponse())
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Termo string `json:"termo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo inválido")
		return
	}

	s.view.Filter(req.Termo)
	writeJSON(w, http.StatusOK, s.projectionResponse())
}

func (s *Server) handleToggleSort(w http.ResponseWriter, _ *http.Request) {
	s.view.ToggleSort()
	writeJSON(w, http.StatusOK, s.projectionResponse())
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}

	produto, fromCache, err := s.produtos.Get(r.Context(), id)
	if errors.Is(err, domain.ErrProdutoNotFound) {
		writeError(w, http.StatusNotFound, "produto não encontrado")
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("не удалось получить продукт")
		writeError(w, http.StatusBadGateway, "falha ao carregar produto")
		return
	}

	resp := struct {
		domain.Produto
		FotoURL string `json:"foto_url,omitempty"`
		Cached  bool   `json:"cached"`
	}{Produto: produto, Cached: fromCache}
	if s.assetURL != nil && produto.Foto != "" {
		resp.FotoURL = s.assetURL(produto.Foto)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProdutoID  int64 `json:"produto_id"`
		Quantidade int   `json:"quantidade"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo inválido")
		return
	}
	if req.Quantidade == 0 {
		req.Quantidade = 1
	}

	sess, err := cart.Open(r.Context(), s.store, s.logger, s.metrics)
	if err != nil {
		s.logger.WithError(err).Error("не удалось открыть сессию корзины")
		writeError(w, http.StatusInternalServerError, "falha ao abrir carrinho")
		return
	}

	// Проверка идентичности до похода за продуктом: анонимный запрос
	// не должен стоить обращения к платформе.
	if !sess.Authenticated() {
		if s.metrics != nil {
			s.metrics.RecordCartAddRejected()
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"erro":     "Faça login para adicionar produtos ao carrinho!",
			"redirect": "/login",
		})
		return
	}

	produto, _, err := s.produtos.Get(r.Context(), req.ProdutoID)
	if errors.Is(err, domain.ErrProdutoNotFound) {
		writeError(w, http.StatusNotFound, "produto não encontrado")
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("не удалось получить продукт для корзины")
		writeError(w, http.StatusBadGateway, "falha ao carregar produto")
		return
	}

	if err := sess.Add(r.Context(), &produto, req.Quantidade); err != nil {
		switch {
		case domain.IsAuthRequired(err):
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"erro":     "Faça login para adicionar produtos ao carrinho!",
				"redirect": "/login",
			})
		case errors.Is(err, domain.ErrQuantidadeInvalid):
			writeError(w, http.StatusBadRequest, "quantidade inválida")
		default:
			s.logger.WithError(err).Error("не удалось сохранить корзину")
			writeError(w, http.StatusInternalServerError, "falha ao salvar carrinho")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"mensagem": "Produto adicionado ao carrinho!",
		"itens":    sess.Itens(),
	})
}

func (s *Server) handleCartGet(w http.ResponseWriter, r *http.Request) {
	sess, err := cart.Open(r.Context(), s.store, s.logger, s.metrics)
	if err != nil {
		s.logger.WithError(err).Error("не удалось открыть сессию корзины")
		writeError(w, http.StatusInternalServerError, "falha ao abrir carrinho")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"itens": sess.Itens()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"erro": message})
}
