package domain

import "time"

// ItemPedido представляет одну позицию в составе заказа, как её отдаёт платформа.
type ItemPedido struct {
	// Nome — отображаемое название блюда; участвует в текстовом поиске.
	Nome string `json:"nome"`
}

// Pedido агрегирует заказ клиента ресторана.
// Структура повторяет wire-формат платформы (GET /pedidos), поэтому
// JSON-теги соответствуют португальским именам полей.
type Pedido struct {
	NumeroPedido int64        `json:"numero_pedido"`
	NomeCliente  string       `json:"nome_cliente"`
	IDCliente    int64        `json:"id_cliente"`
	StatusPedido string       `json:"status_pedido"`
	Data         time.Time    `json:"data"`
	Produtos     []ItemPedido `json:"produtos"`
	ValorTotal   float64      `json:"valor_total"`
}

// ValidateInvariants проверяет базовые инварианты заказа на границе сети
// и возвращает список замечаний. Коллекция заказов read-only, поэтому
// проверка выполняется один раз при декодировании ответа платформы.
func (p *Pedido) ValidateInvariants() []error {
	var errs []error

	if p.NumeroPedido <= 0 {
		errs = append(errs, ErrNumeroPedidoRequired)
	}
	if p.NomeCliente == "" {
		errs = append(errs, ErrNomeClienteRequired)
	}
	if p.StatusPedido == "" {
		errs = append(errs, ErrStatusPedidoRequired)
	}
	if p.Data.IsZero() {
		errs = append(errs, ErrDataPedidoRequired)
	}
	if p.ValorTotal < 0 {
		errs = append(errs, ErrValorTotalNegative)
	}

	return errs
}
