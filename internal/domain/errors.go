package domain

import "errors"

var (
	// Ошибка отсутствующего номера заказа.
	ErrNumeroPedidoRequired = errors.New("order number is required")
	// Ошибка отсутствующего имени клиента в заказе.
	ErrNomeClienteRequired = errors.New("customer name is required")
	// Ошибка отсутствующего статуса заказа.
	ErrStatusPedidoRequired = errors.New("order status is required")
	// Ошибка отсутствующей даты заказа.
	ErrDataPedidoRequired = errors.New("order date is required")
	// Ошибка отрицательной суммы заказа.
	ErrValorTotalNegative = errors.New("order total must be non-negative")
	// Ошибка отсутствующего идентификатора продукта.
	ErrProdutoIDRequired = errors.New("product id is required")
	// Ошибка отсутствующего названия продукта.
	ErrProdutoNomeRequired = errors.New("product name is required")
	// Ошибка отрицательной цены продукта.
	ErrPrecoNegative = errors.New("product price must be non-negative")
	// Ошибка при некорректном количестве в строке корзины (< 1).
	ErrQuantidadeInvalid = errors.New("cart line quantity must be at least one")
	// Ошибка отрицательной суммы строки корзины.
	ErrPrecoTotalNegative = errors.New("cart line total must be non-negative")
	// ErrAuthRequired возвращается при попытке изменить корзину без
	// идентификатора пользователя; вызывающий предлагает переход на логин.
	ErrAuthRequired = errors.New("authentication required")
	// ErrProdutoRequired — программная ошибка: добавление в корзину без продукта.
	ErrProdutoRequired = errors.New("product is required")
	// ErrProdutoNotFound возвращается, если продукт не найден ни в кэше, ни на платформе.
	ErrProdutoNotFound = errors.New("product not found")
	// ErrSnapshotCorrupt сигнализирует о нечитаемом снапшоте в хранилище.
	ErrSnapshotCorrupt = errors.New("stored snapshot is corrupt")
)

// IsAuthRequired проверяет, требует ли ошибка перехода к аутентификации.
func IsAuthRequired(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}
