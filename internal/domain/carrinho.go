package domain

// ItemCarrinho — одна строка корзины пользователя.
// Инвариант: в корзине не бывает двух строк с одним produto.id — повторное
// добавление увеличивает Quantidade и PrecoTotal существующей строки.
// JSON-теги совпадают с форматом снапшота carrinhoProdutos_<userId>.
type ItemCarrinho struct {
	// ID строки назначается при первом добавлении и нужен для аудита.
	ID         string  `json:"id"`
	Produto    Produto `json:"produto"`
	Quantidade int     `json:"quantidade"`
	// PrecoTotal хранится явно, а не вычисляется при чтении: снапшот
	// должен оставаться самодостаточным для любого потребителя ключа.
	PrecoTotal float64 `json:"precoTotal"`
}

// ValidateInvariants проверяет строку корзины при чтении снапшота из хранилища.
func (i *ItemCarrinho) ValidateInvariants() []error {
	var errs []error

	if i.Quantidade < 1 {
		errs = append(errs, ErrQuantidadeInvalid)
	}
	if i.PrecoTotal < 0 {
		errs = append(errs, ErrPrecoTotalNegative)
	}
	errs = append(errs, i.Produto.ValidateInvariants()...)

	return errs
}
