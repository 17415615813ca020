package cart

import "github.com/vladislavdragonenkov/bistrot/internal/domain"

// Stepper — счётчик количества на карточке продукта.
// Нижняя граница всегда 1; предварительная сумма пересчитывается на каждом
// изменении и не сохраняется до явного добавления в корзину.
type Stepper struct {
	quantidade int
}

// NewStepper возвращает счётчик с единицей.
func NewStepper() *Stepper {
	return &Stepper{quantidade: 1}
}

// Increment увеличивает количество; верхней границы нет.
func (s *Stepper) Increment() {
	s.quantidade++
}

// Decrement уменьшает количество, но не ниже единицы.
func (s *Stepper) Decrement() {
	if s.quantidade > 1 {
		s.quantidade--
	}
}

// Quantidade возвращает текущее количество.
func (s *Stepper) Quantidade() int {
	return s.quantidade
}

// PreviewTotal — отображаемая сумма preco × quantidade.
// Продукт может быть ещё не загружен; тогда сумма равна нулю.
func (s *Stepper) PreviewTotal(produto *domain.Produto) float64 {
	if produto == nil {
		return 0
	}
	return produto.Preco * float64(s.quantidade)
}
