package domain

// Produto описывает позицию каталога ресторана.
// Wire-формат платформы (GET /produtos/{id}); тот же снапшот кладётся
// в локальный кэш под ключом produto_<id>.
type Produto struct {
	ID        int64   `json:"id"`
	Nome      string  `json:"nome"`
	Preco     float64 `json:"preco"`
	Foto      string  `json:"foto"`
	Categoria string  `json:"categoria"`
	Descricao string  `json:"descricao"`
	// RestricaoAlergica — текст аллергических ограничений; ключ без
	// подчёркивания повторяет формат платформы.
	RestricaoAlergica string `json:"restricaoalergica"`
}

// ValidateInvariants проверяет снапшот продукта на границе сети/кэша.
func (p *Produto) ValidateInvariants() []error {
	var errs []error

	if p.ID <= 0 {
		errs = append(errs, ErrProdutoIDRequired)
	}
	if p.Nome == "" {
		errs = append(errs, ErrProdutoNomeRequired)
	}
	if p.Preco < 0 {
		errs = append(errs, ErrPrecoNegative)
	}

	return errs
}
