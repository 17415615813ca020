package domain_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/bistrot/internal/domain"
)

func TestItemCarrinhoValidateInvariants(t *testing.T) {
	item := domain.ItemCarrinho{
		ID:         "line-1",
		Produto:    domain.Produto{ID: 3, Nome: "Pastel", Preco: 10},
		Quantidade: 2,
		PrecoTotal: 20,
	}
	if errs := item.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}

	item.Quantidade = 0
	item.PrecoTotal = -5

	errs := item.ValidateInvariants()
	if len(errs) != 2 {
		t.Fatalf("expected 2 validation errors, got %v", errs)
	}
}

func TestItemCarrinhoValidateInvariants_BadProduto(t *testing.T) {
	item := domain.ItemCarrinho{
		Produto:    domain.Produto{},
		Quantidade: 1,
		PrecoTotal: 0,
	}

	found := false
	for _, err := range item.ValidateInvariants() {
		if errors.Is(err, domain.ErrProdutoIDRequired) {
			found = true
		}
	}
	if !found {
		t.Fatal("expected produto validation errors to propagate")
	}
}

func TestIsAuthRequired(t *testing.T) {
	if !domain.IsAuthRequired(domain.ErrAuthRequired) {
		t.Fatal("expected ErrAuthRequired to be recognized")
	}
	if domain.IsAuthRequired(domain.ErrProdutoRequired) {
		t.Fatal("unexpected match for unrelated error")
	}
}
