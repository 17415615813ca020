package cart

import (
	"testing"

	"github.com/vladislavdragonenkov/bistrot/internal/domain"
)

func TestStepper_FloorAtOne(t *testing.T) {
	s := NewStepper()
	if s.Quantidade() != 1 {
		t.Fatalf("stepper must start at 1, got %d", s.Quantidade())
	}

	s.Decrement()
	if s.Quantidade() != 1 {
		t.Fatalf("decrement at 1 must be a no-op, got %d", s.Quantidade())
	}

	s.Increment()
	s.Increment()
	if s.Quantidade() != 3 {
		t.Fatalf("expected 3 after two increments, got %d", s.Quantidade())
	}

	s.Decrement()
	if s.Quantidade() != 2 {
		t.Fatalf("expected 2 after decrement, got %d", s.Quantidade())
	}
}

func TestStepper_PreviewTotal(t *testing.T) {
	s := NewStepper()
	produto := &domain.Produto{ID: 1, Nome: "Coxinha", Preco: 10}

	if got := s.PreviewTotal(produto); got != 10 {
		t.Fatalf("preview = %v, want 10", got)
	}

	s.Increment()
	s.Increment()
	if got := s.PreviewTotal(produto); got != 30 {
		t.Fatalf("preview = %v, want 30", got)
	}

	// Продукт ещё не загружен — сумма нулевая.
	if got := s.PreviewTotal(nil); got != 0 {
		t.Fatalf("preview without product = %v, want 0", got)
	}
}
