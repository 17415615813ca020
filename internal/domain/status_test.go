package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/bistrot/internal/domain"
)

func TestTierForStatus(t *testing.T) {
	cases := []struct {
		status string
		want   domain.StatusTier
	}{
		{"Entregue", domain.TierPositive},
		{"entregue", domain.TierPositive},
		{"RETIRADO", domain.TierPositive},
		{"Finalizado", domain.TierPositive},
		{"Saindo para entrega", domain.TierPositive},
		{"Recusado", domain.TierNegative},
		{"Expirado", domain.TierNegative},
		{"Em análise", domain.TierPending},
		{"EM ANÁLISE", domain.TierPending},
		{"Em processo", domain.TierNone},
		{"", domain.TierNone},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			if got := domain.TierForStatus(tc.status); got != tc.want {
				t.Fatalf("TierForStatus(%q) = %q, want %q", tc.status, got, tc.want)
			}
		})
	}
}
