package domain

import "strings"

// StatusTier — цветовая группа статуса заказа для отображения.
type StatusTier string

const (
	// TierPositive — заказ успешно завершён или в доставке (зелёный).
	TierPositive StatusTier = "green"
	// TierNegative — заказ отклонён или истёк (красный).
	TierNegative StatusTier = "red"
	// TierPending — заказ ещё рассматривается (жёлтый).
	TierPending StatusTier = "yellow"
	// TierNone — статус не распознан, рендерится стилем по умолчанию.
	TierNone StatusTier = ""
)

// TierForStatus отображает строку статуса в цветовую группу.
// Сравнение без учёта регистра; неизвестные статусы получают TierNone.
func TierForStatus(status string) StatusTier {
	switch strings.ToLower(status) {
	case "entregue", "retirado", "finalizado", "saindo para entrega":
		return TierPositive
	case "recusado", "expirado":
		return TierNegative
	case "em análise":
		return TierPending
	default:
		return TierNone
	}
}
