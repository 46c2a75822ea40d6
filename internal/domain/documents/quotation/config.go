package quotation

import "cotizador/internal/core/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for quotations.
	// Quotation numbers are shown to clients, so gaps are not acceptable.
	NumeratorStrategy = numerator.StrategyStrict

	// NumberPrefix is used for generated quotation numbers (COT-2026-00001).
	NumberPrefix = "COT"
)
