// Package pricing implements the quotation cost calculator: per-line pricing,
// quotation-level aggregation and real-expense reconciliation.
//
// The package is pure: it only reads its input records and returns new output
// records. No I/O, no shared state, safe for concurrent use.
package pricing

import (
	"github.com/shopspring/decimal"
)

// Workshop-wide labor rates. Day tasks are priced directly at the daily rate,
// not converted through hour-equivalents.
var (
	// HourlyLaborRate is the price of one workshop labor hour.
	HourlyLaborRate = decimal.NewFromInt(10000)

	// DailyLaborRate is the price of one full workshop day.
	DailyLaborRate = decimal.NewFromInt(80000)

	// DefaultTaxPercent is applied when a quotation does not override the tax rate.
	DefaultTaxPercent = decimal.NewFromInt(19)
)
