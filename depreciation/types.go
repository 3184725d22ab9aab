/*
Package depreciation computes yearly depreciation schedules for fixed assets.

PURPOSE:
  Given an asset's cost, residual value, useful life and method, produce the
  year-by-year book values an accountant would post. The engine is pure:
  no I/O, no clock, no shared state. Identical input always yields an
  identical schedule.

KEY CONCEPTS IN THIS FILE (types.go):
  - Method: The closed set of supported depreciation methods
  - Request: Validated input to the engine
  - YearEntry: One year of a schedule (2-decimal monetary fields)
  - Schedule: Entries plus echoed request metadata

PRECISION:
  All money is decimal.Decimal. The year loop carries the unrounded
  accumulated depreciation; each of the four reported fields is rounded
  to cents (half away from zero) on its own when the entry is emitted.
  Rounding never feeds back into later years, so a 3-year straight-line
  schedule on 2000 reports 666.67 three times and still ends at 0.00.

USAGE:
  rate := decimal.RequireFromString("0.4")
  schedule, err := depreciation.Compute(depreciation.Request{
      AssetID:          "asset-001",
      AssetName:        "Forklift",
      InitialCost:      decimal.NewFromInt(10000),
      ResidualValue:    decimal.NewFromInt(1000),
      UsefulLife:       5,
      Method:           depreciation.DecliningBalance,
      DepreciationRate: &rate,
  })

SEE ALSO:
  - validate.go: Input validation
  - generators.go: The four schedule algorithms
  - schedule.go: Compute and schedule queries
*/
package depreciation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// METHOD - Closed enumeration of depreciation methods
// =============================================================================

// Method identifies a depreciation algorithm.
// The set is closed: adding a variant means extending Methods() and the
// dispatch in generate().
type Method string

const (
	StraightLine           Method = "straight-line"
	DecliningBalance       Method = "declining-balance"
	DoubleDecliningBalance Method = "double-declining-balance"
	SumOfYearsDigits       Method = "sum-of-years-digits"
)

// Methods returns every supported method in declaration order.
func Methods() []Method {
	return []Method{StraightLine, DecliningBalance, DoubleDecliningBalance, SumOfYearsDigits}
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	for _, known := range Methods() {
		if m == known {
			return true
		}
	}
	return false
}

func (m Method) String() string { return string(m) }

// ParseMethod accepts "straight-line", "straight_line" and "STRAIGHT_LINE"
// spellings of every method.
func ParseMethod(s string) (Method, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	m := Method(normalized)
	if !m.Valid() {
		return "", &UnsupportedMethodError{Method: s}
	}
	return m, nil
}

// =============================================================================
// REQUEST - Engine input
// =============================================================================

// Request is the input to Compute. DepreciationRate is nil when absent; it
// is required for DecliningBalance and ignored by every other method.
type Request struct {
	AssetID          string
	AssetName        string
	InitialCost      decimal.Decimal
	ResidualValue    decimal.Decimal
	UsefulLife       int
	Method           Method
	DepreciationRate *decimal.Decimal
}

// =============================================================================
// SCHEDULE - Engine output
// =============================================================================

// YearEntry is one year of a schedule. All monetary fields carry 2 decimals,
// each rounded independently from the exact values.
//
// Invariants for entry i, on the unrounded values:
//   BeginningBookValue == previous EndingBookValue (InitialCost for year 1)
//   EndingBookValue == BeginningBookValue - DepreciationExpense
//   AccumulatedDepreciation == previous AccumulatedDepreciation + DepreciationExpense
//   EndingBookValue >= ResidualValue
//
// After rounding the chaining still holds exactly. The subtraction and the
// running sum can be off by one cent.
type YearEntry struct {
	Year                    int
	BeginningBookValue      decimal.Decimal
	DepreciationExpense     decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
	EndingBookValue         decimal.Decimal
}

// Schedule is the result of Compute.
//
// TotalDepreciation is always InitialCost - ResidualValue. For a declining
// balance schedule that never reaches the residual value, or after rounding,
// it can differ from the sum of the entries; EntriesTotal reports that sum.
type Schedule struct {
	AssetID           string
	AssetName         string
	Method            Method
	InitialCost       decimal.Decimal
	ResidualValue     decimal.Decimal
	UsefulLife        int
	TotalDepreciation decimal.Decimal
	Entries           []YearEntry
}

// =============================================================================
// ROUNDING
// =============================================================================

const moneyPlaces = 2

// roundMoney rounds to cents, half away from zero.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

