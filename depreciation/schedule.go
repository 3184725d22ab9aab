package depreciation

import "github.com/shopspring/decimal"

// Compute validates req, generates the entries for its method and
// assembles the schedule. On error no schedule is produced.
// Compute is safe for concurrent use.
func Compute(req Request) (Schedule, error) {
	if err := Validate(req); err != nil {
		return Schedule{}, err
	}

	entries, err := generate(req)
	if err != nil {
		return Schedule{}, err
	}

	return Schedule{
		AssetID:           req.AssetID,
		AssetName:         req.AssetName,
		Method:            req.Method,
		InitialCost:       req.InitialCost,
		ResidualValue:     req.ResidualValue,
		UsefulLife:        req.UsefulLife,
		TotalDepreciation: req.InitialCost.Sub(req.ResidualValue),
		Entries:           entries,
	}, nil
}

// =============================================================================
// SCHEDULE QUERIES
// =============================================================================

// EntriesTotal sums the emitted expenses. It can differ from
// TotalDepreciation; see Schedule.
func (s Schedule) EntriesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(e.DepreciationExpense)
	}
	return total
}

// BookValueAt returns the book value after the given (possibly fractional)
// number of years, spreading each year's expense evenly across the year.
// The result is not rounded.
func (s Schedule) BookValueAt(years decimal.Decimal) decimal.Decimal {
	if !years.IsPositive() || len(s.Entries) == 0 {
		return s.InitialCost
	}

	whole := years.Floor()
	idx := int(whole.IntPart())
	if idx >= len(s.Entries) {
		return s.Entries[len(s.Entries)-1].EndingBookValue
	}

	entry := s.Entries[idx]
	fraction := years.Sub(whole)
	return entry.BeginningBookValue.Sub(entry.DepreciationExpense.Mul(fraction))
}

// ExpenseForYearAt returns the expense of the schedule year that contains
// the given point in time, or zero once the schedule is exhausted.
func (s Schedule) ExpenseForYearAt(years decimal.Decimal) decimal.Decimal {
	if years.IsNegative() {
		years = decimal.Zero
	}
	idx := int(years.Floor().IntPart())
	if idx >= len(s.Entries) {
		return decimal.Zero
	}
	return s.Entries[idx].DepreciationExpense
}
