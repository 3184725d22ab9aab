/*
generators.go - The four schedule algorithms

PURPOSE:
  Each method only decides how large a year's expense is. The year loop
  itself (chaining book values, accumulating, rounding) lives in fold().

ALGORITHMS:
  Straight-line:       (cost - residual) / life, every year
  Declining balance:   beginning book value * rate, stops at the residual
  Double-declining:    declining balance with rate = 2 / life
  Sum-of-years-digits: (cost - residual) * remaining / (life(life+1)/2)

RESIDUAL VALUE:
  Only declining balance clamps. An expense that would take the book value
  below the residual value is cut to exactly reach it, and the schedule
  stops there, which is why it can be shorter than the useful life. A pure
  geometric decay never reaches the residual value on its own.
  Straight-line and sum-of-years-digits land on the residual value by
  construction and always run the full life.
*/
package depreciation

import "github.com/shopspring/decimal"

// expenseFunc returns the unrounded expense for a year given the year's
// beginning book value.
type expenseFunc func(year int, beginning decimal.Decimal) decimal.Decimal

// generate dispatches to the generator for req.Method.
func generate(req Request) ([]YearEntry, error) {
	switch req.Method {
	case StraightLine:
		return straightLine(req), nil
	case DecliningBalance:
		return decliningBalance(req, *req.DepreciationRate), nil
	case DoubleDecliningBalance:
		return doubleDecliningBalance(req), nil
	case SumOfYearsDigits:
		return sumOfYearsDigits(req), nil
	default:
		return nil, &UnsupportedMethodError{Method: string(req.Method)}
	}
}

func straightLine(req Request) []YearEntry {
	annual := req.InitialCost.Sub(req.ResidualValue).Div(decimal.NewFromInt(int64(req.UsefulLife)))
	return fold(req, false, func(int, decimal.Decimal) decimal.Decimal {
		return annual
	})
}

func decliningBalance(req Request, rate decimal.Decimal) []YearEntry {
	return fold(req, true, func(_ int, beginning decimal.Decimal) decimal.Decimal {
		return beginning.Mul(rate)
	})
}

// doubleDecliningBalance ignores any supplied rate.
func doubleDecliningBalance(req Request) []YearEntry {
	rate := decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(req.UsefulLife)))
	return decliningBalance(req, rate)
}

func sumOfYearsDigits(req Request) []YearEntry {
	life := int64(req.UsefulLife)
	sumOfYears := decimal.NewFromInt(life * (life + 1) / 2)
	depreciable := req.InitialCost.Sub(req.ResidualValue)
	return fold(req, false, func(year int, _ decimal.Decimal) decimal.Decimal {
		remaining := decimal.NewFromInt(life - int64(year) + 1)
		return depreciable.Mul(remaining).Div(sumOfYears)
	})
}

// fold runs the year loop shared by every method. It carries the exact
// accumulated depreciation and rounds each reported field on its own.
//
// With clampToResidual set, an expense is capped at beginning - residual and
// the schedule ends after the first year whose exact ending value is at or
// below the residual value.
func fold(req Request, clampToResidual bool, expense expenseFunc) []YearEntry {
	entries := make([]YearEntry, 0, req.UsefulLife)

	accumulated := decimal.Zero
	for year := 1; year <= req.UsefulLife; year++ {
		beginning := req.InitialCost.Sub(accumulated)
		amount := expense(year, beginning)
		if clampToResidual {
			if headroom := beginning.Sub(req.ResidualValue); amount.GreaterThan(headroom) {
				amount = headroom
			}
		}
		accumulated = accumulated.Add(amount)
		ending := req.InitialCost.Sub(accumulated)

		entries = append(entries, YearEntry{
			Year:                    year,
			BeginningBookValue:      roundMoney(beginning),
			DepreciationExpense:     roundMoney(amount),
			AccumulatedDepreciation: roundMoney(accumulated),
			EndingBookValue:         roundMoney(ending),
		})
		if clampToResidual && ending.LessThanOrEqual(req.ResidualValue) {
			break
		}
	}
	return entries
}
