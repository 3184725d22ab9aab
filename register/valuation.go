/*
valuation.go - Current and projected asset values

PURPOSE:
  Turns an asset's depreciation schedule into point-in-time figures. All
  reported figures are rounded to cents; ages and remaining lives to
  hundredths of a year.

FULLY DEPRECIATED:
  An asset is fully depreciated once its value has reached the salvage
  value or its useful life has elapsed. The second condition covers
  schedules that end a few cents above salvage after rounding, and
  declining balance schedules that never reach it.
*/
package register

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// yearMillis is 365.25 days.
var yearMillis = decimal.NewFromInt(31_557_600_000)

// yearsBetween returns the fractional years from one instant to another.
func yearsBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(to.Sub(from).Milliseconds()).Div(yearMillis)
}

// Valuation is an asset's value at a point in time.
type Valuation struct {
	Asset               Asset
	AsOf                time.Time
	CurrentValue        decimal.Decimal
	AnnualDepreciation  decimal.Decimal
	DepreciationToDate  decimal.Decimal
	RemainingUsefulLife decimal.Decimal
	FullyDepreciated    bool
}

// Projection compares today's value with the value at a future date.
type Projection struct {
	AssetID             string
	AssetName           string
	Date                time.Time
	CurrentValue        decimal.Decimal
	ProjectedValue      decimal.Decimal
	DepreciationBetween decimal.Decimal
}

// Summary aggregates the whole register.
type Summary struct {
	TotalAssets            int
	TotalPurchaseValue     decimal.Decimal
	TotalCurrentValue      decimal.Decimal
	TotalDepreciation      decimal.Decimal
	FullyDepreciatedAssets int
	AverageAgeYears        decimal.Decimal
}

func valueAt(a Asset, at time.Time) (Valuation, error) {
	schedule, err := a.Schedule()
	if err != nil {
		return Valuation{}, err
	}

	elapsed := yearsBetween(a.PurchaseDate, at)
	current := schedule.BookValueAt(elapsed)
	remaining := decimal.Max(decimal.NewFromInt(int64(a.UsefulLifeYears)).Sub(elapsed), decimal.Zero)

	return Valuation{
		Asset:               a,
		AsOf:                at,
		CurrentValue:        current.Round(2),
		AnnualDepreciation:  schedule.ExpenseForYearAt(elapsed).Round(2),
		DepreciationToDate:  a.PurchasePrice.Sub(current).Round(2),
		RemainingUsefulLife: remaining.Round(2),
		FullyDepreciated:    current.LessThanOrEqual(a.SalvageValue) || remaining.IsZero(),
	}, nil
}

// Valuation returns an asset's value as of now.
func (s *Service) Valuation(ctx context.Context, id string) (Valuation, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Valuation{}, err
	}
	return valueAt(a, s.now())
}

// Valuations values every asset as of now, newest first.
func (s *Service) Valuations(ctx context.Context) ([]Valuation, error) {
	return s.valuations(ctx, func(Valuation) bool { return true })
}

// FullyDepreciated returns the valuations of written-off assets.
func (s *Service) FullyDepreciated(ctx context.Context) ([]Valuation, error) {
	return s.valuations(ctx, func(v Valuation) bool { return v.FullyDepreciated })
}

// NearingEndOfLife returns assets with remaining life in (0, thresholdYears].
func (s *Service) NearingEndOfLife(ctx context.Context, thresholdYears decimal.Decimal) ([]Valuation, error) {
	return s.valuations(ctx, func(v Valuation) bool {
		return v.RemainingUsefulLife.IsPositive() && v.RemainingUsefulLife.LessThanOrEqual(thresholdYears)
	})
}

func (s *Service) valuations(ctx context.Context, keep func(Valuation) bool) ([]Valuation, error) {
	assets, err := s.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]Valuation, 0, len(assets))
	for _, a := range assets {
		v, err := valueAt(a, now)
		if err != nil {
			return nil, err
		}
		if keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// ProjectedValue values an asset at a future date.
func (s *Service) ProjectedValue(ctx context.Context, id string, date time.Time) (Projection, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Projection{}, err
	}

	now := s.now()
	if !date.After(now) {
		return Projection{}, ErrInvalidProjectionDate
	}

	current, err := valueAt(a, now)
	if err != nil {
		return Projection{}, err
	}
	future, err := valueAt(a, date)
	if err != nil {
		return Projection{}, err
	}

	return Projection{
		AssetID:             a.ID,
		AssetName:           a.Name,
		Date:                date,
		CurrentValue:        current.CurrentValue,
		ProjectedValue:      future.CurrentValue,
		DepreciationBetween: current.CurrentValue.Sub(future.CurrentValue),
	}, nil
}

// Summary totals purchase and current values across the register.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	all, err := s.Valuations(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		TotalAssets:        len(all),
		TotalPurchaseValue: decimal.Zero,
		TotalCurrentValue:  decimal.Zero,
		TotalDepreciation:  decimal.Zero,
		AverageAgeYears:    decimal.Zero,
	}
	if len(all) == 0 {
		return sum, nil
	}

	totalAge := decimal.Zero
	for _, v := range all {
		sum.TotalPurchaseValue = sum.TotalPurchaseValue.Add(v.Asset.PurchasePrice)
		sum.TotalCurrentValue = sum.TotalCurrentValue.Add(v.CurrentValue)
		if v.FullyDepreciated {
			sum.FullyDepreciatedAssets++
		}
		totalAge = totalAge.Add(yearsBetween(v.Asset.PurchaseDate, v.AsOf))
	}

	sum.TotalPurchaseValue = sum.TotalPurchaseValue.Round(2)
	sum.TotalCurrentValue = sum.TotalCurrentValue.Round(2)
	sum.TotalDepreciation = sum.TotalPurchaseValue.Sub(sum.TotalCurrentValue)
	sum.AverageAgeYears = totalAge.Div(decimal.NewFromInt(int64(len(all)))).Round(2)
	return sum, nil
}
