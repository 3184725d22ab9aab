package factory

import (
	"github.com/shopspring/decimal"

	"github.com/warp/asset-engine/depreciation"
)

// YearEntryJSON is one year of a schedule document.
type YearEntryJSON struct {
	Year                    int     `json:"year"`
	BeginningBookValue      float64 `json:"beginning_book_value"`
	DepreciationExpense     float64 `json:"depreciation_expense"`
	AccumulatedDepreciation float64 `json:"accumulated_depreciation"`
	EndingBookValue         float64 `json:"ending_book_value"`
}

// ScheduleJSON is the document returned by POST /api/depreciation/calculate
// and printed by depcalc schedule --json. Amounts are plain JSON numbers.
type ScheduleJSON struct {
	AssetID           string          `json:"asset_id"`
	AssetName         string          `json:"asset_name"`
	Method            string          `json:"method"`
	InitialCost       float64         `json:"initial_cost"`
	ResidualValue     float64         `json:"residual_value"`
	UsefulLife        int             `json:"useful_life"`
	TotalDepreciation float64         `json:"total_depreciation"`
	Schedule          []YearEntryJSON `json:"schedule"`
}

// ScheduleToJSON converts an engine schedule into its document form.
func ScheduleToJSON(s depreciation.Schedule) ScheduleJSON {
	entries := make([]YearEntryJSON, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = YearEntryJSON{
			Year:                    e.Year,
			BeginningBookValue:      number(e.BeginningBookValue),
			DepreciationExpense:     number(e.DepreciationExpense),
			AccumulatedDepreciation: number(e.AccumulatedDepreciation),
			EndingBookValue:         number(e.EndingBookValue),
		}
	}
	return ScheduleJSON{
		AssetID:           s.AssetID,
		AssetName:         s.AssetName,
		Method:            s.Method.String(),
		InitialCost:       number(s.InitialCost),
		ResidualValue:     number(s.ResidualValue),
		UsefulLife:        s.UsefulLife,
		TotalDepreciation: number(s.TotalDepreciation),
		Schedule:          entries,
	}
}

func number(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
