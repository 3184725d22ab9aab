package factory_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/asset-engine/depreciation"
	"github.com/warp/asset-engine/factory"
)

func TestScheduleToJSON_FieldNamesAndAmounts(t *testing.T) {
	// GIVEN: a two-year straight-line schedule
	s, err := depreciation.Compute(depreciation.Request{
		AssetID:       "A7",
		AssetName:     "Kiln",
		InitialCost:   decimal.NewFromInt(1000),
		ResidualValue: decimal.NewFromInt(100),
		UsefulLife:    2,
		Method:        depreciation.StraightLine,
	})
	require.NoError(t, err)

	// WHEN: converted and encoded
	doc := factory.ScheduleToJSON(s)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	// THEN: the wire names are the calculate endpoint's
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "A7", raw["asset_id"])
	assert.Equal(t, "straight-line", raw["method"])
	assert.Equal(t, 900.0, raw["total_depreciation"])

	// AND: entries carry plain numbers
	require.Len(t, doc.Schedule, 2)
	assert.Equal(t, factory.YearEntryJSON{
		Year:                    2,
		BeginningBookValue:      550,
		DepreciationExpense:     450,
		AccumulatedDepreciation: 900,
		EndingBookValue:         100,
	}, doc.Schedule[1])

	entries, ok := raw["schedule"].([]any)
	require.True(t, ok)
	first, ok := entries[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 450.0, first["depreciation_expense"])
	assert.Equal(t, 550.0, first["ending_book_value"])
}

func TestScheduleToJSON_EmptyScheduleEncodesEmptyList(t *testing.T) {
	data, err := json.Marshal(factory.ScheduleToJSON(depreciation.Schedule{}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"schedule":[]`)
}
