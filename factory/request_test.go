package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/asset-engine/depreciation"
	"github.com/warp/asset-engine/factory"
)

func TestParseRequest_NumbersAndStrings(t *testing.T) {
	body := `{
		"asset_id": "asset-001",
		"asset_name": "Manufacturing Equipment",
		"initial_cost": 100000,
		"residual_value": "10000.50",
		"useful_life": 5,
		"method": "DECLINING_BALANCE",
		"depreciation_rate": 0.2
	}`

	req, err := factory.ParseRequest([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "asset-001", req.AssetID)
	assert.Equal(t, "Manufacturing Equipment", req.AssetName)
	assert.Equal(t, "100000", req.InitialCost.String())
	assert.Equal(t, "10000.5", req.ResidualValue.String())
	assert.Equal(t, 5, req.UsefulLife)
	assert.Equal(t, depreciation.DecliningBalance, req.Method)
	require.NotNil(t, req.DepreciationRate)
	assert.Equal(t, "0.2", req.DepreciationRate.String())
}

func TestParseRequest_AbsentAndNullRate(t *testing.T) {
	for _, body := range []string{
		`{"initial_cost": 1000, "residual_value": 0, "useful_life": 3, "method": "straight-line"}`,
		`{"initial_cost": 1000, "residual_value": 0, "useful_life": 3, "method": "straight-line", "depreciation_rate": null}`,
	} {
		req, err := factory.ParseRequest([]byte(body))
		require.NoError(t, err)
		assert.Nil(t, req.DepreciationRate)
	}
}

func TestParseRequest_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		is   error
	}{
		{"not json", `{"initial_cost": `, factory.ErrMalformedRequest},
		{"unknown field", `{"residual": 10, "method": "straight-line"}`, factory.ErrMalformedRequest},
		{"bad money", `{"initial_cost": "ten", "method": "straight-line"}`, factory.ErrMalformedRequest},
		{"missing method", `{"initial_cost": 10}`, depreciation.ErrInvalidInput},
		{"unknown method", `{"initial_cost": 10, "method": "macrs"}`, depreciation.ErrUnsupportedMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.ParseRequest([]byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestToJSON_RoundTripsThroughParse(t *testing.T) {
	req, err := factory.ParseRequest([]byte(`{"asset_id":"a","initial_cost":500,"residual_value":50,"useful_life":4,"method":"sum_of_years_digits"}`))
	require.NoError(t, err)

	doc := factory.ToJSON(req)
	assert.Equal(t, "sum-of-years-digits", doc.Method)

	again, err := factory.RequestFromJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, req.Method, again.Method)
	assert.True(t, req.InitialCost.Equal(again.InitialCost))
}
