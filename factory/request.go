/*
Package factory provides JSON conversion for depreciation requests and
schedules.

PURPOSE:
  Converts JSON request documents into depreciation.Request values, and
  computed schedules back into ScheduleJSON (schedule.go). The HTTP API
  and the depcalc CLI share both directions, so they accept and print
  exactly the same documents.

JSON SCHEMA:
  {
    "asset_id": "asset-001",
    "asset_name": "Manufacturing Equipment",
    "initial_cost": 100000,
    "residual_value": 10000,
    "useful_life": 5,
    "method": "declining-balance",
    "depreciation_rate": 0.2
  }

  Money fields accept JSON numbers or strings ("100000.00"). The method
  accepts "declining-balance", "declining_balance" or "DECLINING_BALANCE".
  depreciation_rate may be omitted or null.

KEY FEATURES:
  - Rejects unknown fields (catches typos like "residual")
  - Parses the method into the closed enumeration
  - Leaves business rule validation to depreciation.Compute

USAGE:
  req, err := factory.ParseRequest(body)
  if err != nil {
      return err
  }
  schedule, err := depreciation.Compute(req)

SEE ALSO:
  - depreciation/validate.go: Business rules
  - api/handlers.go: HTTP entry point
  - commands/schedule.go: CLI entry point
*/
package factory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/asset-engine/depreciation"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RequestJSON is the JSON representation of a depreciation request.
type RequestJSON struct {
	AssetID          string           `json:"asset_id"`
	AssetName        string           `json:"asset_name"`
	InitialCost      decimal.Decimal  `json:"initial_cost"`
	ResidualValue    decimal.Decimal  `json:"residual_value"`
	UsefulLife       int              `json:"useful_life"`
	Method           string           `json:"method"`
	DepreciationRate *decimal.Decimal `json:"depreciation_rate,omitempty"`
}

// ErrMalformedRequest wraps JSON decoding failures.
var ErrMalformedRequest = errors.New("malformed depreciation request")

// =============================================================================
// PARSING
// =============================================================================

// ParseRequest decodes a JSON document into a depreciation.Request.
func ParseRequest(data []byte) (depreciation.Request, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc RequestJSON
	if err := dec.Decode(&doc); err != nil {
		return depreciation.Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	return RequestFromJSON(doc)
}

// RequestFromJSON converts an already-decoded document.
func RequestFromJSON(doc RequestJSON) (depreciation.Request, error) {
	if doc.Method == "" {
		return depreciation.Request{}, &depreciation.ValidationError{Field: "method", Message: "depreciation method is required"}
	}
	method, err := depreciation.ParseMethod(doc.Method)
	if err != nil {
		return depreciation.Request{}, err
	}

	return depreciation.Request{
		AssetID:          doc.AssetID,
		AssetName:        doc.AssetName,
		InitialCost:      doc.InitialCost,
		ResidualValue:    doc.ResidualValue,
		UsefulLife:       doc.UsefulLife,
		Method:           method,
		DepreciationRate: doc.DepreciationRate,
	}, nil
}

// ToJSON converts a request back into its JSON document form.
func ToJSON(req depreciation.Request) RequestJSON {
	return RequestJSON{
		AssetID:          req.AssetID,
		AssetName:        req.AssetName,
		InitialCost:      req.InitialCost,
		ResidualValue:    req.ResidualValue,
		UsefulLife:       req.UsefulLife,
		Method:           req.Method.String(),
		DepreciationRate: req.DepreciationRate,
	}
}
