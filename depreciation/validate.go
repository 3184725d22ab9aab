package depreciation

import "github.com/shopspring/decimal"

// Validate returns the first rule the request breaks, or nil.
//
// The order of the first three checks decides which message is reported
// when several rules are broken at once. The remaining checks cover bounds
// that Go's types do not enforce.
func Validate(req Request) error {
	if req.ResidualValue.GreaterThanOrEqual(req.InitialCost) {
		return &ValidationError{Field: "residual_value", Message: "residual value must be less than initial cost"}
	}
	if req.Method == DecliningBalance && req.DepreciationRate == nil {
		return &ValidationError{Field: "depreciation_rate", Message: "depreciation rate is required for declining balance method"}
	}
	if rate := req.DepreciationRate; rate != nil && (!rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1))) {
		return &ValidationError{Field: "depreciation_rate", Message: "depreciation rate must be between 0 and 1"}
	}

	if req.UsefulLife < 1 {
		return &ValidationError{Field: "useful_life", Message: "useful life must be at least 1 year"}
	}
	if !req.InitialCost.IsPositive() {
		return &ValidationError{Field: "initial_cost", Message: "initial cost must be greater than 0"}
	}
	if req.ResidualValue.IsNegative() {
		return &ValidationError{Field: "residual_value", Message: "residual value must not be negative"}
	}
	if !req.Method.Valid() {
		return &UnsupportedMethodError{Method: string(req.Method)}
	}
	return nil
}
