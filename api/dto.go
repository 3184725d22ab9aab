/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine and register models from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Depreciation:
    ScheduleDTO, YearEntryDTO, MethodDTO
    (requests use factory.RequestJSON)

  Assets:
    AssetDTO, CreateAssetRequest, UpdateAssetRequest

  Valuation:
    ValuationDTO, ProjectionDTO, SummaryDTO

MONEY:
  Internally every amount is a decimal rounded to cents. Responses carry
  float64 so clients receive plain JSON numbers. Request amounts decode
  straight into decimal.Decimal, which accepts numbers or quoted strings.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/request.go: RequestJSON, the calculate request body
  - factory/schedule.go: ScheduleJSON, shared with the depcalc CLI
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/asset-engine/depreciation"
	"github.com/warp/asset-engine/factory"
	"github.com/warp/asset-engine/register"
)

const dateLayout = "2006-01-02"

// =============================================================================
// DEPRECIATION
// =============================================================================

// ScheduleDTO is a computed depreciation schedule. The CLI prints the same
// document, so the type lives in factory.
type ScheduleDTO = factory.ScheduleJSON

// YearEntryDTO is one year of a schedule.
type YearEntryDTO = factory.YearEntryJSON

// MethodDTO describes a supported depreciation method.
type MethodDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RequiresRate bool   `json:"requires_rate"`
}

// =============================================================================
// ASSETS
// =============================================================================

// AssetDTO represents a stored asset in API responses.
type AssetDTO struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	PurchasePrice    float64  `json:"purchase_price"`
	PurchaseDate     string   `json:"purchase_date"`
	UsefulLifeYears  int      `json:"useful_life_years"`
	Method           string   `json:"depreciation_method"`
	DepreciationRate *float64 `json:"depreciation_rate,omitempty"`
	SalvageValue     float64  `json:"salvage_value"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

// CreateAssetRequest is the body of POST /api/assets.
type CreateAssetRequest struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	PurchasePrice    decimal.Decimal  `json:"purchase_price"`
	PurchaseDate     string           `json:"purchase_date"` // YYYY-MM-DD
	UsefulLifeYears  int              `json:"useful_life_years"`
	Method           string           `json:"depreciation_method"`
	DepreciationRate *decimal.Decimal `json:"depreciation_rate"`
	SalvageValue     decimal.Decimal  `json:"salvage_value"`
}

// UpdateAssetRequest is the body of PATCH /api/assets/{id}. Omitted fields
// are left unchanged.
type UpdateAssetRequest struct {
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	PurchasePrice    *decimal.Decimal `json:"purchase_price"`
	PurchaseDate     *string          `json:"purchase_date"`
	UsefulLifeYears  *int             `json:"useful_life_years"`
	Method           *string          `json:"depreciation_method"`
	DepreciationRate *decimal.Decimal `json:"depreciation_rate"`
	SalvageValue     *decimal.Decimal `json:"salvage_value"`
}

// ValuationDTO is an asset's value as of now.
type ValuationDTO struct {
	AssetID             string  `json:"asset_id"`
	AssetName           string  `json:"asset_name"`
	AsOf                string  `json:"as_of"`
	PurchasePrice       float64 `json:"purchase_price"`
	SalvageValue        float64 `json:"salvage_value"`
	CurrentValue        float64 `json:"current_value"`
	AnnualDepreciation  float64 `json:"annual_depreciation"`
	DepreciationToDate  float64 `json:"depreciation_to_date"`
	RemainingUsefulLife float64 `json:"remaining_useful_life"`
	FullyDepreciated    bool    `json:"fully_depreciated"`
}

// ProjectionDTO compares current and projected value.
type ProjectionDTO struct {
	AssetID             string  `json:"asset_id"`
	AssetName           string  `json:"asset_name"`
	FutureDate          string  `json:"future_date"`
	CurrentValue        float64 `json:"current_value"`
	ProjectedValue      float64 `json:"projected_value"`
	DepreciationBetween float64 `json:"depreciation_between"`
}

// SummaryDTO aggregates the register.
type SummaryDTO struct {
	TotalAssets            int     `json:"total_assets"`
	TotalPurchaseValue     float64 `json:"total_purchase_value"`
	TotalCurrentValue      float64 `json:"total_current_value"`
	TotalDepreciation      float64 `json:"total_depreciation"`
	FullyDepreciatedAssets int     `json:"fully_depreciated_assets"`
	AverageAgeYears        float64 `json:"average_age_years"`
}

// ErrorResponse is returned for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

var methodNames = map[depreciation.Method]string{
	depreciation.StraightLine:           "Straight Line",
	depreciation.DecliningBalance:       "Declining Balance",
	depreciation.DoubleDecliningBalance: "Double Declining Balance",
	depreciation.SumOfYearsDigits:       "Sum of Years' Digits",
}

func toMethodDTOs() []MethodDTO {
	methods := depreciation.Methods()
	dtos := make([]MethodDTO, len(methods))
	for i, m := range methods {
		dtos[i] = MethodDTO{
			ID:           string(m),
			Name:         methodNames[m],
			RequiresRate: m == depreciation.DecliningBalance,
		}
	}
	return dtos
}

func toAssetDTO(a register.Asset) AssetDTO {
	dto := AssetDTO{
		ID:              a.ID,
		Name:            a.Name,
		Description:     a.Description,
		PurchasePrice:   toFloat(a.PurchasePrice),
		PurchaseDate:    a.PurchaseDate.Format(dateLayout),
		UsefulLifeYears: a.UsefulLifeYears,
		Method:          string(a.Method),
		SalvageValue:    toFloat(a.SalvageValue),
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}
	if a.DepreciationRate != nil {
		rate := toFloat(*a.DepreciationRate)
		dto.DepreciationRate = &rate
	}
	return dto
}

func toAssetDTOs(assets []register.Asset) []AssetDTO {
	dtos := make([]AssetDTO, len(assets))
	for i, a := range assets {
		dtos[i] = toAssetDTO(a)
	}
	return dtos
}

func toValuationDTO(v register.Valuation) ValuationDTO {
	return ValuationDTO{
		AssetID:             v.Asset.ID,
		AssetName:           v.Asset.Name,
		AsOf:                v.AsOf.Format(dateLayout),
		PurchasePrice:       toFloat(v.Asset.PurchasePrice),
		SalvageValue:        toFloat(v.Asset.SalvageValue),
		CurrentValue:        toFloat(v.CurrentValue),
		AnnualDepreciation:  toFloat(v.AnnualDepreciation),
		DepreciationToDate:  toFloat(v.DepreciationToDate),
		RemainingUsefulLife: toFloat(v.RemainingUsefulLife),
		FullyDepreciated:    v.FullyDepreciated,
	}
}

func toValuationDTOs(vs []register.Valuation) []ValuationDTO {
	dtos := make([]ValuationDTO, len(vs))
	for i, v := range vs {
		dtos[i] = toValuationDTO(v)
	}
	return dtos
}

func toProjectionDTO(p register.Projection) ProjectionDTO {
	return ProjectionDTO{
		AssetID:             p.AssetID,
		AssetName:           p.AssetName,
		FutureDate:          p.Date.Format(dateLayout),
		CurrentValue:        toFloat(p.CurrentValue),
		ProjectedValue:      toFloat(p.ProjectedValue),
		DepreciationBetween: toFloat(p.DepreciationBetween),
	}
}

func toSummaryDTO(s register.Summary) SummaryDTO {
	return SummaryDTO{
		TotalAssets:            s.TotalAssets,
		TotalPurchaseValue:     toFloat(s.TotalPurchaseValue),
		TotalCurrentValue:      toFloat(s.TotalCurrentValue),
		TotalDepreciation:      toFloat(s.TotalDepreciation),
		FullyDepreciatedAssets: s.FullyDepreciatedAssets,
		AverageAgeYears:        toFloat(s.AverageAgeYears),
	}
}
