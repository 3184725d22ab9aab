/*
Package register keeps the catalogue of depreciating assets.

PURPOSE:
  The depreciation engine only knows about a single request. The register
  stores assets (what was bought, when, for how much, how it depreciates)
  and answers the book-keeping questions built on top of the engine:
  what is it worth today, what will it be worth later, which assets are
  written off, which are close to the end of their useful life.

KEY CONCEPTS IN THIS FILE (asset.go):
  - Asset: A stored asset record
  - NewAsset / Patch: Create and partial-update inputs
  - Store: Persistence interface (sqlite, memory)

TIME:
  Ages are measured in years of 365.25 days from the purchase date. The
  engine's yearly schedule is spread evenly across each year, so values
  move continuously between year ends.

SEE ALSO:
  - service.go: Register operations
  - valuation.go: Current and projected values
  - store/memory.go: In-memory Store for tests
  - ../store/sqlite: SQLite Store
*/
package register

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/asset-engine/depreciation"
)

// MaxUsefulLifeYears bounds how long an asset may be depreciated for.
const MaxUsefulLifeYears = 100

// MaxNameLength bounds Asset.Name.
const MaxNameLength = 255

// =============================================================================
// ASSET
// =============================================================================

// Asset is a stored asset record.
type Asset struct {
	ID               string
	Name             string
	Description      string
	PurchasePrice    decimal.Decimal
	PurchaseDate     time.Time
	UsefulLifeYears  int
	Method           depreciation.Method
	DepreciationRate *decimal.Decimal
	SalvageValue     decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Request builds the engine request describing this asset.
func (a Asset) Request() depreciation.Request {
	return depreciation.Request{
		AssetID:          a.ID,
		AssetName:        a.Name,
		InitialCost:      a.PurchasePrice,
		ResidualValue:    a.SalvageValue,
		UsefulLife:       a.UsefulLifeYears,
		Method:           a.Method,
		DepreciationRate: a.DepreciationRate,
	}
}

// Schedule computes the asset's full depreciation schedule.
func (a Asset) Schedule() (depreciation.Schedule, error) {
	return depreciation.Compute(a.Request())
}

// Clone returns a copy that shares no pointers with a.
func (a Asset) Clone() Asset {
	if a.DepreciationRate != nil {
		rate := *a.DepreciationRate
		a.DepreciationRate = &rate
	}
	return a
}

// NewAsset is the input to Service.Create. An empty Method means
// straight-line.
type NewAsset struct {
	Name             string
	Description      string
	PurchasePrice    decimal.Decimal
	PurchaseDate     time.Time
	UsefulLifeYears  int
	Method           depreciation.Method
	DepreciationRate *decimal.Decimal
	SalvageValue     decimal.Decimal
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Name             *string
	Description      *string
	PurchasePrice    *decimal.Decimal
	PurchaseDate     *time.Time
	UsefulLifeYears  *int
	Method           *depreciation.Method
	DepreciationRate *decimal.Decimal
	SalvageValue     *decimal.Decimal
}

func (p Patch) apply(a Asset) Asset {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.PurchasePrice != nil {
		a.PurchasePrice = *p.PurchasePrice
	}
	if p.PurchaseDate != nil {
		a.PurchaseDate = *p.PurchaseDate
	}
	if p.UsefulLifeYears != nil {
		a.UsefulLifeYears = *p.UsefulLifeYears
	}
	if p.Method != nil {
		a.Method = *p.Method
	}
	if p.DepreciationRate != nil {
		rate := *p.DepreciationRate
		a.DepreciationRate = &rate
	}
	if p.SalvageValue != nil {
		a.SalvageValue = *p.SalvageValue
	}
	return a
}

// =============================================================================
// STORE - Persistence interface
// =============================================================================

// Filter narrows Store.List. Price bounds are inclusive.
type Filter struct {
	Method   *depreciation.Method
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Matches reports whether a passes the filter.
func (f Filter) Matches(a Asset) bool {
	if f.Method != nil && a.Method != *f.Method {
		return false
	}
	if f.MinPrice != nil && a.PurchasePrice.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && a.PurchasePrice.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Store persists assets.
type Store interface {
	// Create inserts a new asset. Returns ErrDuplicateName if the name is taken.
	Create(ctx context.Context, a Asset) error

	// Get returns ErrAssetNotFound if no asset has the id.
	Get(ctx context.Context, id string) (Asset, error)

	// List returns assets matching the filter, newest first.
	List(ctx context.Context, f Filter) ([]Asset, error)

	// Update replaces an existing asset.
	Update(ctx context.Context, a Asset) error

	// Delete removes an asset. Returns ErrAssetNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrAssetNotFound is returned when a referenced asset doesn't exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrDuplicateName is returned when another asset already has the name.
	ErrDuplicateName = errors.New("asset with this name already exists")

	// ErrInvalidAsset is returned when an asset breaks a register rule.
	ErrInvalidAsset = errors.New("invalid asset")

	// ErrInvalidProjectionDate is returned when a projection date is not in the future.
	ErrInvalidProjectionDate = errors.New("future date must be later than current date")
)

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAsset) ||
		errors.Is(err, ErrInvalidProjectionDate) ||
		depreciation.IsClientError(err)
}

// IsNotFound returns true if the error indicates a missing asset.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAssetNotFound)
}

// IsConflict returns true if the error indicates a uniqueness violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateName)
}
