package register_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/asset-engine/depreciation"
	"github.com/warp/asset-engine/register"
	"github.com/warp/asset-engine/register/store"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================

var today = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newService() (*register.Service, *clock) {
	c := &clock{t: today}
	return register.NewService(store.NewMemory(), c.now), c
}

// yearsBefore returns the instant n years of 365.25 days before today.
func yearsBefore(n float64) time.Time {
	return today.Add(-time.Duration(n * 365.25 * 24 * float64(time.Hour)))
}

func forklift(purchased time.Time) register.NewAsset {
	return register.NewAsset{
		Name:            "Forklift",
		Description:     "Warehouse forklift",
		PurchasePrice:   decimal.NewFromInt(10000),
		PurchaseDate:    purchased,
		UsefulLifeYears: 4,
		SalvageValue:    decimal.NewFromInt(1000),
	}
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

// =============================================================================
// CRUD
// =============================================================================

func TestCreate_DefaultsAndIdentity(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, forklift(yearsBefore(1)))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, depreciation.StraightLine, a.Method, "empty method defaults to straight-line")
	assert.Equal(t, today, a.CreatedAt)
	assert.Equal(t, today, a.UpdatedAt)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Name, got.Name)
	assert.True(t, a.PurchasePrice.Equal(got.PurchasePrice))
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*register.NewAsset)
		message string
	}{
		{"empty name", func(a *register.NewAsset) { a.Name = "  " }, "asset name is required"},
		{"future purchase", func(a *register.NewAsset) { a.PurchaseDate = today.AddDate(0, 0, 1) }, "purchase date cannot be in the future"},
		{"salvage equals price", func(a *register.NewAsset) { a.SalvageValue = decimal.NewFromInt(10000) }, "salvage value cannot be greater than or equal to purchase price"},
		{"life too long", func(a *register.NewAsset) { a.UsefulLifeYears = 101 }, "useful life must be at most 100 years"},
		{"zero life", func(a *register.NewAsset) { a.UsefulLifeYears = 0 }, "useful life must be at least 1 year"},
		{"declining without rate", func(a *register.NewAsset) { a.Method = depreciation.DecliningBalance }, "depreciation rate is required for declining balance method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()
			in := forklift(yearsBefore(1))
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, register.ErrInvalidAsset)
			assert.True(t, register.IsClientError(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, forklift(yearsBefore(1)))
	require.NoError(t, err)

	_, err = svc.Create(ctx, forklift(yearsBefore(2)))
	require.Error(t, err)
	assert.True(t, register.IsConflict(err))
}

func TestUpdate_RevalidatesMergedAsset(t *testing.T) {
	svc, c := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, forklift(yearsBefore(1)))
	require.NoError(t, err)

	// Salvage above the stored price is rejected
	tooHigh := decimal.NewFromInt(20000)
	_, err = svc.Update(ctx, a.ID, register.Patch{SalvageValue: &tooHigh})
	assert.ErrorIs(t, err, register.ErrInvalidAsset)

	// Raising price and salvage together is accepted
	c.advance(time.Hour)
	price := decimal.NewFromInt(30000)
	name := "Forklift (refurbished)"
	updated, err := svc.Update(ctx, a.ID, register.Patch{PurchasePrice: &price, SalvageValue: &tooHigh, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, today.Add(time.Hour), updated.UpdatedAt)
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "30000.00", money(got.PurchasePrice))
}

func TestUpdate_UnknownAsset(t *testing.T) {
	svc, _ := newService()
	name := "x"
	_, err := svc.Update(context.Background(), "missing", register.Patch{Name: &name})
	assert.True(t, register.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, forklift(yearsBefore(1)))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, a.ID))

	_, err = svc.Get(ctx, a.ID)
	assert.True(t, register.IsNotFound(err))
	assert.True(t, register.IsNotFound(svc.Delete(ctx, a.ID)))
}

func TestList_FiltersAndOrder(t *testing.T) {
	svc, c := newService()
	ctx := context.Background()

	old, err := svc.Create(ctx, forklift(yearsBefore(6)))
	require.NoError(t, err)

	c.advance(time.Minute)
	rate := decimal.RequireFromString("0.3")
	press, err := svc.Create(ctx, register.NewAsset{
		Name:             "Hydraulic press",
		PurchasePrice:    decimal.NewFromInt(50000),
		PurchaseDate:     yearsBefore(1),
		UsefulLifeYears:  10,
		Method:           depreciation.DecliningBalance,
		DepreciationRate: &rate,
		SalvageValue:     decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, register.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, press.ID, all[0].ID, "newest first")
	assert.Equal(t, old.ID, all[1].ID)

	method := depreciation.DecliningBalance
	byMethod, err := svc.List(ctx, register.ListFilter{Filter: register.Filter{Method: &method}})
	require.NoError(t, err)
	require.Len(t, byMethod, 1)
	assert.Equal(t, press.ID, byMethod[0].ID)

	minPrice := decimal.NewFromInt(20000)
	byPrice, err := svc.List(ctx, register.ListFilter{Filter: register.Filter{MinPrice: &minPrice}})
	require.NoError(t, err)
	require.Len(t, byPrice, 1)
	assert.Equal(t, press.ID, byPrice[0].ID)

	yes := true
	written, err := svc.List(ctx, register.ListFilter{FullyDepreciated: &yes})
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, old.ID, written[0].ID)
}

// =============================================================================
// VALUATION
// =============================================================================

func TestValuation_HalfwayThroughLife(t *testing.T) {
	// GIVEN: a 4 year straight-line asset bought exactly 2 years ago
	svc, _ := newService()
	ctx := context.Background()
	a, err := svc.Create(ctx, forklift(yearsBefore(2)))
	require.NoError(t, err)

	// WHEN
	v, err := svc.Valuation(ctx, a.ID)
	require.NoError(t, err)

	// THEN: value sits midway between cost and salvage
	assert.Equal(t, "5500.00", money(v.CurrentValue))
	assert.Equal(t, "2250.00", money(v.AnnualDepreciation))
	assert.Equal(t, "4500.00", money(v.DepreciationToDate))
	assert.Equal(t, "2.00", money(v.RemainingUsefulLife))
	assert.False(t, v.FullyDepreciated)
}

func TestValuation_WithinYearIsInterpolated(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	a, err := svc.Create(ctx, forklift(yearsBefore(1.5)))
	require.NoError(t, err)

	v, err := svc.Valuation(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "6625.00", money(v.CurrentValue))
}

func TestValuation_PastUsefulLife(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	a, err := svc.Create(ctx, forklift(yearsBefore(5)))
	require.NoError(t, err)

	v, err := svc.Valuation(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", money(v.CurrentValue), "never below salvage")
	assert.Equal(t, "0.00", money(v.AnnualDepreciation))
	assert.Equal(t, "0.00", money(v.RemainingUsefulLife))
	assert.True(t, v.FullyDepreciated)

	written, err := svc.FullyDepreciated(ctx)
	require.NoError(t, err)
	require.Len(t, written, 1)
}

func TestNearingEndOfLife(t *testing.T) {
	svc, c := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, forklift(yearsBefore(2)))
	require.NoError(t, err)

	c.advance(time.Second)
	closing := forklift(yearsBefore(3.5))
	closing.Name = "Delivery van"
	van, err := svc.Create(ctx, closing)
	require.NoError(t, err)

	expired := forklift(yearsBefore(4.5))
	expired.Name = "Old van"
	_, err = svc.Create(ctx, expired)
	require.NoError(t, err)

	near, err := svc.NearingEndOfLife(ctx, decimal.NewFromInt(1))
	require.NoError(t, err)
	require.Len(t, near, 1, "only assets with remaining life in (0, 1]")
	assert.Equal(t, van.ID, near[0].Asset.ID)
}

func TestProjectedValue(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	a, err := svc.Create(ctx, forklift(yearsBefore(2)))
	require.NoError(t, err)

	oneYearOn := today.Add(time.Duration(365.25 * 24 * float64(time.Hour)))
	p, err := svc.ProjectedValue(ctx, a.ID, oneYearOn)
	require.NoError(t, err)
	assert.Equal(t, "5500.00", money(p.CurrentValue))
	assert.Equal(t, "3250.00", money(p.ProjectedValue))
	assert.Equal(t, "2250.00", money(p.DepreciationBetween))

	farFuture := today.AddDate(20, 0, 0)
	p, err = svc.ProjectedValue(ctx, a.ID, farFuture)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", money(p.ProjectedValue), "projection stops at salvage")

	_, err = svc.ProjectedValue(ctx, a.ID, today)
	assert.ErrorIs(t, err, register.ErrInvalidProjectionDate)
}

func TestSummary(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	empty, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalAssets)
	assert.Equal(t, "0.00", money(empty.TotalPurchaseValue))

	_, err = svc.Create(ctx, forklift(yearsBefore(2)))
	require.NoError(t, err)
	other := forklift(yearsBefore(4))
	other.Name = "Pallet jack"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalAssets)
	assert.Equal(t, "20000.00", money(sum.TotalPurchaseValue))
	assert.Equal(t, "6500.00", money(sum.TotalCurrentValue))
	assert.Equal(t, "13500.00", money(sum.TotalDepreciation))
	assert.Equal(t, 1, sum.FullyDepreciatedAssets)
	assert.Equal(t, "3.00", money(sum.AverageAgeYears))
}

func TestSchedule_ForStoredAsset(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	a, err := svc.Create(ctx, forklift(yearsBefore(1)))
	require.NoError(t, err)

	s, err := svc.Schedule(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, s.AssetID)
	assert.Len(t, s.Entries, 4)
	assert.Equal(t, "9000.00", money(s.TotalDepreciation))
}
