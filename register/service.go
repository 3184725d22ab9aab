package register

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/warp/asset-engine/depreciation"
)

// Service implements register operations on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a register backed by store. A nil now uses time.Now.
func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// =============================================================================
// CRUD
// =============================================================================

// Create validates and stores a new asset.
func (s *Service) Create(ctx context.Context, in NewAsset) (Asset, error) {
	now := s.now().UTC()
	method := in.Method
	if method == "" {
		method = depreciation.StraightLine
	}

	a := Asset{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		PurchasePrice:    in.PurchasePrice,
		PurchaseDate:     in.PurchaseDate.UTC(),
		UsefulLifeYears:  in.UsefulLifeYears,
		Method:           method,
		DepreciationRate: in.DepreciationRate,
		SalvageValue:     in.SalvageValue,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	a = a.Clone()

	if err := s.validate(a, now); err != nil {
		return Asset{}, err
	}
	if err := s.store.Create(ctx, a); err != nil {
		return Asset{}, fmt.Errorf("creating asset: %w", err)
	}
	return a, nil
}

// Get returns one asset.
func (s *Service) Get(ctx context.Context, id string) (Asset, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return Asset{}, fmt.Errorf("loading asset %s: %w", id, err)
	}
	return a, nil
}

// Update applies a partial update and re-validates the merged asset.
func (s *Service) Update(ctx context.Context, id string, p Patch) (Asset, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Asset{}, err
	}

	now := s.now().UTC()
	updated := p.apply(existing)
	updated.Name = strings.TrimSpace(updated.Name)
	updated.PurchaseDate = updated.PurchaseDate.UTC()
	updated.UpdatedAt = now

	if err := s.validate(updated, now); err != nil {
		return Asset{}, err
	}
	if err := s.store.Update(ctx, updated); err != nil {
		return Asset{}, fmt.Errorf("updating asset %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes an asset.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting asset %s: %w", id, err)
	}
	return nil
}

// ListFilter extends Filter with the fully-depreciated flag, which can only
// be evaluated after valuation.
type ListFilter struct {
	Filter
	FullyDepreciated *bool
}

// List returns assets matching the filter, newest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Asset, error) {
	assets, err := s.store.List(ctx, f.Filter)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	if f.FullyDepreciated == nil {
		return assets, nil
	}

	now := s.now()
	filtered := make([]Asset, 0, len(assets))
	for _, a := range assets {
		v, err := valueAt(a, now)
		if err != nil {
			return nil, err
		}
		if v.FullyDepreciated == *f.FullyDepreciated {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Schedule returns the full depreciation schedule of a stored asset.
func (s *Service) Schedule(ctx context.Context, id string) (depreciation.Schedule, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return depreciation.Schedule{}, err
	}
	return a.Schedule()
}

// =============================================================================
// VALIDATION
// =============================================================================

func (s *Service) validate(a Asset, now time.Time) error {
	switch {
	case a.Name == "":
		return invalid("asset name is required")
	case len(a.Name) > MaxNameLength:
		return invalid(fmt.Sprintf("asset name must be at most %d characters", MaxNameLength))
	case a.PurchaseDate.IsZero():
		return invalid("purchase date is required")
	case a.PurchaseDate.After(now):
		return invalid("purchase date cannot be in the future")
	case a.SalvageValue.GreaterThanOrEqual(a.PurchasePrice):
		return invalid("salvage value cannot be greater than or equal to purchase price")
	case a.UsefulLifeYears > MaxUsefulLifeYears:
		return invalid(fmt.Sprintf("useful life must be at most %d years", MaxUsefulLifeYears))
	}

	if err := depreciation.Validate(a.Request()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAsset, err)
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidAsset, msg)
}
