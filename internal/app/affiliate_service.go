package app

import (
	"context"
	"fmt"

	"github.com/example/studiodesk/internal/cache"
	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

// AffiliateServiceImpl implements the AffiliateService interface. Counter
// and assignment semantics mirror the client service over the affiliate
// projections.
type AffiliateServiceImpl struct {
	affiliateRepo secondary.AffiliateRepository
	packageRepo   secondary.PackageRepository
	coordinator   *Coordinator
	fanout        *Fanout
	cache         *cache.Store
	ids           secondary.IDGenerator
	logger        secondary.Logger
}

// NewAffiliateService creates a new AffiliateService with injected
// dependencies.
func NewAffiliateService(
	affiliateRepo secondary.AffiliateRepository,
	packageRepo secondary.PackageRepository,
	coordinator *Coordinator,
	fanout *Fanout,
	store *cache.Store,
	ids secondary.IDGenerator,
	logger secondary.Logger,
) *AffiliateServiceImpl {
	return &AffiliateServiceImpl{
		affiliateRepo: affiliateRepo,
		packageRepo:   packageRepo,
		coordinator:   coordinator,
		fanout:        fanout,
		cache:         store,
		ids:           ids,
		logger:        logger,
	}
}

// CreateAffiliate creates a new affiliate with zeroed counters.
func (s *AffiliateServiceImpl) CreateAffiliate(ctx context.Context, req primary.CreateAffiliateRequest) (*primary.Affiliate, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: affiliate name is required", ErrValidation)
	}

	record := &secondary.AffiliateRecord{
		ID:                s.ids.New(),
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		CommissionPercent: req.CommissionPercent,
	}
	if err := s.affiliateRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create affiliate: %w", err)
	}

	created, err := s.affiliateRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created affiliate: %w", err)
	}

	affiliate := affiliateFromRecord(created)
	s.cache.Set(cache.DetailKey(EntityAffiliates, affiliate.ID), affiliate)
	for _, k := range s.fanout.ListKeys(EntityAffiliates) {
		s.cache.Invalidate(k)
	}
	return affiliate, nil
}

// GetAffiliate returns the cached affiliate when fresh, reading through to
// the store otherwise.
func (s *AffiliateServiceImpl) GetAffiliate(ctx context.Context, affiliateID string) (*primary.Affiliate, error) {
	key := cache.DetailKey(EntityAffiliates, affiliateID)
	if v, ok := s.cache.Get(key); ok && !s.cache.IsStale(key) {
		if affiliate, ok := v.(*primary.Affiliate); ok {
			return affiliate, nil
		}
	}

	record, err := s.affiliateRepo.GetByID(ctx, affiliateID)
	if err != nil {
		return nil, err
	}
	affiliate := affiliateFromRecord(record)
	s.cache.Set(key, affiliate)
	return affiliate, nil
}

// ListAffiliates lists affiliates and refreshes the unfiltered list key.
func (s *AffiliateServiceImpl) ListAffiliates(ctx context.Context, filters primary.AffiliateFilters) ([]*primary.Affiliate, error) {
	records, err := s.affiliateRepo.List(ctx, secondary.OwnerFilters{Limit: filters.Limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list affiliates: %w", err)
	}

	affiliates := make([]*primary.Affiliate, len(records))
	for i, r := range records {
		affiliates[i] = affiliateFromRecord(r)
	}
	if filters.Limit == 0 {
		s.cache.Set(cache.ListKey(EntityAffiliates), affiliates)
	}
	return affiliates, nil
}

// UpdateAffiliate updates descriptive fields and invalidates cached
// projections.
func (s *AffiliateServiceImpl) UpdateAffiliate(ctx context.Context, req primary.UpdateAffiliateRequest) error {
	existing, err := s.affiliateRepo.GetByID(ctx, req.AffiliateID)
	if err != nil {
		return err
	}

	record := *existing
	if req.Name != "" {
		record.Name = req.Name
	}
	if req.Email != "" {
		record.Email = req.Email
	}
	if req.Phone != "" {
		record.Phone = req.Phone
	}
	if req.CommissionPercent != 0 {
		record.CommissionPercent = req.CommissionPercent
	}

	if err := s.affiliateRepo.Update(ctx, &record); err != nil {
		return fmt.Errorf("failed to update affiliate: %w", err)
	}

	for _, k := range s.fanout.EntityKeys(EntityAffiliates, req.AffiliateID) {
		s.cache.Invalidate(k)
	}
	return nil
}

// DeleteAffiliate removes an affiliate and drops its cached projections.
func (s *AffiliateServiceImpl) DeleteAffiliate(ctx context.Context, affiliateID string) error {
	if err := s.affiliateRepo.Delete(ctx, affiliateID); err != nil {
		return fmt.Errorf("failed to delete affiliate: %w", err)
	}
	s.cache.Delete(cache.DetailKey(EntityAffiliates, affiliateID))
	for _, k := range s.fanout.ListKeys(EntityAffiliates) {
		s.cache.Invalidate(k)
	}
	return nil
}

// AdjustServings changes remaining_servings by delta.
func (s *AffiliateServiceImpl) AdjustServings(ctx context.Context, affiliateID string, delta int) (*primary.Affiliate, error) {
	return s.adjustCounter(ctx, affiliateID, secondary.CounterServings, delta)
}

// AdjustImages changes remaining_images by delta.
func (s *AffiliateServiceImpl) AdjustImages(ctx context.Context, affiliateID string, delta int) (*primary.Affiliate, error) {
	return s.adjustCounter(ctx, affiliateID, secondary.CounterImages, delta)
}

// AdjustTrainingUnits changes the AI training cost counter by delta.
func (s *AffiliateServiceImpl) AdjustTrainingUnits(ctx context.Context, affiliateID string, delta int) (*primary.Affiliate, error) {
	return s.adjustCounter(ctx, affiliateID, secondary.CounterTrainingUnits, delta)
}

func (s *AffiliateServiceImpl) adjustCounter(ctx context.Context, affiliateID string, field secondary.CounterField, delta int) (*primary.Affiliate, error) {
	current, err := s.GetAffiliate(ctx, affiliateID)
	if err != nil {
		return nil, err
	}

	cur := affiliateCounter(current, field)
	if delta < 0 && cur == 0 {
		return nil, fmt.Errorf("%w: %s is already 0 for affiliate %s", ErrValidation, field, affiliateID)
	}

	value := cur + delta
	if value < 0 {
		value = 0
	}

	patch := patchAffiliate(affiliateID, func(a *primary.Affiliate) {
		setAffiliateCounter(a, field, value)
	})
	patches := make(map[cache.Key]cache.PatchFunc)
	for _, k := range s.fanout.EntityKeys(EntityAffiliates, affiliateID) {
		patches[k] = patch
	}

	var invalidate []cache.Key
	if field == secondary.CounterTrainingUnits {
		invalidate = s.fanout.AggregateKeys()
	}

	outcome, err := s.coordinator.Run(ctx, Mutation{
		Guard:   string(cache.DetailKey(EntityAffiliates, affiliateID)) + "/" + string(field),
		Patches: patches,
		Commit: func(ctx context.Context) (any, error) {
			record, err := s.affiliateRepo.SetCounter(ctx, affiliateID, field, value)
			if err != nil {
				return nil, err
			}
			return affiliateFromRecord(record), nil
		},
		Reconcile:  s.reconcileAffiliate,
		Invalidate: invalidate,
		SuccessMessage: func(outcome any) string {
			a := outcome.(*primary.Affiliate)
			return fmt.Sprintf("%s for %s is now %d", counterLabel(field), a.Name, affiliateCounter(a, field))
		},
	})
	if err != nil {
		return nil, err
	}
	return outcome.(*primary.Affiliate), nil
}

// AssignPackage replaces the affiliate's package assignment and remaining
// counts with an absolute grant.
func (s *AffiliateServiceImpl) AssignPackage(ctx context.Context, req primary.AssignPackageRequest) (*primary.Affiliate, error) {
	servings, images, err := resolveGrant(req.Servings, req.Images)
	if err != nil {
		return nil, err
	}

	if _, err := s.packageRepo.GetByID(ctx, req.PackageID); err != nil {
		return nil, fmt.Errorf("%w: package %s not found", ErrValidation, req.PackageID)
	}
	if _, err := s.GetAffiliate(ctx, req.EntityID); err != nil {
		return nil, err
	}

	patch := patchAffiliate(req.EntityID, func(a *primary.Affiliate) {
		a.CurrentPackageID = req.PackageID
		a.RemainingServings = servings
		a.RemainingImages = images
	})
	patches := make(map[cache.Key]cache.PatchFunc)
	for _, k := range s.fanout.EntityKeys(EntityAffiliates, req.EntityID) {
		patches[k] = patch
	}

	outcome, err := s.coordinator.Run(ctx, Mutation{
		Guard:   string(cache.DetailKey(EntityAffiliates, req.EntityID)),
		Patches: patches,
		Commit: func(ctx context.Context) (any, error) {
			record, err := s.affiliateRepo.AssignPackage(ctx, req.EntityID, req.PackageID, servings, images, req.Note)
			if err != nil {
				return nil, err
			}
			return affiliateFromRecord(record), nil
		},
		Reconcile:  s.reconcileAffiliate,
		Invalidate: s.fanout.AggregateKeys(),
		SuccessMessage: func(outcome any) string {
			a := outcome.(*primary.Affiliate)
			return fmt.Sprintf("assigned package to %s: %d servings, %d images", a.Name, a.RemainingServings, a.RemainingImages)
		},
	})
	if err != nil {
		return nil, err
	}
	return outcome.(*primary.Affiliate), nil
}

// QuickAssignPackage assigns a package using its own totals as the grant.
func (s *AffiliateServiceImpl) QuickAssignPackage(ctx context.Context, affiliateID, packageID string) (*primary.Affiliate, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("%w: package %s not found", ErrValidation, packageID)
	}
	servings := pkg.TotalServings
	images := pkg.TotalImages
	return s.AssignPackage(ctx, primary.AssignPackageRequest{
		EntityID:  affiliateID,
		PackageID: packageID,
		Servings:  &servings,
		Images:    &images,
	})
}

func (s *AffiliateServiceImpl) reconcileAffiliate(outcome any) map[cache.Key]cache.PatchFunc {
	authoritative := outcome.(*primary.Affiliate)
	patch := func(v any) any {
		switch t := v.(type) {
		case *primary.Affiliate:
			if t.ID != authoritative.ID {
				return v
			}
			return authoritative
		case []*primary.Affiliate:
			out := make([]*primary.Affiliate, len(t))
			copy(out, t)
			for i, a := range out {
				if a != nil && a.ID == authoritative.ID {
					out[i] = authoritative
				}
			}
			return out
		}
		return v
	}
	patches := make(map[cache.Key]cache.PatchFunc)
	for _, k := range s.fanout.EntityKeys(EntityAffiliates, authoritative.ID) {
		patches[k] = patch
	}
	s.cache.Set(cache.DetailKey(EntityAffiliates, authoritative.ID), authoritative)
	return patches
}

// Helper functions

func patchAffiliate(id string, fn func(*primary.Affiliate)) cache.PatchFunc {
	return func(v any) any {
		switch t := v.(type) {
		case *primary.Affiliate:
			if t.ID != id {
				return v
			}
			a := *t
			fn(&a)
			return &a
		case []*primary.Affiliate:
			out := make([]*primary.Affiliate, len(t))
			copy(out, t)
			for i, a := range out {
				if a != nil && a.ID == id {
					aa := *a
					fn(&aa)
					out[i] = &aa
				}
			}
			return out
		}
		return v
	}
}

func affiliateCounter(a *primary.Affiliate, field secondary.CounterField) int {
	switch field {
	case secondary.CounterServings:
		return a.RemainingServings
	case secondary.CounterImages:
		return a.RemainingImages
	case secondary.CounterTrainingUnits:
		return a.AITrainingUnits
	}
	return 0
}

func setAffiliateCounter(a *primary.Affiliate, field secondary.CounterField, value int) {
	switch field {
	case secondary.CounterServings:
		a.RemainingServings = value
	case secondary.CounterImages:
		a.RemainingImages = value
	case secondary.CounterTrainingUnits:
		a.AITrainingUnits = value
	}
}

func affiliateFromRecord(r *secondary.AffiliateRecord) *primary.Affiliate {
	return &primary.Affiliate{
		ID:                r.ID,
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		CommissionPercent: r.CommissionPercent,
		CurrentPackageID:  r.CurrentPackageID,
		RemainingServings: r.RemainingServings,
		RemainingImages:   r.RemainingImages,
		ConsumedImages:    r.ConsumedImages,
		ReservedImages:    r.ReservedImages,
		AITrainingUnits:   r.AITrainingUnits,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// Ensure AffiliateServiceImpl implements the interface
var _ primary.AffiliateService = (*AffiliateServiceImpl)(nil)
