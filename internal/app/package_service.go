package app

import (
	"context"
	"fmt"

	"github.com/example/studiodesk/internal/cache"
	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

// PackageServiceImpl implements the PackageService interface.
type PackageServiceImpl struct {
	packageRepo secondary.PackageRepository
	fanout      *Fanout
	cache       *cache.Store
	ids         secondary.IDGenerator
	logger      secondary.Logger
}

// NewPackageService creates a new PackageService with injected dependencies.
func NewPackageService(
	packageRepo secondary.PackageRepository,
	fanout *Fanout,
	store *cache.Store,
	ids secondary.IDGenerator,
	logger secondary.Logger,
) *PackageServiceImpl {
	return &PackageServiceImpl{
		packageRepo: packageRepo,
		fanout:      fanout,
		cache:       store,
		ids:         ids,
		logger:      logger,
	}
}

// CreatePackage creates a new service package.
func (s *PackageServiceImpl) CreatePackage(ctx context.Context, req primary.CreatePackageRequest) (*primary.Package, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: package name is required", ErrValidation)
	}
	if req.TotalServings < 0 || req.TotalImages < 0 || req.Price < 0 {
		return nil, fmt.Errorf("%w: package totals and price must not be negative", ErrValidation)
	}

	record := &secondary.PackageRecord{
		ID:                    s.ids.New(),
		Name:                  req.Name,
		Description:           req.Description,
		TotalServings:         req.TotalServings,
		TotalImages:           req.TotalImages,
		Price:                 req.Price,
		IsActive:              req.IsActive,
		MaxEditsPerServing:    req.MaxEditsPerServing,
		MaxProcessingTimeDays: req.MaxProcessingTimeDays,
		FeaturesTags:          req.FeaturesTags,
	}
	if err := s.packageRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	created, err := s.packageRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created package: %w", err)
	}

	pkg := packageFromRecord(created)
	s.cache.Set(cache.DetailKey(EntityPackages, pkg.ID), pkg)
	for _, k := range s.fanout.ListKeys(EntityPackages) {
		s.cache.Invalidate(k)
	}
	return pkg, nil
}

// GetPackage returns the cached package when fresh, reading through to the
// store otherwise.
func (s *PackageServiceImpl) GetPackage(ctx context.Context, packageID string) (*primary.Package, error) {
	key := cache.DetailKey(EntityPackages, packageID)
	if v, ok := s.cache.Get(key); ok && !s.cache.IsStale(key) {
		if pkg, ok := v.(*primary.Package); ok {
			return pkg, nil
		}
	}

	record, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	pkg := packageFromRecord(record)
	s.cache.Set(key, pkg)
	return pkg, nil
}

// ListPackages lists packages, optionally restricted to offerable ones.
func (s *PackageServiceImpl) ListPackages(ctx context.Context, filters primary.PackageFilters) ([]*primary.Package, error) {
	records, err := s.packageRepo.List(ctx, secondary.PackageFilters{
		ActiveOnly: filters.ActiveOnly,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	packages := make([]*primary.Package, len(records))
	for i, r := range records {
		packages[i] = packageFromRecord(r)
	}
	if !filters.ActiveOnly && filters.Limit == 0 {
		s.cache.Set(cache.ListKey(EntityPackages), packages)
	}
	return packages, nil
}

// UpdatePackage updates a package and invalidates every projection that
// could denormalize it.
func (s *PackageServiceImpl) UpdatePackage(ctx context.Context, req primary.UpdatePackageRequest) error {
	existing, err := s.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		return err
	}

	record := *existing
	if req.Name != "" {
		record.Name = req.Name
	}
	if req.Description != "" {
		record.Description = req.Description
	}
	if req.TotalServings != 0 {
		record.TotalServings = req.TotalServings
	}
	if req.TotalImages != 0 {
		record.TotalImages = req.TotalImages
	}
	if req.Price != 0 {
		record.Price = req.Price
	}
	record.IsActive = req.IsActive
	if req.MaxEditsPerServing != 0 {
		record.MaxEditsPerServing = req.MaxEditsPerServing
	}
	if req.MaxProcessingTimeDays != 0 {
		record.MaxProcessingTimeDays = req.MaxProcessingTimeDays
	}
	if req.FeaturesTags != nil {
		record.FeaturesTags = req.FeaturesTags
	}

	if err := s.packageRepo.Update(ctx, &record); err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}

	for _, k := range s.fanout.PackageDependentKeys(req.PackageID) {
		s.cache.Invalidate(k)
	}
	return nil
}

// DeletePackage hard-deletes the package row. The delete targets only the
// package: owners keep their current_package_id on the store and clear
// their local selection on the next refetch, which the invalidation here
// forces for every projection that could denormalize the package.
func (s *PackageServiceImpl) DeletePackage(ctx context.Context, packageID string) error {
	if _, err := s.packageRepo.GetByID(ctx, packageID); err != nil {
		return err
	}

	if err := s.packageRepo.Delete(ctx, packageID); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	s.cache.Delete(cache.DetailKey(EntityPackages, packageID))
	for _, k := range s.fanout.PackageDependentKeys(packageID) {
		s.cache.Invalidate(k)
	}
	s.logger.Info("package deleted", "package_id", packageID)
	return nil
}

func packageFromRecord(r *secondary.PackageRecord) *primary.Package {
	return &primary.Package{
		ID:                    r.ID,
		Name:                  r.Name,
		Description:           r.Description,
		TotalServings:         r.TotalServings,
		TotalImages:           r.TotalImages,
		Price:                 r.Price,
		IsActive:              r.IsActive,
		MaxEditsPerServing:    r.MaxEditsPerServing,
		MaxProcessingTimeDays: r.MaxProcessingTimeDays,
		FeaturesTags:          r.FeaturesTags,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

// Ensure PackageServiceImpl implements the interface
var _ primary.PackageService = (*PackageServiceImpl)(nil)
