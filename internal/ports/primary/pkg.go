package primary

import "context"

// Package represents a service package: a purchasable bundle of servings
// and images.
type Package struct {
	ID                    string
	Name                  string
	Description           string
	TotalServings         int
	TotalImages           int
	Price                 float64
	IsActive              bool
	MaxEditsPerServing    int
	MaxProcessingTimeDays int
	FeaturesTags          []string
	CreatedAt             string
	UpdatedAt             string
}

// CreatePackageRequest contains the parameters for creating a package.
type CreatePackageRequest struct {
	Name                  string
	Description           string
	TotalServings         int
	TotalImages           int
	Price                 float64
	IsActive              bool
	MaxEditsPerServing    int
	MaxProcessingTimeDays int
	FeaturesTags          []string
}

// UpdatePackageRequest contains the parameters for updating a package.
type UpdatePackageRequest struct {
	PackageID             string
	Name                  string
	Description           string
	TotalServings         int
	TotalImages           int
	Price                 float64
	IsActive              bool
	MaxEditsPerServing    int
	MaxProcessingTimeDays int
	FeaturesTags          []string
}

// PackageFilters contains filter options for listing packages.
type PackageFilters struct {
	ActiveOnly bool
	Limit      int
}

// PackageService defines the primary port for package management.
type PackageService interface {
	CreatePackage(ctx context.Context, req CreatePackageRequest) (*Package, error)
	GetPackage(ctx context.Context, packageID string) (*Package, error)
	ListPackages(ctx context.Context, filters PackageFilters) ([]*Package, error)
	UpdatePackage(ctx context.Context, req UpdatePackageRequest) error

	// DeletePackage hard-deletes the package row and invalidates every
	// cached projection that could denormalize it. It never touches an
	// owner's current_package_id on the store.
	DeletePackage(ctx context.Context, packageID string) error
}
