package primary

import "context"

// Affiliate represents a referral partner. Affiliates carry the same
// resource-counter shape as clients.
type Affiliate struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	CommissionPercent int
	CurrentPackageID  string
	RemainingServings int
	RemainingImages   int
	ConsumedImages    int
	ReservedImages    int
	AITrainingUnits   int
	CreatedAt         string
	UpdatedAt         string
}

// CreateAffiliateRequest contains the parameters for creating an affiliate.
type CreateAffiliateRequest struct {
	Name              string
	Email             string
	Phone             string
	CommissionPercent int
}

// UpdateAffiliateRequest contains the parameters for updating an
// affiliate's descriptive fields.
type UpdateAffiliateRequest struct {
	AffiliateID       string
	Name              string
	Email             string
	Phone             string
	CommissionPercent int
}

// AffiliateFilters contains filter options for listing affiliates.
type AffiliateFilters struct {
	Limit int
}

// AffiliateService defines the primary port for affiliate management.
// Counter and assignment semantics mirror ClientService.
type AffiliateService interface {
	CreateAffiliate(ctx context.Context, req CreateAffiliateRequest) (*Affiliate, error)
	GetAffiliate(ctx context.Context, affiliateID string) (*Affiliate, error)
	ListAffiliates(ctx context.Context, filters AffiliateFilters) ([]*Affiliate, error)
	UpdateAffiliate(ctx context.Context, req UpdateAffiliateRequest) error
	DeleteAffiliate(ctx context.Context, affiliateID string) error

	AdjustServings(ctx context.Context, affiliateID string, delta int) (*Affiliate, error)
	AdjustImages(ctx context.Context, affiliateID string, delta int) (*Affiliate, error)
	AdjustTrainingUnits(ctx context.Context, affiliateID string, delta int) (*Affiliate, error)
	AssignPackage(ctx context.Context, req AssignPackageRequest) (*Affiliate, error)
	QuickAssignPackage(ctx context.Context, affiliateID, packageID string) (*Affiliate, error)
}
