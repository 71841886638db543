package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/studiodesk/internal/cache"
	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

// ReportServiceImpl implements the ReportService interface. The cost
// report is an aggregate over clients and affiliates; coordinators mark
// the cached copy stale instead of patching it, and this service
// recomputes on demand.
type ReportServiceImpl struct {
	clientRepo    secondary.ClientRepository
	affiliateRepo secondary.AffiliateRepository
	packageRepo   secondary.PackageRepository
	cache         *cache.Store
	clock         secondary.Clock
	logger        secondary.Logger
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(
	clientRepo secondary.ClientRepository,
	affiliateRepo secondary.AffiliateRepository,
	packageRepo secondary.PackageRepository,
	store *cache.Store,
	clock secondary.Clock,
	logger secondary.Logger,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		clientRepo:    clientRepo,
		affiliateRepo: affiliateRepo,
		packageRepo:   packageRepo,
		cache:         store,
		clock:         clock,
		logger:        logger,
	}
}

// CostReport returns the cached report when present and fresh, recomputing
// otherwise.
func (s *ReportServiceImpl) CostReport(ctx context.Context) (*primary.CostReport, error) {
	key := cache.CostReportKey()
	if v, ok := s.cache.Get(key); ok && !s.cache.IsStale(key) {
		if report, ok := v.(*primary.CostReport); ok {
			return report, nil
		}
	}

	clients, err := s.clientRepo.List(ctx, secondary.OwnerFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients for cost report: %w", err)
	}
	affiliates, err := s.affiliateRepo.List(ctx, secondary.OwnerFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list affiliates for cost report: %w", err)
	}

	prices := make(map[string]float64)
	packages, err := s.packageRepo.List(ctx, secondary.PackageFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list packages for cost report: %w", err)
	}
	for _, p := range packages {
		prices[p.ID] = p.Price
	}

	report := &primary.CostReport{
		GeneratedAt: s.clock.Now().Format(time.RFC3339),
	}
	for _, c := range clients {
		row := primary.CostReportRow{
			OwnerType:     primary.OwnerTypeClient,
			OwnerID:       c.ID,
			Name:          c.Name,
			TrainingUnits: c.AITrainingUnits,
			PackageID:     c.CurrentPackageID,
			PackagePrice:  prices[c.CurrentPackageID],
		}
		report.Rows = append(report.Rows, row)
		report.TotalTrainingUnits += row.TrainingUnits
		report.TotalPackageValue += row.PackagePrice
	}
	for _, a := range affiliates {
		row := primary.CostReportRow{
			OwnerType:     "affiliate",
			OwnerID:       a.ID,
			Name:          a.Name,
			TrainingUnits: a.AITrainingUnits,
			PackageID:     a.CurrentPackageID,
			PackagePrice:  prices[a.CurrentPackageID],
		}
		report.Rows = append(report.Rows, row)
		report.TotalTrainingUnits += row.TrainingUnits
		report.TotalPackageValue += row.PackagePrice
	}

	s.cache.Set(key, report)
	return report, nil
}

// Ensure ReportServiceImpl implements the interface
var _ primary.ReportService = (*ReportServiceImpl)(nil)
