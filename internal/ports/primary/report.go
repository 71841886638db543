package primary

import "context"

// CostReportRow is one owner's contribution to the cost report.
type CostReportRow struct {
	OwnerType     string
	OwnerID       string
	Name          string
	TrainingUnits int
	PackageID     string
	PackagePrice  float64
}

// CostReport aggregates AI training cost and assigned package value across
// clients and affiliates. It is computed from multiple entities, so cached
// copies are invalidated by mutations rather than patched.
type CostReport struct {
	GeneratedAt        string
	TotalTrainingUnits int
	TotalPackageValue  float64
	Rows               []CostReportRow
}

// ReportService defines the primary port for aggregate reports.
type ReportService interface {
	// CostReport returns the cached report when it is present and fresh,
	// recomputing otherwise.
	CostReport(ctx context.Context) (*CostReport, error)
}
