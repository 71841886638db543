// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems: the row store, blob storage, timers, and logging.
package secondary

import "context"

// CounterField names a single resource-counter column on a counter owner.
// Counter writes are always single-field updates scoped by entity id.
type CounterField string

const (
	// CounterServings is the remaining servings allowance.
	CounterServings CounterField = "remaining_servings"
	// CounterImages is the remaining images allowance.
	CounterImages CounterField = "remaining_images"
	// CounterTrainingUnits is the AI training cost counter.
	CounterTrainingUnits CounterField = "ai_training_units"
)

// ValidCounterField reports whether f names a mutable counter column.
func ValidCounterField(f CounterField) bool {
	switch f {
	case CounterServings, CounterImages, CounterTrainingUnits:
		return true
	}
	return false
}

// ClientRepository defines the secondary port for client persistence.
type ClientRepository interface {
	// Create persists a new client.
	Create(ctx context.Context, client *ClientRecord) error

	// GetByID retrieves a client by its ID.
	GetByID(ctx context.Context, id string) (*ClientRecord, error)

	// Update updates a client's descriptive fields (not counters).
	Update(ctx context.Context, client *ClientRecord) error

	// Delete removes a client from persistence.
	Delete(ctx context.Context, id string) error

	// List retrieves clients matching the given filters.
	List(ctx context.Context, filters OwnerFilters) ([]*ClientRecord, error)

	// SetCounter writes one counter field and returns the authoritative row.
	SetCounter(ctx context.Context, id string, field CounterField, value int) (*ClientRecord, error)

	// AssignPackage sets the current package and replaces the remaining
	// counts absolutely, returning the authoritative row.
	AssignPackage(ctx context.Context, id, packageID string, servings, images int, note string) (*ClientRecord, error)
}

// AffiliateRepository defines the secondary port for affiliate persistence.
// Affiliates carry the same resource-counter shape as clients.
type AffiliateRepository interface {
	Create(ctx context.Context, affiliate *AffiliateRecord) error
	GetByID(ctx context.Context, id string) (*AffiliateRecord, error)
	Update(ctx context.Context, affiliate *AffiliateRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters OwnerFilters) ([]*AffiliateRecord, error)
	SetCounter(ctx context.Context, id string, field CounterField, value int) (*AffiliateRecord, error)
	AssignPackage(ctx context.Context, id, packageID string, servings, images int, note string) (*AffiliateRecord, error)
}

// LeadRepository defines the secondary port for lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *LeadRecord) error
	GetByID(ctx context.Context, id string) (*LeadRecord, error)
	Update(ctx context.Context, lead *LeadRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters OwnerFilters) ([]*LeadRecord, error)
}

// PackageRepository defines the secondary port for package persistence.
type PackageRepository interface {
	Create(ctx context.Context, pkg *PackageRecord) error
	GetByID(ctx context.Context, id string) (*PackageRecord, error)
	Update(ctx context.Context, pkg *PackageRecord) error

	// Delete hard-deletes the package row only. It must not touch any
	// owner's current_package_id.
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filters PackageFilters) ([]*PackageRecord, error)
}

// SubmissionRepository defines the secondary port for submission persistence.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *SubmissionRecord) error
	GetByID(ctx context.Context, id string) (*SubmissionRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters SubmissionFilters) ([]*SubmissionRecord, error)

	// UpdateStatus writes the workflow status.
	UpdateStatus(ctx context.Context, id, status string) error

	// UpdateProcessedImages replaces the processed-image URL list and
	// returns the authoritative row.
	UpdateProcessedImages(ctx context.Context, id string, urls []string) (*SubmissionRecord, error)
}

// CommentRepository defines the secondary port for comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *CommentRecord) error
	GetByID(ctx context.Context, id string) (*CommentRecord, error)
	Delete(ctx context.Context, id string) error
	ListBySubmission(ctx context.Context, submissionID string) ([]*CommentRecord, error)
}

// WorkSessionRepository defines the secondary port for work session
// persistence. Sessions are append-only: created on timer stop, never
// mutated afterwards.
type WorkSessionRepository interface {
	Create(ctx context.Context, session *WorkSessionRecord) error
	List(ctx context.Context, filters WorkSessionFilters) ([]*WorkSessionRecord, error)
}

// ClientRecord represents a client as stored in persistence.
type ClientRecord struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	Status            string
	CurrentPackageID  string // empty means no package assigned
	RemainingServings int
	RemainingImages   int
	ConsumedImages    int
	ReservedImages    int
	AITrainingUnits   int
	Notes             string
	CreatedAt         string
	UpdatedAt         string
}

// AffiliateRecord represents an affiliate as stored in persistence.
type AffiliateRecord struct {
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

// LeadRecord represents a lead as stored in persistence.
type LeadRecord struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Source    string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// PackageRecord represents a service package as stored in persistence.
type PackageRecord struct {
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

// SubmissionRecord represents a submission as stored in persistence.
type SubmissionRecord struct {
	ID                 string
	OwnerType          string // "client" or "lead"
	OwnerID            string
	ItemName           string
	ItemType           string
	Ingredients        string
	Category           string
	Status             string
	OriginalImageURLs  []string
	ProcessedImageURLs []string
	CreatedAt          string
	UpdatedAt          string
}

// CommentRecord represents a submission comment as stored in persistence.
type CommentRecord struct {
	ID           string
	SubmissionID string
	Type         string
	Visibility   string
	Content      string
	AuthorID     string
	CreatedAt    string
}

// WorkSessionRecord represents a logged work session as stored in
// persistence.
type WorkSessionRecord struct {
	ID              string
	OwnerType       string // "client" or "lead"
	OwnerID         string
	DurationMinutes int
	WorkType        string
	Description     string
	SessionDate     string
	CreatedAt       string
}

// OwnerFilters contains filter options for querying clients, affiliates,
// and leads.
type OwnerFilters struct {
	Status string
	Limit  int
}

// PackageFilters contains filter options for querying packages.
type PackageFilters struct {
	ActiveOnly bool
	Limit      int
}

// SubmissionFilters contains filter options for querying submissions.
type SubmissionFilters struct {
	OwnerType string
	OwnerID   string
	Status    string
	Limit     int
}

// WorkSessionFilters contains filter options for querying work sessions.
type WorkSessionFilters struct {
	OwnerType string
	OwnerID   string
	Limit     int
}
