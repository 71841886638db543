package primary

import (
	"context"
	"io"
)

// Submission workflow statuses. The selector offers every status at all
// times, so any status may move to any other; awaiting-processing is the
// default initial state and completed-approved is terminal in practice.
const (
	StatusAwaitingProcessing = "awaiting-processing"
	StatusInProcessing       = "in-processing"
	StatusReadyForReview     = "ready-for-review"
	StatusFeedbackReceived   = "feedback-received"
	StatusCompletedApproved  = "completed-approved"
)

// AllStatuses lists the workflow statuses in active-work-first order.
var AllStatuses = []string{
	StatusAwaitingProcessing,
	StatusInProcessing,
	StatusReadyForReview,
	StatusFeedbackReceived,
	StatusCompletedApproved,
}

// ValidStatus reports whether s is a member of the workflow status set.
func ValidStatus(s string) bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// StatusRank returns the sort rank of a status for active-work-first
// ordering. Unknown statuses sort last.
func StatusRank(s string) int {
	for i, st := range AllStatuses {
		if st == s {
			return i
		}
	}
	return len(AllStatuses)
}

// Owner types for submissions and work sessions.
const (
	OwnerTypeClient = "client"
	OwnerTypeLead   = "lead"
)

// Submission represents one food-photography submission.
type Submission struct {
	ID                 string
	OwnerType          string
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

// CreateSubmissionRequest contains the parameters for creating a submission.
// OriginalImageURLs is write-once: set here, never mutated afterwards.
type CreateSubmissionRequest struct {
	OwnerType         string
	OwnerID           string
	ItemName          string
	ItemType          string
	Ingredients       string
	Category          string
	OriginalImageURLs []string
}

// ImageUpload is one binary image destined for the blob vault.
type ImageUpload struct {
	Name    string
	Content io.Reader
	Size    int64
}

// SubmissionFilters contains filter options for listing submissions.
type SubmissionFilters struct {
	OwnerType string
	OwnerID   string
	Status    string
	Limit     int
}

// SubmissionService defines the primary port for submission workflow.
type SubmissionService interface {
	CreateSubmission(ctx context.Context, req CreateSubmissionRequest) (*Submission, error)
	GetSubmission(ctx context.Context, submissionID string) (*Submission, error)

	// ListSubmissions returns submissions in active-work-first status
	// order; unknown statuses sort last.
	ListSubmissions(ctx context.Context, filters SubmissionFilters) ([]*Submission, error)
	DeleteSubmission(ctx context.Context, submissionID string) error

	// UpdateStatus moves a submission to any member of the status set and
	// invalidates cached submission lists, whose order depends on status.
	UpdateStatus(ctx context.Context, submissionID, status string) error

	// AddProcessedImages uploads the given files to the blob vault and/or
	// appends an externally hosted URL. The URL list is read fresh from
	// the store immediately before the write so concurrent appends are not
	// lost, and any failure leaves the list unchanged.
	AddProcessedImages(ctx context.Context, submissionID string, uploads []ImageUpload, externalURL string) (*Submission, error)

	// RemoveProcessedImage filters one URL out of the freshly read list
	// and returns the submission plus the display index clamped into
	// [0, newLen-1], or 0 when the list becomes empty.
	RemoveProcessedImage(ctx context.Context, submissionID, url string, displayIndex int) (*Submission, int, error)
}
