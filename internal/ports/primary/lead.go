package primary

import "context"

// Lead statuses.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// Lead represents a prospective client. Leads own submissions and work
// sessions but carry no resource counters until converted.
type Lead struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Source    string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// CreateLeadRequest contains the parameters for creating a lead.
type CreateLeadRequest struct {
	Name   string
	Email  string
	Phone  string
	Source string
}

// UpdateLeadRequest contains the parameters for updating a lead.
type UpdateLeadRequest struct {
	LeadID string
	Name   string
	Email  string
	Phone  string
	Source string
	Status string
}

// LeadFilters contains filter options for listing leads.
type LeadFilters struct {
	Status string
	Limit  int
}

// LeadService defines the primary port for lead management.
type LeadService interface {
	CreateLead(ctx context.Context, req CreateLeadRequest) (*Lead, error)
	GetLead(ctx context.Context, leadID string) (*Lead, error)
	ListLeads(ctx context.Context, filters LeadFilters) ([]*Lead, error)
	UpdateLead(ctx context.Context, req UpdateLeadRequest) error
	DeleteLead(ctx context.Context, leadID string) error

	// ConvertLead marks a lead converted and creates a client carrying
	// over the lead's contact details. Returns the new client.
	ConvertLead(ctx context.Context, leadID string) (*Client, error)
}
