// Package primary defines the primary ports (driving interfaces) of the
// application: the service contracts the CLI and HTTP surfaces consume.
package primary

import "context"

// Client represents a studio client with its resource counters.
type Client struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	Status            string
	CurrentPackageID  string
	RemainingServings int
	RemainingImages   int
	ConsumedImages    int
	ReservedImages    int
	AITrainingUnits   int
	Notes             string
	CreatedAt         string
	UpdatedAt         string
}

// CreateClientRequest contains the parameters for creating a client.
type CreateClientRequest struct {
	Name   string
	Email  string
	Phone  string
	Status string
	Notes  string
}

// UpdateClientRequest contains the parameters for updating a client's
// descriptive fields. Counters are mutated only through the adjust and
// assign operations.
type UpdateClientRequest struct {
	ClientID string
	Name     string
	Email    string
	Phone    string
	Status   string
	Notes    string
}

// AssignPackageRequest contains the parameters of a package assignment.
// Servings and Images are nullable: a nil grant coerces to zero, and when
// both coerce to zero the assignment grants exactly one serving.
type AssignPackageRequest struct {
	EntityID  string
	PackageID string
	Servings  *int
	Images    *int
	Note      string
}

// ClientFilters contains filter options for listing clients.
type ClientFilters struct {
	Status string
	Limit  int
}

// ClientService defines the primary port for client management.
type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error)
	GetClient(ctx context.Context, clientID string) (*Client, error)
	ListClients(ctx context.Context, filters ClientFilters) ([]*Client, error)
	UpdateClient(ctx context.Context, req UpdateClientRequest) error
	DeleteClient(ctx context.Context, clientID string) error

	// AdjustServings changes remaining_servings by a signed delta through
	// the optimistic mutation pipeline. A decrement requested at zero is
	// rejected before any cache or network write.
	AdjustServings(ctx context.Context, clientID string, delta int) (*Client, error)

	// AdjustImages changes remaining_images by a signed delta.
	AdjustImages(ctx context.Context, clientID string, delta int) (*Client, error)

	// AdjustTrainingUnits changes the AI training cost counter and marks
	// the cost report stale.
	AdjustTrainingUnits(ctx context.Context, clientID string, delta int) (*Client, error)

	// AssignPackage sets the current package and replaces remaining counts
	// with the granted amounts. One assignment may be in flight per client.
	AssignPackage(ctx context.Context, req AssignPackageRequest) (*Client, error)

	// QuickAssignPackage assigns a package using the package's own totals
	// as the absolute grant.
	QuickAssignPackage(ctx context.Context, clientID, packageID string) (*Client, error)
}
