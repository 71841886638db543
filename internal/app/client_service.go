package app

import (
	"context"
	"fmt"

	"github.com/example/studiodesk/internal/cache"
	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

// ClientServiceImpl implements the ClientService interface.
type ClientServiceImpl struct {
	clientRepo  secondary.ClientRepository
	packageRepo secondary.PackageRepository
	coordinator *Coordinator
	fanout      *Fanout
	cache       *cache.Store
	ids         secondary.IDGenerator
	logger      secondary.Logger
}

// NewClientService creates a new ClientService with injected dependencies.
func NewClientService(
	clientRepo secondary.ClientRepository,
	packageRepo secondary.PackageRepository,
	coordinator *Coordinator,
	fanout *Fanout,
	store *cache.Store,
	ids secondary.IDGenerator,
	logger secondary.Logger,
) *ClientServiceImpl {
	return &ClientServiceImpl{
		clientRepo:  clientRepo,
		packageRepo: packageRepo,
		coordinator: coordinator,
		fanout:      fanout,
		cache:       store,
		ids:         ids,
		logger:      logger,
	}
}

// CreateClient creates a new client with zeroed counters.
func (s *ClientServiceImpl) CreateClient(ctx context.Context, req primary.CreateClientRequest) (*primary.Client, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	record := &secondary.ClientRecord{
		ID:     s.ids.New(),
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: status,
		Notes:  req.Notes,
	}
	if err := s.clientRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	created, err := s.clientRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created client: %w", err)
	}

	client := clientFromRecord(created)
	s.cache.Set(cache.DetailKey(EntityClients, client.ID), client)
	for _, k := range s.fanout.ListKeys(EntityClients) {
		s.cache.Invalidate(k)
	}
	return client, nil
}

// GetClient returns the cached client when fresh, reading through to the
// store otherwise.
func (s *ClientServiceImpl) GetClient(ctx context.Context, clientID string) (*primary.Client, error) {
	key := cache.DetailKey(EntityClients, clientID)
	if v, ok := s.cache.Get(key); ok && !s.cache.IsStale(key) {
		if client, ok := v.(*primary.Client); ok {
			return client, nil
		}
	}

	record, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	client := clientFromRecord(record)
	s.cache.Set(key, client)
	return client, nil
}

// ListClients lists clients and refreshes the unfiltered list key.
func (s *ClientServiceImpl) ListClients(ctx context.Context, filters primary.ClientFilters) ([]*primary.Client, error) {
	records, err := s.clientRepo.List(ctx, secondary.OwnerFilters{
		Status: filters.Status,
		Limit:  filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*primary.Client, len(records))
	for i, r := range records {
		clients[i] = clientFromRecord(r)
	}
	if filters.Status == "" && filters.Limit == 0 {
		s.cache.Set(cache.ListKey(EntityClients), clients)
	}
	return clients, nil
}

// UpdateClient updates descriptive fields and invalidates cached
// projections.
func (s *ClientServiceImpl) UpdateClient(ctx context.Context, req primary.UpdateClientRequest) error {
	existing, err := s.clientRepo.GetByID(ctx, req.ClientID)
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
	if req.Status != "" {
		record.Status = req.Status
	}
	if req.Notes != "" {
		record.Notes = req.Notes
	}

	if err := s.clientRepo.Update(ctx, &record); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	for _, k := range s.fanout.EntityKeys(EntityClients, req.ClientID) {
		s.cache.Invalidate(k)
	}
	return nil
}

// DeleteClient removes a client and drops its cached projections.
func (s *ClientServiceImpl) DeleteClient(ctx context.Context, clientID string) error {
	if err := s.clientRepo.Delete(ctx, clientID); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	s.cache.Delete(cache.DetailKey(EntityClients, clientID))
	for _, k := range s.fanout.ListKeys(EntityClients) {
		s.cache.Invalidate(k)
	}
	return nil
}

// AdjustServings changes remaining_servings by delta.
func (s *ClientServiceImpl) AdjustServings(ctx context.Context, clientID string, delta int) (*primary.Client, error) {
	return s.adjustCounter(ctx, clientID, secondary.CounterServings, delta)
}

// AdjustImages changes remaining_images by delta.
func (s *ClientServiceImpl) AdjustImages(ctx context.Context, clientID string, delta int) (*primary.Client, error) {
	return s.adjustCounter(ctx, clientID, secondary.CounterImages, delta)
}

// AdjustTrainingUnits changes the AI training cost counter by delta.
func (s *ClientServiceImpl) AdjustTrainingUnits(ctx context.Context, clientID string, delta int) (*primary.Client, error) {
	return s.adjustCounter(ctx, clientID, secondary.CounterTrainingUnits, delta)
}

// adjustCounter runs one additive counter mutation through the optimistic
// pipeline. The result is clamped at zero; a decrement requested when the
// counter is already zero is rejected before any cache or network write.
func (s *ClientServiceImpl) adjustCounter(ctx context.Context, clientID string, field secondary.CounterField, delta int) (*primary.Client, error) {
	current, err := s.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	cur := clientCounter(current, field)
	if delta < 0 && cur == 0 {
		return nil, fmt.Errorf("%w: %s is already 0 for client %s", ErrValidation, field, clientID)
	}

	value := cur + delta
	if value < 0 {
		value = 0
	}

	patch := patchClient(clientID, func(c *primary.Client) {
		setClientCounter(c, field, value)
	})
	patches := make(map[cache.Key]cache.PatchFunc)
	for _, k := range s.fanout.EntityKeys(EntityClients, clientID) {
		patches[k] = patch
	}

	var invalidate []cache.Key
	if field == secondary.CounterTrainingUnits {
		invalidate = s.fanout.AggregateKeys()
	}

	outcome, err := s.coordinator.Run(ctx, Mutation{
		Guard:   string(cache.DetailKey(EntityClients, clientID)) + "/" + string(field),
		Patches: patches,
		Commit: func(ctx context.Context) (any, error) {
			record, err := s.clientRepo.SetCounter(ctx, clientID, field, value)
			if err != nil {
				return nil, err
			}
			return clientFromRecord(record), nil
		},
		Reconcile:  s.reconcileClient,
		Invalidate: invalidate,
		SuccessMessage: func(outcome any) string {
			c := outcome.(*primary.Client)
			return fmt.Sprintf("%s for %s is now %d", counterLabel(field), c.Name, clientCounter(c, field))
		},
	})
	if err != nil {
		return nil, err
	}
	return outcome.(*primary.Client), nil
}

// AssignPackage replaces the client's package assignment and remaining
// counts. The grant is absolute, taken from the dialog's edited amounts,
// not added to the current counters.
func (s *ClientServiceImpl) AssignPackage(ctx context.Context, req primary.AssignPackageRequest) (*primary.Client, error) {
	servings, images, err := resolveGrant(req.Servings, req.Images)
	if err != nil {
		return nil, err
	}

	if _, err := s.packageRepo.GetByID(ctx, req.PackageID); err != nil {
		return nil, fmt.Errorf("%w: package %s not found", ErrValidation, req.PackageID)
	}
	if _, err := s.GetClient(ctx, req.EntityID); err != nil {
		return nil, err
	}

	patch := patchClient(req.EntityID, func(c *primary.Client) {
		c.CurrentPackageID = req.PackageID
		c.RemainingServings = servings
		c.RemainingImages = images
	})
	patches := make(map[cache.Key]cache.PatchFunc)
	for _, k := range s.fanout.EntityKeys(EntityClients, req.EntityID) {
		patches[k] = patch
	}

	outcome, err := s.coordinator.Run(ctx, Mutation{
		// One assignment in flight per entity: the guard is the entity
		// key, not the package, so clicking another package card while an
		// assignment is pending is ignored.
		Guard:   string(cache.DetailKey(EntityClients, req.EntityID)),
		Patches: patches,
		Commit: func(ctx context.Context) (any, error) {
			record, err := s.clientRepo.AssignPackage(ctx, req.EntityID, req.PackageID, servings, images, req.Note)
			if err != nil {
				return nil, err
			}
			return clientFromRecord(record), nil
		},
		Reconcile:  s.reconcileClient,
		Invalidate: s.fanout.AggregateKeys(),
		SuccessMessage: func(outcome any) string {
			c := outcome.(*primary.Client)
			return fmt.Sprintf("assigned package to %s: %d servings, %d images", c.Name, c.RemainingServings, c.RemainingImages)
		},
	})
	if err != nil {
		return nil, err
	}
	return outcome.(*primary.Client), nil
}

// QuickAssignPackage assigns a package using its own totals as the grant.
func (s *ClientServiceImpl) QuickAssignPackage(ctx context.Context, clientID, packageID string) (*primary.Client, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("%w: package %s not found", ErrValidation, packageID)
	}
	servings := pkg.TotalServings
	images := pkg.TotalImages
	return s.AssignPackage(ctx, primary.AssignPackageRequest{
		EntityID:  clientID,
		PackageID: packageID,
		Servings:  &servings,
		Images:    &images,
	})
}

// reconcileClient overwrites every fan-out key with the authoritative
// server row.
func (s *ClientServiceImpl) reconcileClient(outcome any) map[cache.Key]cache.PatchFunc {
	authoritative := outcome.(*primary.Client)
	patch := replaceClient(authoritative)
	patches := make(map[cache.Key]cache.PatchFunc)
	for _, k := range s.fanout.EntityKeys(EntityClients, authoritative.ID) {
		patches[k] = patch
	}
	// The detail key may not have been populated before this mutation;
	// make sure it holds the authoritative row afterwards.
	s.cache.Set(cache.DetailKey(EntityClients, authoritative.ID), authoritative)
	return patches
}

// Helper functions

// resolveGrant coerces nullable grant amounts to integers. A grant where
// both amounts resolve to zero defaults to one serving, so an assignment
// always grants something measurable.
func resolveGrant(servings, images *int) (int, int, error) {
	sv, im := 0, 0
	if servings != nil {
		sv = *servings
	}
	if images != nil {
		im = *images
	}
	if sv < 0 || im < 0 {
		return 0, 0, fmt.Errorf("%w: grant amounts must not be negative", ErrValidation)
	}
	if sv == 0 && im == 0 {
		sv = 1
	}
	return sv, im, nil
}

// patchClient builds a PatchFunc that applies fn to the client wherever it
// appears: as a detail value or as an element of a cached list. Values are
// copied, never mutated in place, so snapshots stay verbatim.
func patchClient(id string, fn func(*primary.Client)) cache.PatchFunc {
	return func(v any) any {
		switch t := v.(type) {
		case *primary.Client:
			if t.ID != id {
				return v
			}
			c := *t
			fn(&c)
			return &c
		case []*primary.Client:
			out := make([]*primary.Client, len(t))
			copy(out, t)
			for i, c := range out {
				if c != nil && c.ID == id {
					cc := *c
					fn(&cc)
					out[i] = &cc
				}
			}
			return out
		}
		return v
	}
}

// replaceClient builds a PatchFunc that swaps in the authoritative row.
func replaceClient(authoritative *primary.Client) cache.PatchFunc {
	return func(v any) any {
		switch t := v.(type) {
		case *primary.Client:
			if t.ID != authoritative.ID {
				return v
			}
			return authoritative
		case []*primary.Client:
			out := make([]*primary.Client, len(t))
			copy(out, t)
			for i, c := range out {
				if c != nil && c.ID == authoritative.ID {
					out[i] = authoritative
				}
			}
			return out
		}
		return v
	}
}

func clientCounter(c *primary.Client, field secondary.CounterField) int {
	switch field {
	case secondary.CounterServings:
		return c.RemainingServings
	case secondary.CounterImages:
		return c.RemainingImages
	case secondary.CounterTrainingUnits:
		return c.AITrainingUnits
	}
	return 0
}

func setClientCounter(c *primary.Client, field secondary.CounterField, value int) {
	switch field {
	case secondary.CounterServings:
		c.RemainingServings = value
	case secondary.CounterImages:
		c.RemainingImages = value
	case secondary.CounterTrainingUnits:
		c.AITrainingUnits = value
	}
}

func counterLabel(field secondary.CounterField) string {
	switch field {
	case secondary.CounterServings:
		return "remaining servings"
	case secondary.CounterImages:
		return "remaining images"
	case secondary.CounterTrainingUnits:
		return "AI training units"
	}
	return string(field)
}

func clientFromRecord(r *secondary.ClientRecord) *primary.Client {
	return &primary.Client{
		ID:                r.ID,
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		Status:            r.Status,
		CurrentPackageID:  r.CurrentPackageID,
		RemainingServings: r.RemainingServings,
		RemainingImages:   r.RemainingImages,
		ConsumedImages:    r.ConsumedImages,
		ReservedImages:    r.ReservedImages,
		AITrainingUnits:   r.AITrainingUnits,
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// Ensure ClientServiceImpl implements the interface
var _ primary.ClientService = (*ClientServiceImpl)(nil)
