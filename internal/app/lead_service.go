package app

import (
	"context"
	"fmt"

	"github.com/example/studiodesk/internal/cache"
	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

// LeadServiceImpl implements the LeadService interface.
type LeadServiceImpl struct {
	leadRepo   secondary.LeadRepository
	clientRepo secondary.ClientRepository
	fanout     *Fanout
	cache      *cache.Store
	ids        secondary.IDGenerator
	logger     secondary.Logger
}

// NewLeadService creates a new LeadService with injected dependencies.
func NewLeadService(
	leadRepo secondary.LeadRepository,
	clientRepo secondary.ClientRepository,
	fanout *Fanout,
	store *cache.Store,
	ids secondary.IDGenerator,
	logger secondary.Logger,
) *LeadServiceImpl {
	return &LeadServiceImpl{
		leadRepo:   leadRepo,
		clientRepo: clientRepo,
		fanout:     fanout,
		cache:      store,
		ids:        ids,
		logger:     logger,
	}
}

// CreateLead creates a new lead in the "new" status.
func (s *LeadServiceImpl) CreateLead(ctx context.Context, req primary.CreateLeadRequest) (*primary.Lead, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: lead name is required", ErrValidation)
	}

	record := &secondary.LeadRecord{
		ID:     s.ids.New(),
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Source: req.Source,
		Status: primary.LeadStatusNew,
	}
	if err := s.leadRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	created, err := s.leadRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created lead: %w", err)
	}

	lead := leadFromRecord(created)
	s.cache.Set(cache.DetailKey(EntityLeads, lead.ID), lead)
	for _, k := range s.fanout.ListKeys(EntityLeads) {
		s.cache.Invalidate(k)
	}
	return lead, nil
}

// GetLead retrieves a lead by ID.
func (s *LeadServiceImpl) GetLead(ctx context.Context, leadID string) (*primary.Lead, error) {
	key := cache.DetailKey(EntityLeads, leadID)
	if v, ok := s.cache.Get(key); ok && !s.cache.IsStale(key) {
		if lead, ok := v.(*primary.Lead); ok {
			return lead, nil
		}
	}

	record, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	lead := leadFromRecord(record)
	s.cache.Set(key, lead)
	return lead, nil
}

// ListLeads lists leads with optional filters.
func (s *LeadServiceImpl) ListLeads(ctx context.Context, filters primary.LeadFilters) ([]*primary.Lead, error) {
	records, err := s.leadRepo.List(ctx, secondary.OwnerFilters{
		Status: filters.Status,
		Limit:  filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	leads := make([]*primary.Lead, len(records))
	for i, r := range records {
		leads[i] = leadFromRecord(r)
	}
	if filters.Status == "" && filters.Limit == 0 {
		s.cache.Set(cache.ListKey(EntityLeads), leads)
	}
	return leads, nil
}

// UpdateLead updates a lead's fields.
func (s *LeadServiceImpl) UpdateLead(ctx context.Context, req primary.UpdateLeadRequest) error {
	existing, err := s.leadRepo.GetByID(ctx, req.LeadID)
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
	if req.Source != "" {
		record.Source = req.Source
	}
	if req.Status != "" {
		record.Status = req.Status
	}

	if err := s.leadRepo.Update(ctx, &record); err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}

	for _, k := range s.fanout.EntityKeys(EntityLeads, req.LeadID) {
		s.cache.Invalidate(k)
	}
	return nil
}

// DeleteLead removes a lead.
func (s *LeadServiceImpl) DeleteLead(ctx context.Context, leadID string) error {
	if err := s.leadRepo.Delete(ctx, leadID); err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	s.cache.Delete(cache.DetailKey(EntityLeads, leadID))
	for _, k := range s.fanout.ListKeys(EntityLeads) {
		s.cache.Invalidate(k)
	}
	return nil
}

// ConvertLead marks a lead converted and creates a client carrying over
// the lead's contact details.
func (s *LeadServiceImpl) ConvertLead(ctx context.Context, leadID string) (*primary.Client, error) {
	lead, err := s.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Status == primary.LeadStatusConverted {
		return nil, fmt.Errorf("%w: lead %s is already converted", ErrValidation, leadID)
	}

	clientRecord := &secondary.ClientRecord{
		ID:     s.ids.New(),
		Name:   lead.Name,
		Email:  lead.Email,
		Phone:  lead.Phone,
		Status: "active",
	}
	if err := s.clientRepo.Create(ctx, clientRecord); err != nil {
		return nil, fmt.Errorf("failed to create client from lead: %w", err)
	}

	converted := *lead
	converted.Status = primary.LeadStatusConverted
	if err := s.leadRepo.Update(ctx, &converted); err != nil {
		return nil, fmt.Errorf("failed to mark lead converted: %w", err)
	}

	created, err := s.clientRepo.GetByID(ctx, clientRecord.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch converted client: %w", err)
	}

	for _, k := range s.fanout.EntityKeys(EntityLeads, leadID) {
		s.cache.Invalidate(k)
	}
	for _, k := range s.fanout.ListKeys(EntityClients) {
		s.cache.Invalidate(k)
	}
	s.logger.Info("lead converted", "lead_id", leadID, "client_id", created.ID)
	return clientFromRecord(created), nil
}

func leadFromRecord(r *secondary.LeadRecord) *primary.Lead {
	return &primary.Lead{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Source:    r.Source,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure LeadServiceImpl implements the interface
var _ primary.LeadService = (*LeadServiceImpl)(nil)
