package app

import (
	"context"
	"fmt"
	"path"
	"sort"

	"github.com/example/studiodesk/internal/cache"
	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

// SubmissionServiceImpl implements the SubmissionService interface.
type SubmissionServiceImpl struct {
	submissionRepo secondary.SubmissionRepository
	vault          secondary.BlobVault
	fanout         *Fanout
	cache          *cache.Store
	hub            *Hub
	ids            secondary.IDGenerator
	notifier       secondary.Notifier
	logger         secondary.Logger
}

// NewSubmissionService creates a new SubmissionService with injected
// dependencies.
func NewSubmissionService(
	submissionRepo secondary.SubmissionRepository,
	vault secondary.BlobVault,
	fanout *Fanout,
	store *cache.Store,
	hub *Hub,
	ids secondary.IDGenerator,
	notifier secondary.Notifier,
	logger secondary.Logger,
) *SubmissionServiceImpl {
	return &SubmissionServiceImpl{
		submissionRepo: submissionRepo,
		vault:          vault,
		fanout:         fanout,
		cache:          store,
		hub:            hub,
		ids:            ids,
		notifier:       notifier,
		logger:         logger,
	}
}

// CreateSubmission creates a submission in the default initial status.
// The original image list is write-once.
func (s *SubmissionServiceImpl) CreateSubmission(ctx context.Context, req primary.CreateSubmissionRequest) (*primary.Submission, error) {
	if req.OwnerType != primary.OwnerTypeClient && req.OwnerType != primary.OwnerTypeLead {
		return nil, fmt.Errorf("%w: owner type must be %q or %q", ErrValidation, primary.OwnerTypeClient, primary.OwnerTypeLead)
	}
	if req.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrValidation)
	}
	if req.ItemName == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrValidation)
	}

	record := &secondary.SubmissionRecord{
		ID:                s.ids.New(),
		OwnerType:         req.OwnerType,
		OwnerID:           req.OwnerID,
		ItemName:          req.ItemName,
		ItemType:          req.ItemType,
		Ingredients:       req.Ingredients,
		Category:          req.Category,
		Status:            primary.StatusAwaitingProcessing,
		OriginalImageURLs: req.OriginalImageURLs,
	}
	if err := s.submissionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	created, err := s.submissionRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created submission: %w", err)
	}

	submission := submissionFromRecord(created)
	s.cache.Set(cache.DetailKey(EntitySubmissions, submission.ID), submission)
	for _, k := range s.fanout.ListKeys(EntitySubmissions) {
		s.cache.Invalidate(k)
	}
	return submission, nil
}

// GetSubmission retrieves a submission by ID.
func (s *SubmissionServiceImpl) GetSubmission(ctx context.Context, submissionID string) (*primary.Submission, error) {
	key := cache.DetailKey(EntitySubmissions, submissionID)
	if v, ok := s.cache.Get(key); ok && !s.cache.IsStale(key) {
		if submission, ok := v.(*primary.Submission); ok {
			return submission, nil
		}
	}

	record, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	submission := submissionFromRecord(record)
	s.cache.Set(key, submission)
	return submission, nil
}

// ListSubmissions returns submissions sorted active-work-first by status
// rank; within the same rank, newest first by creation timestamp.
func (s *SubmissionServiceImpl) ListSubmissions(ctx context.Context, filters primary.SubmissionFilters) ([]*primary.Submission, error) {
	records, err := s.submissionRepo.List(ctx, secondary.SubmissionFilters{
		OwnerType: filters.OwnerType,
		OwnerID:   filters.OwnerID,
		Status:    filters.Status,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	submissions := make([]*primary.Submission, len(records))
	for i, r := range records {
		submissions[i] = submissionFromRecord(r)
	}
	sort.SliceStable(submissions, func(i, j int) bool {
		ri, rj := primary.StatusRank(submissions[i].Status), primary.StatusRank(submissions[j].Status)
		if ri != rj {
			return ri < rj
		}
		return submissions[i].CreatedAt > submissions[j].CreatedAt
	})

	if filters.OwnerType == "" && filters.OwnerID == "" && filters.Status == "" && filters.Limit == 0 {
		s.cache.Set(cache.ListKey(EntitySubmissions), submissions)
	}
	return submissions, nil
}

// DeleteSubmission removes a submission.
func (s *SubmissionServiceImpl) DeleteSubmission(ctx context.Context, submissionID string) error {
	if err := s.submissionRepo.Delete(ctx, submissionID); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	s.cache.Delete(cache.DetailKey(EntitySubmissions, submissionID))
	for _, k := range s.fanout.ListKeys(EntitySubmissions) {
		s.cache.Invalidate(k)
	}
	return nil
}

// UpdateStatus moves a submission to any status in the workflow set.
// Submission lists are invalidated rather than patched: their order depends
// on status, so readers must refetch.
func (s *SubmissionServiceImpl) UpdateStatus(ctx context.Context, submissionID, status string) error {
	if !primary.ValidStatus(status) {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	if _, err := s.submissionRepo.GetByID(ctx, submissionID); err != nil {
		return err
	}

	if err := s.submissionRepo.UpdateStatus(ctx, submissionID, status); err != nil {
		s.notifier.Error(errorMessage(err))
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	s.cache.Invalidate(cache.DetailKey(EntitySubmissions, submissionID))
	for _, k := range s.fanout.ListKeys(EntitySubmissions) {
		s.cache.Invalidate(k)
	}

	s.hub.Publish(Event{
		Kind:       EventSubmissionStatusChanged,
		EntityType: EntitySubmissions,
		EntityID:   submissionID,
		Message:    status,
	})
	s.notifier.Success(fmt.Sprintf("submission status set to %s", status))
	return nil
}

// AddProcessedImages appends processed-image URLs to a submission. Binary
// files are uploaded to the blob vault first; the URL list is then read
// fresh from the store immediately before the write so a concurrent append
// from another session is not lost. Any failure aborts before the write,
// leaving the stored list unchanged.
func (s *SubmissionServiceImpl) AddProcessedImages(ctx context.Context, submissionID string, uploads []primary.ImageUpload, externalURL string) (*primary.Submission, error) {
	if len(uploads) == 0 && externalURL == "" {
		return nil, fmt.Errorf("%w: nothing to add", ErrValidation)
	}

	var newURLs []string
	for _, up := range uploads {
		blobPath := path.Join("submissions", submissionID, "processed", s.ids.New()+"-"+up.Name)
		if err := s.vault.Put(ctx, blobPath, up.Content, up.Size); err != nil {
			s.notifier.Error(errorMessage(err))
			return nil, fmt.Errorf("failed to upload image %s: %w", up.Name, err)
		}
		newURLs = append(newURLs, s.vault.PublicURL(blobPath))
	}
	if externalURL != "" {
		newURLs = append(newURLs, externalURL)
	}

	// Read-modify-write against the store, not the cache.
	fresh, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	merged := append(append([]string{}, fresh.ProcessedImageURLs...), newURLs...)

	updated, err := s.submissionRepo.UpdateProcessedImages(ctx, submissionID, merged)
	if err != nil {
		s.notifier.Error(errorMessage(err))
		return nil, fmt.Errorf("failed to append processed images: %w", err)
	}

	submission := submissionFromRecord(updated)
	s.cache.Set(cache.DetailKey(EntitySubmissions, submissionID), submission)
	for _, k := range s.fanout.ListKeys(EntitySubmissions) {
		s.cache.Invalidate(k)
	}
	s.notifier.Success(fmt.Sprintf("added %d image(s)", len(newURLs)))
	return submission, nil
}

// RemoveProcessedImage filters one URL out of the freshly read list and
// returns the submission plus the display index clamped into range.
func (s *SubmissionServiceImpl) RemoveProcessedImage(ctx context.Context, submissionID, url string, displayIndex int) (*primary.Submission, int, error) {
	fresh, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, 0, err
	}

	remaining := make([]string, 0, len(fresh.ProcessedImageURLs))
	found := false
	for _, u := range fresh.ProcessedImageURLs {
		if !found && u == url {
			found = true
			continue
		}
		remaining = append(remaining, u)
	}
	if !found {
		return nil, 0, fmt.Errorf("%w: image url not found on submission %s", ErrValidation, submissionID)
	}

	updated, err := s.submissionRepo.UpdateProcessedImages(ctx, submissionID, remaining)
	if err != nil {
		s.notifier.Error(errorMessage(err))
		return nil, 0, fmt.Errorf("failed to remove processed image: %w", err)
	}

	submission := submissionFromRecord(updated)
	s.cache.Set(cache.DetailKey(EntitySubmissions, submissionID), submission)
	for _, k := range s.fanout.ListKeys(EntitySubmissions) {
		s.cache.Invalidate(k)
	}

	index := clampIndex(displayIndex, len(submission.ProcessedImageURLs))
	s.notifier.Success("image removed")
	return submission, index, nil
}

// clampIndex clamps a display index into [0, length-1], or 0 for an empty
// list.
func clampIndex(index, length int) int {
	if length == 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	if index < 0 {
		return 0
	}
	return index
}

func submissionFromRecord(r *secondary.SubmissionRecord) *primary.Submission {
	return &primary.Submission{
		ID:                 r.ID,
		OwnerType:          r.OwnerType,
		OwnerID:            r.OwnerID,
		ItemName:           r.ItemName,
		ItemType:           r.ItemType,
		Ingredients:        r.Ingredients,
		Category:           r.Category,
		Status:             r.Status,
		OriginalImageURLs:  r.OriginalImageURLs,
		ProcessedImageURLs: r.ProcessedImageURLs,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// Ensure SubmissionServiceImpl implements the interface
var _ primary.SubmissionService = (*SubmissionServiceImpl)(nil)
