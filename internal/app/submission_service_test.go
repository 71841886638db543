package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/studiodesk/internal/cache"
	"github.com/example/studiodesk/internal/ports/primary"
	"github.com/example/studiodesk/internal/ports/secondary"
)

type submissionFixture struct {
	svc      *SubmissionServiceImpl
	repo     *mockSubmissionRepo
	vault    *memVault
	store    *cache.Store
	notifier *secondary.RecordingNotifier
	hub      *Hub
}

func newSubmissionFixture(t *testing.T, records ...*secondary.SubmissionRecord) *submissionFixture {
	t.Helper()
	store := cache.NewStore()
	notifier := &secondary.RecordingNotifier{}
	vault := newMemVault()
	hub := NewHub()
	repo := newMockSubmissionRepo(records...)
	svc := NewSubmissionService(repo, vault, NewFanout(nil), store, hub, &seqIDs{}, notifier, secondary.NewNopLogger())
	return &submissionFixture{svc: svc, repo: repo, vault: vault, store: store, notifier: notifier, hub: hub}
}

func submissionRecord(id, status, createdAt string) *secondary.SubmissionRecord {
	return &secondary.SubmissionRecord{
		ID:        id,
		OwnerType: primary.OwnerTypeClient,
		OwnerID:   "CL-001",
		ItemName:  "Burrata Salad",
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestCreateSubmissionDefaultsToAwaitingProcessing(t *testing.T) {
	f := newSubmissionFixture(t)
	sub, err := f.svc.CreateSubmission(context.Background(), primary.CreateSubmissionRequest{
		OwnerType: primary.OwnerTypeClient,
		OwnerID:   "CL-001",
		ItemName:  "Burrata Salad",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Status != primary.StatusAwaitingProcessing {
		t.Errorf("expected default status, got %q", sub.Status)
	}
}

func TestCreateSubmissionRejectsUnknownOwnerType(t *testing.T) {
	f := newSubmissionFixture(t)
	_, err := f.svc.CreateSubmission(context.Background(), primary.CreateSubmissionRequest{
		OwnerType: "affiliate",
		OwnerID:   "AF-001",
		ItemName:  "Burrata Salad",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestListSubmissionsSortsActiveWorkFirst(t *testing.T) {
	f := newSubmissionFixture(t,
		submissionRecord("S-1", primary.StatusCompletedApproved, "2026-08-01T10:00:00Z"),
		submissionRecord("S-2", primary.StatusAwaitingProcessing, "2026-08-02T10:00:00Z"),
		submissionRecord("S-3", "legacy-status", "2026-08-03T10:00:00Z"),
		submissionRecord("S-4", primary.StatusAwaitingProcessing, "2026-08-04T10:00:00Z"),
		submissionRecord("S-5", primary.StatusInProcessing, "2026-08-05T10:00:00Z"),
	)

	subs, err := f.svc.ListSubmissions(context.Background(), primary.SubmissionFilters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]string, len(subs))
	for i, s := range subs {
		got[i] = s.ID
	}
	// Same rank orders newest first; unknown statuses sort last.
	want := []string{"S-4", "S-2", "S-5", "S-1", "S-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestUpdateStatusInvalidatesListsAndPublishes(t *testing.T) {
	f := newSubmissionFixture(t, submissionRecord("S-1", primary.StatusAwaitingProcessing, "2026-08-01T10:00:00Z"))
	f.store.Set(cache.ListKey(EntitySubmissions), "cached-list")
	ch, cancel := f.hub.Subscribe()
	defer cancel()

	if err := f.svc.UpdateStatus(context.Background(), "S-1", primary.StatusInProcessing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !f.store.IsStale(cache.ListKey(EntitySubmissions)) {
		t.Error("submission list must be stale after a status change")
	}
	ev := <-ch
	if ev.Kind != EventSubmissionStatusChanged || ev.EntityID != "S-1" {
		t.Errorf("unexpected event %+v", ev)
	}
	if len(f.notifier.Successes) != 1 || !strings.Contains(f.notifier.Successes[0], primary.StatusInProcessing) {
		t.Errorf("expected success notification naming the status, got %v", f.notifier.Successes)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newSubmissionFixture(t, submissionRecord("S-1", primary.StatusAwaitingProcessing, "2026-08-01T10:00:00Z"))
	err := f.svc.UpdateStatus(context.Background(), "S-1", "archived")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if f.repo.statusCalls != 0 {
		t.Error("invalid status must not reach the store")
	}
}

func TestAddProcessedImagesUploadsAndAppends(t *testing.T) {
	rec := submissionRecord("S-1", primary.StatusInProcessing, "2026-08-01T10:00:00Z")
	rec.ProcessedImageURLs = []string{"https://blobs.test/existing.jpg"}
	f := newSubmissionFixture(t, rec)

	sub, err := f.svc.AddProcessedImages(context.Background(), "S-1", []primary.ImageUpload{
		{Name: "plated.jpg", Content: strings.NewReader("jpegdata"), Size: 8},
	}, "https://cdn.example.com/external.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sub.ProcessedImageURLs) != 3 {
		t.Fatalf("expected 3 urls after append, got %v", sub.ProcessedImageURLs)
	}
	if sub.ProcessedImageURLs[0] != "https://blobs.test/existing.jpg" {
		t.Errorf("existing url must be preserved first, got %v", sub.ProcessedImageURLs)
	}
	if !strings.Contains(sub.ProcessedImageURLs[1], "submissions/S-1/processed/") {
		t.Errorf("uploaded url must point into the submission's vault path, got %q", sub.ProcessedImageURLs[1])
	}
	if sub.ProcessedImageURLs[2] != "https://cdn.example.com/external.jpg" {
		t.Errorf("external url must come last, got %v", sub.ProcessedImageURLs)
	}
	if len(f.vault.blobs) != 1 {
		t.Errorf("expected one blob stored, got %d", len(f.vault.blobs))
	}
}

func TestAddProcessedImagesMergesConcurrentAppend(t *testing.T) {
	f := newSubmissionFixture(t, submissionRecord("S-1", primary.StatusInProcessing, "2026-08-01T10:00:00Z"))

	// Populate the cache with a stale copy, then append behind its back.
	if _, err := f.svc.GetSubmission(context.Background(), "S-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.repo.records["S-1"].ProcessedImageURLs = []string{"https://blobs.test/raced.jpg"}

	sub, err := f.svc.AddProcessedImages(context.Background(), "S-1", nil, "https://cdn.example.com/new.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The fresh read wins over the cached copy, so the raced url survives.
	if len(sub.ProcessedImageURLs) != 2 || sub.ProcessedImageURLs[0] != "https://blobs.test/raced.jpg" {
		t.Errorf("concurrent append lost: %v", sub.ProcessedImageURLs)
	}
}

func TestAddProcessedImagesVaultFailureLeavesListUnchanged(t *testing.T) {
	rec := submissionRecord("S-1", primary.StatusInProcessing, "2026-08-01T10:00:00Z")
	rec.ProcessedImageURLs = []string{"https://blobs.test/existing.jpg"}
	f := newSubmissionFixture(t, rec)
	f.vault.failNextPut = errors.New("bucket unreachable")

	_, err := f.svc.AddProcessedImages(context.Background(), "S-1", []primary.ImageUpload{
		{Name: "plated.jpg", Content: strings.NewReader("jpegdata"), Size: 8},
	}, "")
	if err == nil {
		t.Fatal("expected upload failure to propagate")
	}
	if len(f.repo.imageWrites) != 0 {
		t.Error("a failed upload must abort before the store write")
	}
	if len(f.notifier.Errors) != 1 || !strings.Contains(f.notifier.Errors[0], "bucket unreachable") {
		t.Errorf("expected error notification, got %v", f.notifier.Errors)
	}
}

func TestAddProcessedImagesRequiresSomething(t *testing.T) {
	f := newSubmissionFixture(t, submissionRecord("S-1", primary.StatusInProcessing, "2026-08-01T10:00:00Z"))
	_, err := f.svc.AddProcessedImages(context.Background(), "S-1", nil, "")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRemoveProcessedImageClampsDisplayIndex(t *testing.T) {
	rec := submissionRecord("S-1", primary.StatusInProcessing, "2026-08-01T10:00:00Z")
	rec.ProcessedImageURLs = []string{"a.jpg", "b.jpg", "c.jpg"}
	f := newSubmissionFixture(t, rec)

	// Viewing the last image while removing it: index clamps to the new end.
	sub, index, err := f.svc.RemoveProcessedImage(context.Background(), "S-1", "c.jpg", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sub.ProcessedImageURLs) != 2 {
		t.Fatalf("expected 2 urls, got %v", sub.ProcessedImageURLs)
	}
	if index != 1 {
		t.Errorf("expected index clamped to 1, got %d", index)
	}

	// Removing down to an empty list pins the index at zero.
	if _, index, err = f.svc.RemoveProcessedImage(context.Background(), "S-1", "a.jpg", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub, index, err = f.svc.RemoveProcessedImage(context.Background(), "S-1", "b.jpg", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sub.ProcessedImageURLs) != 0 || index != 0 {
		t.Errorf("expected empty list and index 0, got %v / %d", sub.ProcessedImageURLs, index)
	}
}

func TestRemoveProcessedImageUnknownURL(t *testing.T) {
	rec := submissionRecord("S-1", primary.StatusInProcessing, "2026-08-01T10:00:00Z")
	rec.ProcessedImageURLs = []string{"a.jpg"}
	f := newSubmissionFixture(t, rec)

	_, _, err := f.svc.RemoveProcessedImage(context.Background(), "S-1", "missing.jpg", 0)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(f.repo.imageWrites) != 0 {
		t.Error("unknown url must not reach the store")
	}
}

func TestRemoveProcessedImageRemovesOnlyFirstMatch(t *testing.T) {
	rec := submissionRecord("S-1", primary.StatusInProcessing, "2026-08-01T10:00:00Z")
	rec.ProcessedImageURLs = []string{"dup.jpg", "dup.jpg"}
	f := newSubmissionFixture(t, rec)

	sub, _, err := f.svc.RemoveProcessedImage(context.Background(), "S-1", "dup.jpg", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sub.ProcessedImageURLs) != 1 {
		t.Errorf("expected one duplicate to survive, got %v", sub.ProcessedImageURLs)
	}
}
