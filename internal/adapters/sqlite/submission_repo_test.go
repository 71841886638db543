package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/studiodesk/internal/adapters/sqlite"
	"github.com/example/studiodesk/internal/ports/secondary"
)

func TestSubmissionRepository_CreateAndGet_RoundTripsURLs(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSubmissionRepository(db)
	ctx := context.Background()

	sub := &secondary.SubmissionRecord{
		ID:                "SUB-001",
		OwnerType:         "client",
		OwnerID:           "CL-001",
		ItemName:          "Burrata Salad",
		OriginalImageURLs: []string{"https://blobs.test/a.jpg", "https://blobs.test/b.jpg"},
	}
	if err := repo.Create(ctx, sub); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, "SUB-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved.Status != "awaiting-processing" {
		t.Errorf("expected default status, got '%s'", retrieved.Status)
	}
	if len(retrieved.OriginalImageURLs) != 2 {
		t.Errorf("expected original urls round-tripped, got %v", retrieved.OriginalImageURLs)
	}
	if len(retrieved.ProcessedImageURLs) != 0 {
		t.Errorf("expected no processed urls, got %v", retrieved.ProcessedImageURLs)
	}
}

func TestSubmissionRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSubmissionRepository(db)
	ctx := context.Background()
	seedSubmission(t, db, "SUB-001")

	if err := repo.UpdateStatus(ctx, "SUB-001", "in-processing"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	retrieved, err := repo.GetByID(ctx, "SUB-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved.Status != "in-processing" {
		t.Errorf("expected status updated, got '%s'", retrieved.Status)
	}

	if err := repo.UpdateStatus(ctx, "SUB-404", "in-processing"); err == nil {
		t.Error("expected error for unknown submission")
	}
}

func TestSubmissionRepository_UpdateProcessedImages_Replaces(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSubmissionRepository(db)
	ctx := context.Background()
	seedSubmission(t, db, "SUB-001")

	updated, err := repo.UpdateProcessedImages(ctx, "SUB-001", []string{"x.jpg", "y.jpg"})
	if err != nil {
		t.Fatalf("UpdateProcessedImages failed: %v", err)
	}
	if len(updated.ProcessedImageURLs) != 2 {
		t.Errorf("expected 2 urls, got %v", updated.ProcessedImageURLs)
	}

	// The write replaces, it does not merge.
	updated, err = repo.UpdateProcessedImages(ctx, "SUB-001", []string{"z.jpg"})
	if err != nil {
		t.Fatalf("UpdateProcessedImages failed: %v", err)
	}
	if len(updated.ProcessedImageURLs) != 1 || updated.ProcessedImageURLs[0] != "z.jpg" {
		t.Errorf("expected replacement, got %v", updated.ProcessedImageURLs)
	}
}

func TestSubmissionRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSubmissionRepository(db)
	ctx := context.Background()

	for _, s := range []*secondary.SubmissionRecord{
		{ID: "SUB-001", OwnerType: "client", OwnerID: "CL-001", ItemName: "A", Status: "in-processing"},
		{ID: "SUB-002", OwnerType: "client", OwnerID: "CL-002", ItemName: "B", Status: "in-processing"},
		{ID: "SUB-003", OwnerType: "lead", OwnerID: "LD-001", ItemName: "C", Status: "completed-approved"},
	} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	byOwner, err := repo.List(ctx, secondary.SubmissionFilters{OwnerType: "client", OwnerID: "CL-001"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byOwner) != 1 || byOwner[0].ID != "SUB-001" {
		t.Errorf("expected only CL-001's submission, got %v", byOwner)
	}

	byStatus, err := repo.List(ctx, secondary.SubmissionFilters{Status: "completed-approved"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != "SUB-003" {
		t.Errorf("expected only the approved submission, got %v", byStatus)
	}
}

func TestSubmissionRepository_Delete_CascadesComments(t *testing.T) {
	db := setupTestDB(t)
	submissions := sqlite.NewSubmissionRepository(db)
	comments := sqlite.NewCommentRepository(db)
	ctx := context.Background()
	seedSubmission(t, db, "SUB-001")

	if err := comments.Create(ctx, &secondary.CommentRecord{
		ID: "C-001", SubmissionID: "SUB-001", Type: "internal", Visibility: "staff", Content: "note",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := submissions.Delete(ctx, "SUB-001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := comments.GetByID(ctx, "C-001"); err == nil {
		t.Error("expected comment removed by cascade")
	}
}
