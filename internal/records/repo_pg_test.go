package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "type", "document_url", "file_name", "storage_key", "extracted_text_key",
		"board", "uploaded_at", "percentage", "subjects",
		"ai_confidence_score", "ai_status", "ai_flags", "ai_raw_text", "ai_detected_board", "ai_verified_at",
		"created_at", "updated_at",
	})
}

func TestPGRepoUpsertResetsVerification(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO academic_records").
		WithArgs(
			"rec-1",
			"student-1",
			TypeTenthMarksheet,
			"file:///data/key",
			"marks.pdf",
			"key",
			defaultBoard,
			sqlmock.AnyArg(), // uploaded_at
		).
		WillReturnRows(recordRows().AddRow(
			"rec-1", "student-1", TypeTenthMarksheet, "file:///data/key", "marks.pdf", "key", nil,
			defaultBoard, now, 0.0, []byte(`[]`),
			nil, StatusPending, []byte(`[]`), "", "", nil,
			now, now,
		))

	repo := &PGRepo{DB: db}
	rec, err := repo.Upsert(context.Background(), AcademicRecord{
		ID:          "rec-1",
		UserID:      "student-1",
		Type:        TypeTenthMarksheet,
		DocumentURL: "file:///data/key",
		FileName:    "marks.pdf",
		StorageKey:  "key",
		UploadedAt:  now,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if rec.AIScoreVerification.Status != StatusPending {
		t.Fatalf("status = %q, want PENDING", rec.AIScoreVerification.Status)
	}
	if rec.AIScoreVerification.ConfidenceScore != nil {
		t.Fatalf("confidence score should be nil after upsert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSaveVerificationNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE academic_records SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	score := 90.0
	err = repo.SaveVerification(context.Background(), AcademicRecord{
		ID: "missing",
		AIScoreVerification: AIScoreVerification{
			ConfidenceScore: &score,
			Status:          StatusPass,
			Flags:           []string{},
		},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM academic_records WHERE id").
		WithArgs("missing").
		WillReturnRows(recordRows())

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
