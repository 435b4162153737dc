package records

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"admitportal-backend/internal/queue"
	"admitportal-backend/internal/shared/storage/object/local"
	"admitportal-backend/internal/users"
)

type captureQueue struct {
	msgs []queue.Message
}

func (q *captureQueue) Send(ctx context.Context, msg queue.Message) error {
	_ = ctx
	q.msgs = append(q.msgs, msg)
	return nil
}

func setupService(t *testing.T) (*Service, *captureQueue) {
	t.Helper()
	userRepo := users.NewMemoryRepo()
	if err := userRepo.Upsert(context.Background(), users.User{
		ID:       "student-1",
		Email:    "student@example.com",
		FullName: "Student One",
		Role:     users.RoleStudent,
	}); err != nil {
		t.Fatalf("seed student: %v", err)
	}
	if err := userRepo.Upsert(context.Background(), users.User{
		ID:    "admin-1",
		Email: "admin@example.com",
		Role:  users.RoleAdmin,
	}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	q := &captureQueue{}
	svc := &Service{
		Repo:  NewMemoryRepo(),
		Users: userRepo,
		Store: local.New(t.TempDir()),
		Queue: q,
	}
	return svc, q
}

func TestUploadRejectsInvalidType(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.UploadOrReplace(context.Background(), "student-1", "DEGREE", "file.pdf", bytes.NewReader([]byte("x")))
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("err = %v, want ErrInvalidType", err)
	}
}

func TestUploadRejectsNonStudent(t *testing.T) {
	svc, _ := setupService(t)

	if _, err := svc.UploadOrReplace(context.Background(), "admin-1", TypeTenthMarksheet, "file.pdf", bytes.NewReader([]byte("x"))); !errors.Is(err, ErrNotStudent) {
		t.Fatalf("admin upload err = %v, want ErrNotStudent", err)
	}
	if _, err := svc.UploadOrReplace(context.Background(), "ghost", TypeTenthMarksheet, "file.pdf", bytes.NewReader([]byte("x"))); !errors.Is(err, ErrNotStudent) {
		t.Fatalf("unknown user upload err = %v, want ErrNotStudent", err)
	}
}

func TestUploadCreatesPendingRecordAndDispatches(t *testing.T) {
	svc, q := setupService(t)

	rec, err := svc.UploadOrReplace(context.Background(), "student-1", TypeTenthMarksheet, "marks.pdf", bytes.NewReader([]byte("not a real pdf")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if rec.AIScoreVerification.Status != StatusPending {
		t.Fatalf("status = %q, want PENDING", rec.AIScoreVerification.Status)
	}
	if rec.DocumentURL == "" || rec.StorageKey == "" {
		t.Fatalf("document url/storage key not set: %+v", rec)
	}
	if rec.Board != defaultBoard {
		t.Fatalf("board = %q, want %q", rec.Board, defaultBoard)
	}
	if len(q.msgs) != 1 || q.msgs[0].RecordID != rec.ID {
		t.Fatalf("queue dispatch = %+v, want one message for %s", q.msgs, rec.ID)
	}
}

func TestReuploadResetsVerification(t *testing.T) {
	svc, q := setupService(t)
	ctx := context.Background()

	rec, err := svc.UploadOrReplace(ctx, "student-1", TypeTwelfthMarksheet, "first.pdf", bytes.NewReader([]byte("v1")))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}

	verified, err := svc.ApplyVerificationResult(ctx, rec.ID, AIPayload{
		ConfidenceScore:   95,
		ExtractedSubjects: []Subject{{Subject: "Math", Marks: 88}},
		DetectedBoard:     "CBSE",
	})
	if err != nil {
		t.Fatalf("apply verification: %v", err)
	}
	if verified.AIScoreVerification.Status != StatusPass {
		t.Fatalf("status after verify = %q, want PASS", verified.AIScoreVerification.Status)
	}

	replaced, err := svc.UploadOrReplace(ctx, "student-1", TypeTwelfthMarksheet, "second.pdf", bytes.NewReader([]byte("v2")))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if replaced.ID != rec.ID {
		t.Fatalf("replace changed record identity: %s -> %s", rec.ID, replaced.ID)
	}
	if replaced.AIScoreVerification.Status != StatusPending {
		t.Fatalf("status after replace = %q, want PENDING", replaced.AIScoreVerification.Status)
	}
	if replaced.FileName != "second.pdf" {
		t.Fatalf("file name = %q, want second.pdf", replaced.FileName)
	}

	recs, err := svc.ListByUser(ctx, "student-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records for user = %d, want 1", len(recs))
	}
	if len(q.msgs) != 2 {
		t.Fatalf("queue dispatches = %d, want 2", len(q.msgs))
	}
}

func TestApplyVerificationBounds(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	rec, err := svc.UploadOrReplace(ctx, "student-1", TypeTenthMarksheet, "marks.pdf", bytes.NewReader([]byte("v1")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	for _, score := range []float64{-1, 100.5} {
		if _, err := svc.ApplyVerificationResult(ctx, rec.ID, AIPayload{ConfidenceScore: score}); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("score %v err = %v, want ErrInvalidPayload", score, err)
		}
	}

	if _, err := svc.ApplyVerificationResult(ctx, "missing", AIPayload{ConfidenceScore: 90}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing record err = %v, want ErrNotFound", err)
	}
}
