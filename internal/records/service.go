package records

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"admitportal-backend/internal/extract"
	"admitportal-backend/internal/queue"
	"admitportal-backend/internal/shared/storage/object"
	"admitportal-backend/internal/shared/telemetry"
	"admitportal-backend/internal/users"
)

// Service contains business logic for academic records.
type Service struct {
	Repo  Repo
	Users users.Repo
	Store object.ObjectStore
	Queue queue.Client // optional; nil means no async verification dispatch
}

// UploadOrReplace stores the file and creates or replaces the record for
// (userID, recordType). A replace resets the verification state to PENDING:
// verification must be redone after any new file.
func (s *Service) UploadOrReplace(ctx context.Context, userID, recordType, fileName string, r io.Reader) (AcademicRecord, error) {
	if !ValidType(recordType) {
		return AcademicRecord{}, ErrInvalidType
	}
	if fileName == "" {
		return AcademicRecord{}, ErrInvalidInput
	}

	owner, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return AcademicRecord{}, ErrNotStudent
		}
		return AcademicRecord{}, err
	}
	if owner.Role != users.RoleStudent {
		return AcademicRecord{}, ErrNotStudent
	}

	storageKey, _, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return AcademicRecord{}, err
	}

	rec := AcademicRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        recordType,
		DocumentURL: s.Store.URL(storageKey),
		FileName:    fileName,
		StorageKey:  storageKey,
		Board:       defaultBoard,
		UploadedAt:  time.Now().UTC(),
		AIScoreVerification: AIScoreVerification{
			Status: StatusPending,
			Flags:  []string{},
		},
	}

	rec, err = s.Repo.Upsert(ctx, rec)
	if err != nil {
		return AcademicRecord{}, err
	}

	// Text extraction and queue dispatch are best-effort: the record stays
	// PENDING until a verification payload arrives, however it gets here.
	if key, err := extract.ExtractText(ctx, s.Store, storageKey, mimeType, fileName); err == nil {
		if err := s.Repo.UpdateExtraction(ctx, rec.ID, key); err == nil {
			rec.ExtractedTextKey = key
		}
	} else if !errors.Is(err, extract.ErrUnsupported) {
		telemetry.Error("record.extract_failed", map[string]any{
			"record_id": rec.ID,
			"error":     err.Error(),
		})
	}

	s.dispatchVerification(ctx, rec.ID)

	return rec, nil
}

// ApplyVerificationResult applies an AI confidence payload to a record and
// persists the evaluated outcome in a single write.
func (s *Service) ApplyVerificationResult(ctx context.Context, recordID string, payload AIPayload) (AcademicRecord, error) {
	if payload.ConfidenceScore < 0 || payload.ConfidenceScore > 100 {
		return AcademicRecord{}, ErrInvalidPayload
	}

	rec, err := s.Repo.GetByID(ctx, recordID)
	if err != nil {
		return AcademicRecord{}, err
	}

	rec = Evaluate(rec, payload, time.Now().UTC())
	if err := s.Repo.SaveVerification(ctx, rec); err != nil {
		return AcademicRecord{}, err
	}

	telemetry.Info("record.verified", map[string]any{
		"record_id":  rec.ID,
		"user_id":    rec.UserID,
		"type":       rec.Type,
		"status":     rec.AIScoreVerification.Status,
		"confidence": payload.ConfidenceScore,
	})

	return rec, nil
}

// ListByUser returns all records owned by a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]AcademicRecord, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// GetByID returns a single record.
func (s *Service) GetByID(ctx context.Context, recordID string) (AcademicRecord, error) {
	if recordID == "" {
		return AcademicRecord{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, recordID)
}

func (s *Service) dispatchVerification(ctx context.Context, recordID string) {
	if s.Queue == nil {
		return
	}
	msg := queue.Message{
		RecordID:   recordID,
		EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
		Version:    1,
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		telemetry.Error("record.dispatch_failed", map[string]any{
			"record_id": recordID,
			"error":     err.Error(),
		})
	}
}
