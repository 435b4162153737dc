package records

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]AcademicRecord // id -> record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]AcademicRecord)}
}

// Upsert creates or replaces the record for (rec.UserID, rec.Type). A
// replace keeps the existing row identity and resets verification state.
func (r *MemoryRepo) Upsert(ctx context.Context, rec AcademicRecord) (AcademicRecord, error) {
	if err := ctx.Err(); err != nil {
		return AcademicRecord{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for id, existing := range r.data {
		if existing.UserID == rec.UserID && existing.Type == rec.Type {
			existing.DocumentURL = rec.DocumentURL
			existing.FileName = rec.FileName
			existing.StorageKey = rec.StorageKey
			existing.ExtractedTextKey = ""
			existing.UploadedAt = rec.UploadedAt
			existing.AIScoreVerification = AIScoreVerification{
				Status: StatusPending,
				Flags:  []string{},
			}
			existing.UpdatedAt = now
			r.data[id] = existing
			return existing, nil
		}
	}

	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.data[rec.ID] = rec
	return rec, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, recordID string) (AcademicRecord, error) {
	if err := ctx.Err(); err != nil {
		return AcademicRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[recordID]
	if !ok {
		return AcademicRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]AcademicRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []AcademicRecord
	for _, rec := range r.data {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (r *MemoryRepo) SaveVerification(ctx context.Context, rec AcademicRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[rec.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Board = rec.Board
	existing.Percentage = rec.Percentage
	existing.Subjects = rec.Subjects
	existing.AIScoreVerification = rec.AIScoreVerification
	existing.UpdatedAt = time.Now().UTC()
	r.data[rec.ID] = existing
	return nil
}

func (r *MemoryRepo) UpdateExtraction(ctx context.Context, recordID, extractedKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[recordID]
	if !ok {
		return ErrNotFound
	}
	existing.ExtractedTextKey = extractedKey
	r.data[recordID] = existing
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
