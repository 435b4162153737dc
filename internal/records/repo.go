package records

import "context"

// Repo defines persistence operations for academic records.
//
// Upsert must be atomic with respect to the (user, type) uniqueness key:
// concurrent uploads for the same key must resolve to a single row, and a
// replace must never leave a stale verification status visible.
type Repo interface {
	Upsert(ctx context.Context, rec AcademicRecord) (AcademicRecord, error)
	GetByID(ctx context.Context, recordID string) (AcademicRecord, error)
	ListByUser(ctx context.Context, userID string) ([]AcademicRecord, error)
	SaveVerification(ctx context.Context, rec AcademicRecord) error
	UpdateExtraction(ctx context.Context, recordID, extractedKey string) error
}
