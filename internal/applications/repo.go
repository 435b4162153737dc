package applications

import "context"

// Repo persists applications. Create returns ErrDuplicate when the
// (user, program, university) triple already exists; lookups return
// ErrNotFound for unknown IDs.
type Repo interface {
	Create(ctx context.Context, app Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	Update(ctx context.Context, app Application) (Application, error)
	Delete(ctx context.Context, id string) error
}
