package applications

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]Application
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: map[string]Application{}}
}

func (r *MemoryRepo) Create(ctx context.Context, app Application) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.UserID == app.UserID && row.ProgramID == app.ProgramID && row.UniversityID == app.UniversityID {
			return Application{}, ErrDuplicate
		}
	}
	now := time.Now().UTC()
	app.ID = uuid.NewString()
	app.CreatedAt = now
	app.UpdatedAt = now
	r.rows[app.ID] = app
	return app, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.rows[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Application
	for _, app := range r.rows {
		if app.UserID == userID {
			out = append(out, app)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Application, 0, len(r.rows))
	for _, app := range r.rows {
		out = append(out, app)
	}
	sortByCreated(out)
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, app Application) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[app.ID]; !ok {
		return Application{}, ErrNotFound
	}
	app.UpdatedAt = time.Now().UTC()
	r.rows[app.ID] = app
	return app, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func sortByCreated(apps []Application) {
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].ID < apps[j].ID
		}
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
}
