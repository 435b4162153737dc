package universities

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no
// database is configured and as a test fixture.
type MemoryRepo struct {
	mu           sync.RWMutex
	universities map[string]University
	programs     map[string]Program
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		universities: make(map[string]University),
		programs:     make(map[string]Program),
	}
}

// Put seeds a university and its programs.
func (r *MemoryRepo) Put(u University, programs ...Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.universities[u.ID] = u
	for _, p := range programs {
		p.UniversityID = u.ID
		r.programs[p.ID] = p
	}
}

func (r *MemoryRepo) ListUniversities(ctx context.Context) ([]University, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]University, 0, len(r.universities))
	for _, u := range r.universities {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) GetUniversity(ctx context.Context, universityID string) (University, error) {
	if err := ctx.Err(); err != nil {
		return University{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.universities[universityID]
	if !ok {
		return University{}, ErrNotFound
	}
	u.Programs = r.programsOf(universityID)
	return u, nil
}

func (r *MemoryRepo) ListPrograms(ctx context.Context) ([]Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Program, 0, len(r.programs))
	for _, p := range r.programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepo) GetProgram(ctx context.Context, programID string) (Program, error) {
	if err := ctx.Err(); err != nil {
		return Program{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.programs[programID]
	if !ok {
		return Program{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) ListProgramsByUniversity(ctx context.Context, universityID string) ([]Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.programsOf(universityID), nil
}

func (r *MemoryRepo) programsOf(universityID string) []Program {
	var out []Program
	for _, p := range r.programs {
		if p.UniversityID == universityID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var _ Repo = (*MemoryRepo)(nil)
