package universities

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Repo defines read-side persistence for universities and programs.
type Repo interface {
	ListUniversities(ctx context.Context) ([]University, error)
	GetUniversity(ctx context.Context, universityID string) (University, error)
	ListPrograms(ctx context.Context) ([]Program, error)
	GetProgram(ctx context.Context, programID string) (Program, error)
	ListProgramsByUniversity(ctx context.Context, universityID string) ([]Program, error)
}
