package universities

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) ListUniversities(ctx context.Context) ([]University, error) {
	const query = `
SELECT id, name, location, ranking, logo_color, description, created_at
FROM universities
ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetUniversity(ctx context.Context, universityID string) (University, error) {
	const query = `
SELECT id, name, location, ranking, logo_color, description, created_at
FROM universities
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, universityID)
	u, err := scanUniversity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return University{}, ErrNotFound
		}
		return University{}, err
	}
	programs, err := r.ListProgramsByUniversity(ctx, universityID)
	if err != nil {
		return University{}, err
	}
	u.Programs = programs
	return u, nil
}

func (r *PGRepo) ListPrograms(ctx context.Context) ([]Program, error) {
	return r.queryPrograms(ctx, `
SELECT id, university_id, name, degree, duration, fee, description, eligibility, created_at
FROM programs
ORDER BY name`)
}

func (r *PGRepo) ListProgramsByUniversity(ctx context.Context, universityID string) ([]Program, error) {
	return r.queryPrograms(ctx, `
SELECT id, university_id, name, degree, duration, fee, description, eligibility, created_at
FROM programs
WHERE university_id = $1
ORDER BY name`, universityID)
}

func (r *PGRepo) GetProgram(ctx context.Context, programID string) (Program, error) {
	const query = `
SELECT id, university_id, name, degree, duration, fee, description, eligibility, created_at
FROM programs
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, programID)
	p, err := scanProgram(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Program{}, ErrNotFound
		}
		return Program{}, err
	}
	return p, nil
}

func (r *PGRepo) queryPrograms(ctx context.Context, query string, args ...any) ([]Program, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUniversity(row rowScanner) (University, error) {
	var u University
	var ranking sql.NullInt64
	var logoColor sql.NullString
	var description sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Location, &ranking, &logoColor, &description, &u.CreatedAt); err != nil {
		return University{}, err
	}
	if ranking.Valid {
		v := int(ranking.Int64)
		u.Ranking = &v
	}
	if logoColor.Valid {
		u.LogoColor = logoColor.String
	}
	if description.Valid {
		u.Description = description.String
	}
	return u, nil
}

func scanProgram(row rowScanner) (Program, error) {
	var p Program
	var description sql.NullString
	var eligibility []byte
	if err := row.Scan(&p.ID, &p.UniversityID, &p.Name, &p.Degree, &p.Duration, &p.Fee, &description, &eligibility, &p.CreatedAt); err != nil {
		return Program{}, err
	}
	if description.Valid {
		p.Description = description.String
	}
	if len(eligibility) > 0 {
		_ = json.Unmarshal(eligibility, &p.Eligibility)
	}
	return p, nil
}

var _ Repo = (*PGRepo)(nil)
