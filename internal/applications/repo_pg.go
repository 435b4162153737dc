package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const applicationColumns = `
id, user_id, university_id, program_id, status, fee_paid,
tenth_status, twelfth_status, personal_details, admin_comments,
created_at, updated_at`

const pgUniqueViolation = "23505"

func (r *PGRepo) Create(ctx context.Context, app Application) (Application, error) {
	const query = `
INSERT INTO applications (
    id, user_id, university_id, program_id, status, fee_paid,
    tenth_status, twelfth_status, personal_details, admin_comments
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + applicationColumns

	detailsJSON, err := marshalDetails(app.PersonalDetails)
	if err != nil {
		return Application{}, err
	}

	row := r.DB.QueryRowContext(ctx, query,
		uuid.NewString(),
		app.UserID,
		app.UniversityID,
		app.ProgramID,
		app.Status,
		app.FeePaid,
		app.DocumentStatuses.TenthMarksheet,
		app.DocumentStatuses.TwelfthMarksheet,
		detailsJSON,
		app.AdminComments,
	)
	created, err := scanApplication(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Application{}, ErrDuplicate
		}
		return Application{}, err
	}
	return created, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 LIMIT 1`
	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 ORDER BY created_at DESC, id`
	return r.list(ctx, query, userID)
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at DESC, id`
	return r.list(ctx, query)
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, app Application) (Application, error) {
	const query = `
UPDATE applications SET
    status = $1,
    fee_paid = $2,
    tenth_status = $3,
    twelfth_status = $4,
    personal_details = $5,
    admin_comments = $6,
    updated_at = now()
WHERE id = $7
RETURNING ` + applicationColumns

	detailsJSON, err := marshalDetails(app.PersonalDetails)
	if err != nil {
		return Application{}, err
	}

	row := r.DB.QueryRowContext(ctx, query,
		app.Status,
		app.FeePaid,
		app.DocumentStatuses.TenthMarksheet,
		app.DocumentStatuses.TwelfthMarksheet,
		detailsJSON,
		app.AdminComments,
		app.ID,
	)
	updated, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return updated, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var detailsJSON []byte
	var comments sql.NullString

	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.UniversityID,
		&app.ProgramID,
		&app.Status,
		&app.FeePaid,
		&app.DocumentStatuses.TenthMarksheet,
		&app.DocumentStatuses.TwelfthMarksheet,
		&detailsJSON,
		&comments,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return Application{}, err
	}
	if len(detailsJSON) > 0 {
		var pd PersonalDetails
		if err := json.Unmarshal(detailsJSON, &pd); err != nil {
			return Application{}, err
		}
		app.PersonalDetails = &pd
	}
	if comments.Valid {
		app.AdminComments = comments.String
	}
	return app, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func marshalDetails(pd *PersonalDetails) (any, error) {
	if pd == nil {
		return nil, nil
	}
	return json.Marshal(pd)
}

var _ Repo = (*PGRepo)(nil)
