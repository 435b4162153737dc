package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func applicationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "university_id", "program_id", "status", "fee_paid",
		"tenth_status", "twelfth_status", "personal_details", "admin_comments",
		"created_at", "updated_at",
	})
}

func TestPGRepoCreateReturnsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO applications").
		WithArgs(
			sqlmock.AnyArg(), // generated id
			"student-1",
			"uni-1",
			"prog-1",
			StatusDraft,
			false,
			DocPending,
			DocPending,
			sqlmock.AnyArg(), // personal_details json
			"",
		).
		WillReturnRows(applicationRows().AddRow(
			"app-1", "student-1", "uni-1", "prog-1", StatusDraft, false,
			DocPending, DocPending, []byte(`{"phone":"555"}`), "",
			now, now,
		))

	repo := &PGRepo{DB: db}
	created, err := repo.Create(context.Background(), Application{
		UserID:           "student-1",
		UniversityID:     "uni-1",
		ProgramID:        "prog-1",
		Status:           StatusDraft,
		DocumentStatuses: defaultDocumentStatuses(),
		PersonalDetails:  &PersonalDetails{Phone: "555"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "app-1" {
		t.Fatalf("id = %q", created.ID)
	}
	if created.PersonalDetails == nil || created.PersonalDetails.Phone != "555" {
		t.Fatalf("personal details = %+v", created.PersonalDetails)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("INSERT INTO applications").
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	repo := &PGRepo{DB: db}
	_, err = repo.Create(context.Background(), Application{
		UserID:           "student-1",
		UniversityID:     "uni-1",
		ProgramID:        "prog-1",
		Status:           StatusDraft,
		DocumentStatuses: defaultDocumentStatuses(),
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM applications WHERE id").
		WithArgs("missing").
		WillReturnRows(applicationRows())

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("DELETE FROM applications WHERE id").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
