package applications

import (
	"context"
	"errors"
	"fmt"

	"admitportal-backend/internal/records"
	"admitportal-backend/internal/shared/metrics"
	"admitportal-backend/internal/shared/telemetry"
	"admitportal-backend/internal/universities"
	"admitportal-backend/internal/users"
)

// Service is the lifecycle controller for applications. Repos for the
// referenced entities are injected so detail views can be assembled without
// the HTTP layer knowing about joins.
type Service struct {
	Repo     Repo
	Catalog  universities.Repo
	Users    users.Repo
	Records  records.Repo
	Payments PaymentProvider
}

// Detail is an application joined with its referenced entities, the shape
// returned by every read endpoint.
type Detail struct {
	Application
	University      UniversityRef            `json:"university"`
	Program         ProgramRef               `json:"program"`
	Applicant       ApplicantRef             `json:"applicant"`
	AcademicRecords []records.AcademicRecord `json:"academicRecords"`
}

type UniversityRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type ProgramRef struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Degree   string  `json:"degree"`
	Duration string  `json:"duration"`
	Fee      float64 `json:"fee"`
}

type ApplicantRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// CreateInput carries the applicant-supplied fields for a new application.
type CreateInput struct {
	UniversityID    string
	ProgramID       string
	PersonalDetails *PersonalDetails
}

// StatusUpdate carries the admin-editable fields; nil pointers leave the
// current value untouched.
type StatusUpdate struct {
	Status           *string
	AdminComments    *string
	DocumentStatuses *DocumentStatuses
}

// Create opens a new application after checking the program actually exists
// and belongs to the named university. New applications always start as an
// unpaid DRAFT; the status is never taken from the client.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Detail, error) {
	if in.UniversityID == "" || in.ProgramID == "" {
		return Detail{}, ErrProgramNotFound
	}
	program, err := s.Catalog.GetProgram(ctx, in.ProgramID)
	if err != nil {
		if errors.Is(err, universities.ErrNotFound) {
			return Detail{}, ErrProgramNotFound
		}
		return Detail{}, fmt.Errorf("load program: %w", err)
	}
	if program.UniversityID != in.UniversityID {
		return Detail{}, ErrProgramMismatch
	}

	app := Application{
		UserID:           userID,
		UniversityID:     in.UniversityID,
		ProgramID:        in.ProgramID,
		Status:           StatusDraft,
		FeePaid:          false,
		DocumentStatuses: defaultDocumentStatuses(),
		PersonalDetails:  in.PersonalDetails,
	}
	if err := validate(app); err != nil {
		return Detail{}, err
	}

	created, err := s.Repo.Create(ctx, app)
	if err != nil {
		return Detail{}, err
	}
	metrics.IncApplicationsCreated()
	telemetry.Info("application.created", map[string]any{
		"application_id": created.ID,
		"program_id":     created.ProgramID,
	})
	return s.decorate(ctx, created)
}

// UpdateStatus applies an admin edit. Any known status value is accepted;
// there is deliberately no transition graph, so support staff can move an
// application backwards to fix mistakes.
func (s *Service) UpdateStatus(ctx context.Context, applicationID string, upd StatusUpdate) (Detail, error) {
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return Detail{}, err
	}
	previous := app.Status

	if upd.Status != nil {
		app.Status = *upd.Status
	}
	if upd.AdminComments != nil {
		app.AdminComments = *upd.AdminComments
	}
	if upd.DocumentStatuses != nil {
		app.DocumentStatuses = *upd.DocumentStatuses
	}
	if err := validate(app); err != nil {
		return Detail{}, err
	}

	updated, err := s.Repo.Update(ctx, app)
	if err != nil {
		return Detail{}, err
	}
	telemetry.Info("application.status_updated", map[string]any{
		"application_id": updated.ID,
		"from":           previous,
		"to":             updated.Status,
	})
	return s.decorate(ctx, updated)
}

// PayFee charges the program fee and, on success, marks the application paid
// and submitted in a single persist. Paying a second time is a conflict.
func (s *Service) PayFee(ctx context.Context, applicationID, callerID string) (Detail, error) {
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return Detail{}, err
	}
	if app.UserID != callerID {
		return Detail{}, ErrNotOwner
	}
	if app.FeePaid {
		return Detail{}, ErrFeeAlreadyPaid
	}

	program, err := s.Catalog.GetProgram(ctx, app.ProgramID)
	if err != nil {
		return Detail{}, fmt.Errorf("load program: %w", err)
	}
	if err := s.Payments.Charge(ctx, app.ID, program.Fee); err != nil {
		telemetry.Error("application.payment_failed", map[string]any{
			"application_id": app.ID,
			"error":          err.Error(),
		})
		return Detail{}, ErrPaymentFailed
	}

	app.FeePaid = true
	app.Status = StatusSubmitted
	if err := validate(app); err != nil {
		return Detail{}, err
	}
	updated, err := s.Repo.Update(ctx, app)
	if err != nil {
		return Detail{}, err
	}
	metrics.IncFeesPaid()
	telemetry.Info("application.fee_paid", map[string]any{
		"application_id": updated.ID,
		"amount":         program.Fee,
	})
	return s.decorate(ctx, updated)
}

// Withdraw hard-deletes the caller's application. Paid and rejected
// applications cannot be withdrawn.
func (s *Service) Withdraw(ctx context.Context, applicationID, callerID string) error {
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.UserID != callerID {
		return ErrNotOwner
	}
	if app.FeePaid || app.Status == StatusRejected {
		return ErrNotWithdrawable
	}
	if err := s.Repo.Delete(ctx, applicationID); err != nil {
		return err
	}
	metrics.IncApplicationsWithdrawn()
	telemetry.Info("application.withdrawn", map[string]any{
		"application_id": applicationID,
	})
	return nil
}

// GetByID returns a single application; non-admin callers may only read
// their own.
func (s *Service) GetByID(ctx context.Context, applicationID, callerID string, isAdmin bool) (Detail, error) {
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return Detail{}, err
	}
	if !isAdmin && app.UserID != callerID {
		return Detail{}, ErrNotOwner
	}
	return s.decorate(ctx, app)
}

// ListMine returns the caller's applications, newest first.
func (s *Service) ListMine(ctx context.Context, userID string) ([]Detail, error) {
	apps, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(ctx, apps)
}

// ListAll returns every application for the admin review queue.
func (s *Service) ListAll(ctx context.Context) ([]Detail, error) {
	apps, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(ctx, apps)
}

// decorate resolves the application's references. Missing reference rows are
// tolerated rather than failing the read: an admin deleting a program should
// not make existing applications unreadable.
func (s *Service) decorate(ctx context.Context, app Application) (Detail, error) {
	d := Detail{Application: app, AcademicRecords: []records.AcademicRecord{}}

	if uni, err := s.Catalog.GetUniversity(ctx, app.UniversityID); err == nil {
		d.University = UniversityRef{ID: uni.ID, Name: uni.Name, Location: uni.Location}
	}
	if program, err := s.Catalog.GetProgram(ctx, app.ProgramID); err == nil {
		d.Program = ProgramRef{
			ID:       program.ID,
			Name:     program.Name,
			Degree:   program.Degree,
			Duration: program.Duration,
			Fee:      program.Fee,
		}
	}
	if owner, err := s.Users.GetByID(ctx, app.UserID); err == nil {
		d.Applicant = ApplicantRef{ID: owner.ID, FullName: owner.FullName, Email: owner.Email}
	}
	if recs, err := s.Records.ListByUser(ctx, app.UserID); err == nil && recs != nil {
		d.AcademicRecords = recs
	}
	return d, nil
}

func (s *Service) decorateAll(ctx context.Context, apps []Application) ([]Detail, error) {
	out := make([]Detail, 0, len(apps))
	for _, app := range apps {
		d, err := s.decorate(ctx, app)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
