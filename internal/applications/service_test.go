package applications

import (
	"context"
	"errors"
	"testing"

	"admitportal-backend/internal/records"
	"admitportal-backend/internal/universities"
	"admitportal-backend/internal/users"
)

const (
	dtuID     = "11111111-1111-1111-1111-111111111111"
	bisID     = "22222222-2222-2222-2222-222222222222"
	csID      = "aaaaaaa1-0000-0000-0000-000000000001"
	dataSciID = "aaaaaaa2-0000-0000-0000-000000000001"
)

type failingProvider struct{}

func (failingProvider) Charge(ctx context.Context, applicationID string, amount float64) error {
	_ = ctx
	_ = applicationID
	_ = amount
	return errors.New("gateway declined")
}

func setupService(t *testing.T) *Service {
	t.Helper()
	uniRepo := universities.NewMemoryRepo()
	universities.SeedDev(uniRepo)

	userRepo := users.NewMemoryRepo()
	for _, u := range []users.User{
		{ID: "student-1", Email: "one@example.com", FullName: "Student One", Role: users.RoleStudent},
		{ID: "student-2", Email: "two@example.com", FullName: "Student Two", Role: users.RoleStudent},
	} {
		if err := userRepo.Upsert(context.Background(), u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	return &Service{
		Repo:     NewMemoryRepo(),
		Catalog:  uniRepo,
		Users:    userRepo,
		Records:  records.NewMemoryRepo(),
		Payments: SimulatedProvider{},
	}
}

func createDraft(t *testing.T, svc *Service, userID string) Detail {
	t.Helper()
	detail, err := svc.Create(context.Background(), userID, CreateInput{
		UniversityID: dtuID,
		ProgramID:    csID,
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	return detail
}

func TestCreateDefaults(t *testing.T) {
	svc := setupService(t)
	detail := createDraft(t, svc, "student-1")

	if detail.Status != StatusDraft {
		t.Fatalf("status = %q, want DRAFT", detail.Status)
	}
	if detail.FeePaid {
		t.Fatalf("new application must be unpaid")
	}
	if detail.DocumentStatuses.TenthMarksheet != DocPending || detail.DocumentStatuses.TwelfthMarksheet != DocPending {
		t.Fatalf("document statuses = %+v, want PENDING", detail.DocumentStatuses)
	}
	if detail.University.Name != "Delhi Technical University" {
		t.Fatalf("university ref = %+v", detail.University)
	}
	if detail.Program.Fee != 250000 {
		t.Fatalf("program ref = %+v", detail.Program)
	}
	if detail.Applicant.Email != "one@example.com" {
		t.Fatalf("applicant ref = %+v", detail.Applicant)
	}
}

func TestCreateDuplicate(t *testing.T) {
	svc := setupService(t)
	createDraft(t, svc, "student-1")

	_, err := svc.Create(context.Background(), "student-1", CreateInput{UniversityID: dtuID, ProgramID: csID})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}

	// Same program from a different student is fine.
	if _, err := svc.Create(context.Background(), "student-2", CreateInput{UniversityID: dtuID, ProgramID: csID}); err != nil {
		t.Fatalf("second student create: %v", err)
	}
}

func TestCreateReferentialChecks(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "student-1", CreateInput{UniversityID: dtuID, ProgramID: "ghost"}); !errors.Is(err, ErrProgramNotFound) {
		t.Fatalf("unknown program err = %v, want ErrProgramNotFound", err)
	}
	if _, err := svc.Create(ctx, "student-1", CreateInput{UniversityID: dtuID, ProgramID: dataSciID}); !errors.Is(err, ErrProgramMismatch) {
		t.Fatalf("cross-university program err = %v, want ErrProgramMismatch", err)
	}
}

func TestCreateRejectsPaidDraft(t *testing.T) {
	app := Application{
		UserID:           "student-1",
		UniversityID:     dtuID,
		ProgramID:        csID,
		Status:           StatusDraft,
		FeePaid:          true,
		DocumentStatuses: defaultDocumentStatuses(),
	}
	if err := validate(app); !errors.Is(err, ErrDraftFeePaid) {
		t.Fatalf("err = %v, want ErrDraftFeePaid", err)
	}
}

func TestPayFee(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	detail := createDraft(t, svc, "student-1")

	paid, err := svc.PayFee(ctx, detail.ID, "student-1")
	if err != nil {
		t.Fatalf("pay fee: %v", err)
	}
	if !paid.FeePaid || paid.Status != StatusSubmitted {
		t.Fatalf("after pay: feePaid=%v status=%q, want true/SUBMITTED", paid.FeePaid, paid.Status)
	}

	if _, err := svc.PayFee(ctx, detail.ID, "student-1"); !errors.Is(err, ErrFeeAlreadyPaid) {
		t.Fatalf("second pay err = %v, want ErrFeeAlreadyPaid", err)
	}
	if _, err := svc.PayFee(ctx, detail.ID, "student-2"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("foreign pay err = %v, want ErrNotOwner", err)
	}
}

func TestPayFeeProviderFailure(t *testing.T) {
	svc := setupService(t)
	svc.Payments = failingProvider{}
	ctx := context.Background()
	detail := createDraft(t, svc, "student-1")

	if _, err := svc.PayFee(ctx, detail.ID, "student-1"); !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("err = %v, want ErrPaymentFailed", err)
	}

	// A declined charge must not leave the application half-paid.
	after, err := svc.Repo.GetByID(ctx, detail.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after.FeePaid || after.Status != StatusDraft {
		t.Fatalf("after declined charge: feePaid=%v status=%q", after.FeePaid, after.Status)
	}
}

func TestWithdraw(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	detail := createDraft(t, svc, "student-1")

	if err := svc.Withdraw(ctx, detail.ID, "student-2"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("foreign withdraw err = %v, want ErrNotOwner", err)
	}

	if err := svc.Withdraw(ctx, detail.ID, "student-1"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := svc.Repo.GetByID(ctx, detail.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("withdrawn application still present, err = %v", err)
	}

	// A second withdraw of the same id is a not-found, not a conflict.
	if err := svc.Withdraw(ctx, detail.ID, "student-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("repeat withdraw err = %v, want ErrNotFound", err)
	}
}

func TestWithdrawBlockedAfterPayment(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	detail := createDraft(t, svc, "student-1")

	if _, err := svc.PayFee(ctx, detail.ID, "student-1"); err != nil {
		t.Fatalf("pay fee: %v", err)
	}
	if err := svc.Withdraw(ctx, detail.ID, "student-1"); !errors.Is(err, ErrNotWithdrawable) {
		t.Fatalf("paid withdraw err = %v, want ErrNotWithdrawable", err)
	}
}

func TestWithdrawBlockedWhenRejected(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	detail := createDraft(t, svc, "student-1")

	rejected := StatusRejected
	if _, err := svc.UpdateStatus(ctx, detail.ID, StatusUpdate{Status: &rejected}); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := svc.Withdraw(ctx, detail.ID, "student-1"); !errors.Is(err, ErrNotWithdrawable) {
		t.Fatalf("rejected withdraw err = %v, want ErrNotWithdrawable", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	detail := createDraft(t, svc, "student-1")

	bogus := "APPROVED"
	if _, err := svc.UpdateStatus(ctx, detail.ID, StatusUpdate{Status: &bogus}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("bogus status err = %v, want ErrInvalidStatus", err)
	}

	issue := StatusIssueRaised
	comments := "twelfth marksheet is blurry"
	docs := DocumentStatuses{TenthMarksheet: DocVerified, TwelfthMarksheet: DocRejected}
	updated, err := svc.UpdateStatus(ctx, detail.ID, StatusUpdate{
		Status:           &issue,
		AdminComments:    &comments,
		DocumentStatuses: &docs,
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != StatusIssueRaised || updated.AdminComments != comments {
		t.Fatalf("updated = %+v", updated.Application)
	}
	if updated.DocumentStatuses != docs {
		t.Fatalf("document statuses = %+v, want %+v", updated.DocumentStatuses, docs)
	}

	// Admins can also move an application backwards to fix a mistake,
	// as long as the result is a legal combination.
	if _, err := svc.PayFee(ctx, detail.ID, "student-1"); err != nil {
		t.Fatalf("pay fee: %v", err)
	}
	draft := StatusDraft
	if _, err := svc.UpdateStatus(ctx, detail.ID, StatusUpdate{Status: &draft}); !errors.Is(err, ErrDraftFeePaid) {
		t.Fatalf("paid draft err = %v, want ErrDraftFeePaid", err)
	}
	verified := StatusVerified
	if _, err := svc.UpdateStatus(ctx, detail.ID, StatusUpdate{Status: &verified}); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestGetByIDAuthz(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	detail := createDraft(t, svc, "student-1")

	if _, err := svc.GetByID(ctx, detail.ID, "student-1", false); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := svc.GetByID(ctx, detail.ID, "student-2", false); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("foreign get err = %v, want ErrNotOwner", err)
	}
	if _, err := svc.GetByID(ctx, detail.ID, "admin-1", true); err != nil {
		t.Fatalf("admin get: %v", err)
	}
}

func TestListMineAndAll(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	createDraft(t, svc, "student-1")
	if _, err := svc.Create(ctx, "student-2", CreateInput{UniversityID: bisID, ProgramID: dataSciID}); err != nil {
		t.Fatalf("second create: %v", err)
	}

	mine, err := svc.ListMine(ctx, "student-1")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != "student-1" {
		t.Fatalf("mine = %+v", mine)
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d, want 2", len(all))
	}
}
