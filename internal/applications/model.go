package applications

import "time"

// Application lifecycle statuses. There is no enforced transition graph:
// admins may set any known status, and invariants are enforced at the
// field-combination level (see validate).
const (
	StatusDraft       = "DRAFT"
	StatusSubmitted   = "SUBMITTED"
	StatusIssueRaised = "ISSUE_RAISED"
	StatusVerified    = "VERIFIED"
	StatusRejected    = "REJECTED"
	StatusWithdrawn   = "WITHDRAWN"
)

// Per-document admin verification statuses, distinct from the record's own
// AI verification status.
const (
	DocPending  = "PENDING"
	DocVerified = "VERIFIED"
	DocRejected = "REJECTED"
)

// DocumentStatuses maps each document type to its admin verification status.
type DocumentStatuses struct {
	TenthMarksheet   string `json:"TENTH_MARKSHEET"`
	TwelfthMarksheet string `json:"TWELFTH_MARKSHEET"`
}

// PersonalDetails is the applicant-supplied contact block.
type PersonalDetails struct {
	FullName     string `json:"fullName,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	Address      string `json:"address,omitempty"`
	GuardianName string `json:"guardianName,omitempty"`
}

// Application is one student's request to join one program at one
// university. (UserID, ProgramID, UniversityID) is unique.
type Application struct {
	ID               string
	UserID           string
	UniversityID     string
	ProgramID        string
	Status           string
	FeePaid          bool
	DocumentStatuses DocumentStatuses
	PersonalDetails  *PersonalDetails
	AdminComments    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidStatus reports whether s names a known lifecycle status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusIssueRaised, StatusVerified, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// ValidDocStatus reports whether s names a known document status.
func ValidDocStatus(s string) bool {
	switch s {
	case DocPending, DocVerified, DocRejected:
		return true
	}
	return false
}

func defaultDocumentStatuses() DocumentStatuses {
	return DocumentStatuses{
		TenthMarksheet:   DocPending,
		TwelfthMarksheet: DocPending,
	}
}
