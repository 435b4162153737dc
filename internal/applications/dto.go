package applications

import (
	"time"

	"admitportal-backend/internal/records"
)

// ApplicationResponse is the outward-facing representation of an
// application, with its references resolved.
type ApplicationResponse struct {
	ID               string                   `json:"id"`
	UserID           string                   `json:"userId"`
	University       UniversityRef            `json:"university"`
	Program          ProgramRef               `json:"program"`
	Applicant        ApplicantRef             `json:"applicant"`
	Status           string                   `json:"status"`
	FeePaid          bool                     `json:"feePaid"`
	DocumentStatuses DocumentStatuses         `json:"documentStatuses"`
	PersonalDetails  *PersonalDetails         `json:"personalDetails,omitempty"`
	AdminComments    string                   `json:"adminComments,omitempty"`
	AcademicRecords  []records.RecordResponse `json:"academicRecords"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

func toResponse(d Detail) ApplicationResponse {
	recs := make([]records.RecordResponse, 0, len(d.AcademicRecords))
	for _, rec := range d.AcademicRecords {
		recs = append(recs, records.ToResponse(rec))
	}
	return ApplicationResponse{
		ID:               d.ID,
		UserID:           d.UserID,
		University:       d.University,
		Program:          d.Program,
		Applicant:        d.Applicant,
		Status:           d.Status,
		FeePaid:          d.FeePaid,
		DocumentStatuses: d.DocumentStatuses,
		PersonalDetails:  d.PersonalDetails,
		AdminComments:    d.AdminComments,
		AcademicRecords:  recs,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func toResponses(ds []Detail) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, toResponse(d))
	}
	return out
}
