package records

import "time"

// RecordResponse is the outward-facing representation of an academic record.
type RecordResponse struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"userId"`
	Type                string              `json:"type"`
	DocumentURL         string              `json:"documentUrl"`
	FileName            string              `json:"fileName"`
	Board               string              `json:"board"`
	UploadedAt          time.Time           `json:"uploadedAt"`
	Percentage          float64             `json:"percentage"`
	Subjects            []Subject           `json:"subjects"`
	AIScoreVerification AIScoreVerification `json:"aiScoreVerification"`
}

func ToResponse(rec AcademicRecord) RecordResponse {
	subjects := rec.Subjects
	if subjects == nil {
		subjects = []Subject{}
	}
	return RecordResponse{
		ID:                  rec.ID,
		UserID:              rec.UserID,
		Type:                rec.Type,
		DocumentURL:         rec.DocumentURL,
		FileName:            rec.FileName,
		Board:               rec.Board,
		UploadedAt:          rec.UploadedAt,
		Percentage:          rec.Percentage,
		Subjects:            subjects,
		AIScoreVerification: rec.AIScoreVerification,
	}
}
