package records

import (
	"math"
	"time"
)

// AIPayload is the confidence payload produced by the external extraction
// service. Scores are on a 0-100 scale.
type AIPayload struct {
	ConfidenceScore   float64   `json:"confidenceScore"`
	ExtractedSubjects []Subject `json:"extractedSubjects"`
	RawText           string    `json:"rawText"`
	DetectedBoard     string    `json:"detectedBoard"`
}

// Confidence thresholds for the verification outcome.
const (
	passThreshold = 80
	flagThreshold = 60
)

// Evaluate maps an AI confidence payload onto a record's verification state.
// It is a pure transition: the input record is not mutated.
//
//	score >= 80          -> PASS, subjects/board adopted, percentage recomputed
//	60 <= score < 80     -> FLAGGED + low-confidence flag, subjects/board adopted
//	score < 60           -> FAIL + extraction-failed flag, subjects/board cleared
func Evaluate(rec AcademicRecord, payload AIPayload, now time.Time) AcademicRecord {
	score := payload.ConfidenceScore
	rec.AIScoreVerification = AIScoreVerification{
		ConfidenceScore:  &score,
		Flags:            []string{},
		VerificationDate: &now,
		ExtractedData: ExtractedData{
			RawText:       payload.RawText,
			DetectedBoard: payload.DetectedBoard,
		},
	}

	switch {
	case score >= passThreshold:
		rec.AIScoreVerification.Status = StatusPass
		rec.Subjects = payload.ExtractedSubjects
		rec.Board = payload.DetectedBoard
		rec.Percentage = MeanPercentage(rec.Subjects)
	case score >= flagThreshold:
		rec.AIScoreVerification.Status = StatusFlagged
		rec.AIScoreVerification.Flags = append(rec.AIScoreVerification.Flags, FlagLowConfidence)
		rec.Subjects = payload.ExtractedSubjects
		rec.Board = payload.DetectedBoard
		rec.Percentage = MeanPercentage(rec.Subjects)
	default:
		rec.AIScoreVerification.Status = StatusFail
		rec.AIScoreVerification.Flags = append(rec.AIScoreVerification.Flags, FlagExtractionFailed)
		rec.Subjects = nil
		rec.Board = ""
		rec.Percentage = 0
	}

	return rec
}

// MeanPercentage returns the mean of subject marks rounded to two decimal
// places, assuming each subject is scored out of 100. Empty input yields 0.
func MeanPercentage(subjects []Subject) float64 {
	if len(subjects) == 0 {
		return 0
	}
	total := 0.0
	for _, sub := range subjects {
		total += sub.Marks
	}
	return math.Round(total/float64(len(subjects))*100) / 100
}
