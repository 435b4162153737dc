package records

import "time"

// Record types accepted for upload.
const (
	TypeTenthMarksheet   = "TENTH_MARKSHEET"
	TypeTwelfthMarksheet = "TWELFTH_MARKSHEET"
)

// AI verification statuses.
const (
	StatusPending = "PENDING"
	StatusPass    = "PASS"
	StatusFlagged = "FLAGGED"
	StatusFail    = "FAIL"
)

// Flags attached by the verification evaluator.
const (
	FlagLowConfidence    = "Low Confidence Score"
	FlagExtractionFailed = "Extraction Failed - Low Confidence"
)

const defaultBoard = "CBSE"

// Subject is a single subject/marks pair extracted from a marksheet.
// Marks are assumed to be out of 100.
type Subject struct {
	Subject string  `json:"subject"`
	Marks   float64 `json:"marks"`
}

// ExtractedData carries raw output from the external extraction service.
type ExtractedData struct {
	RawText       string `json:"rawText,omitempty"`
	DetectedBoard string `json:"detectedBoard,omitempty"`
}

// AIScoreVerification is the verification outcome attached to a record.
type AIScoreVerification struct {
	ConfidenceScore  *float64      `json:"confidenceScore,omitempty"`
	Status           string        `json:"status"`
	Flags            []string      `json:"flags"`
	ExtractedData    ExtractedData `json:"extractedData"`
	VerificationDate *time.Time    `json:"verificationDate,omitempty"`
}

// AcademicRecord is one uploaded credential document per (user, type).
type AcademicRecord struct {
	ID                  string
	UserID              string
	Type                string
	DocumentURL         string
	FileName            string
	StorageKey          string
	ExtractedTextKey    string
	Board               string
	UploadedAt          time.Time
	Percentage          float64
	Subjects            []Subject
	AIScoreVerification AIScoreVerification
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ValidType reports whether t names a known record type.
func ValidType(t string) bool {
	return t == TypeTenthMarksheet || t == TypeTwelfthMarksheet
}
