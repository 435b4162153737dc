package records

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

const recordColumns = `
id, user_id, type, document_url, file_name, storage_key, extracted_text_key,
board, uploaded_at, percentage, subjects,
ai_confidence_score, ai_status, ai_flags, ai_raw_text, ai_detected_board, ai_verified_at,
created_at, updated_at`

// Upsert inserts a record or, when (user_id, type) already exists, replaces
// the file fields and resets the verification state in the same statement.
// The uniqueness constraint makes concurrent uploads converge on one row.
func (r *PGRepo) Upsert(ctx context.Context, rec AcademicRecord) (AcademicRecord, error) {
	const query = `
INSERT INTO academic_records (
    id, user_id, type, document_url, file_name, storage_key,
    board, uploaded_at, subjects, ai_status, ai_flags
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '[]', 'PENDING', '[]')
ON CONFLICT (user_id, type) DO UPDATE SET
    document_url = EXCLUDED.document_url,
    file_name = EXCLUDED.file_name,
    storage_key = EXCLUDED.storage_key,
    extracted_text_key = NULL,
    uploaded_at = EXCLUDED.uploaded_at,
    ai_confidence_score = NULL,
    ai_status = 'PENDING',
    ai_flags = '[]',
    ai_raw_text = '',
    ai_detected_board = '',
    ai_verified_at = NULL,
    updated_at = now()
RETURNING ` + recordColumns

	board := rec.Board
	if board == "" {
		board = defaultBoard
	}

	row := r.DB.QueryRowContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.Type,
		rec.DocumentURL,
		rec.FileName,
		rec.StorageKey,
		board,
		rec.UploadedAt,
	)
	return scanRecord(row)
}

func (r *PGRepo) GetByID(ctx context.Context, recordID string) (AcademicRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM academic_records WHERE id = $1 LIMIT 1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AcademicRecord{}, ErrNotFound
		}
		return AcademicRecord{}, err
	}
	return rec, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]AcademicRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM academic_records WHERE user_id = $1 ORDER BY type`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AcademicRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveVerification persists an evaluated verification outcome in one write.
func (r *PGRepo) SaveVerification(ctx context.Context, rec AcademicRecord) error {
	const query = `
UPDATE academic_records SET
    board = $1,
    percentage = $2,
    subjects = $3,
    ai_confidence_score = $4,
    ai_status = $5,
    ai_flags = $6,
    ai_raw_text = $7,
    ai_detected_board = $8,
    ai_verified_at = $9,
    updated_at = now()
WHERE id = $10`

	subjectsJSON, err := json.Marshal(subjectsOrEmpty(rec.Subjects))
	if err != nil {
		return err
	}
	flagsJSON, err := json.Marshal(flagsOrEmpty(rec.AIScoreVerification.Flags))
	if err != nil {
		return err
	}

	var score any
	if rec.AIScoreVerification.ConfidenceScore != nil {
		score = *rec.AIScoreVerification.ConfidenceScore
	}
	var verifiedAt any
	if rec.AIScoreVerification.VerificationDate != nil {
		verifiedAt = *rec.AIScoreVerification.VerificationDate
	}

	res, err := r.DB.ExecContext(ctx, query,
		rec.Board,
		rec.Percentage,
		subjectsJSON,
		score,
		rec.AIScoreVerification.Status,
		flagsJSON,
		rec.AIScoreVerification.ExtractedData.RawText,
		rec.AIScoreVerification.ExtractedData.DetectedBoard,
		verifiedAt,
		rec.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) UpdateExtraction(ctx context.Context, recordID, extractedKey string) error {
	const query = `
UPDATE academic_records
SET extracted_text_key = $1, updated_at = now()
WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, extractedKey, recordID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (AcademicRecord, error) {
	var rec AcademicRecord
	var extractedKey sql.NullString
	var subjectsJSON []byte
	var score sql.NullFloat64
	var flagsJSON []byte
	var rawText sql.NullString
	var detectedBoard sql.NullString
	var verifiedAt sql.NullTime

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Type,
		&rec.DocumentURL,
		&rec.FileName,
		&rec.StorageKey,
		&extractedKey,
		&rec.Board,
		&rec.UploadedAt,
		&rec.Percentage,
		&subjectsJSON,
		&score,
		&rec.AIScoreVerification.Status,
		&flagsJSON,
		&rawText,
		&detectedBoard,
		&verifiedAt,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return AcademicRecord{}, err
	}
	if extractedKey.Valid {
		rec.ExtractedTextKey = extractedKey.String
	}
	if len(subjectsJSON) > 0 {
		if err := json.Unmarshal(subjectsJSON, &rec.Subjects); err != nil {
			return AcademicRecord{}, err
		}
	}
	if score.Valid {
		v := score.Float64
		rec.AIScoreVerification.ConfidenceScore = &v
	}
	if len(flagsJSON) > 0 {
		if err := json.Unmarshal(flagsJSON, &rec.AIScoreVerification.Flags); err != nil {
			return AcademicRecord{}, err
		}
	}
	if rec.AIScoreVerification.Flags == nil {
		rec.AIScoreVerification.Flags = []string{}
	}
	if rawText.Valid {
		rec.AIScoreVerification.ExtractedData.RawText = rawText.String
	}
	if detectedBoard.Valid {
		rec.AIScoreVerification.ExtractedData.DetectedBoard = detectedBoard.String
	}
	if verifiedAt.Valid {
		rec.AIScoreVerification.VerificationDate = &verifiedAt.Time
	}
	return rec, nil
}

func subjectsOrEmpty(subjects []Subject) []Subject {
	if subjects == nil {
		return []Subject{}
	}
	return subjects
}

func flagsOrEmpty(flags []string) []string {
	if flags == nil {
		return []string{}
	}
	return flags
}

var _ Repo = (*PGRepo)(nil)
