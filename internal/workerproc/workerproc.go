package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"time"

	"admitportal-backend/internal/queue"
	"admitportal-backend/internal/records"
	"admitportal-backend/internal/scorer"
	"admitportal-backend/internal/shared/metrics"
	"admitportal-backend/internal/shared/storage/object"
)

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

// ErrMissingRecordID indicates a message missing the record id.
type ErrMissingRecordID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingRecordID) Error() string { return "missing record id" }

// ErrProcess indicates processing failed after successful parsing.
type ErrProcess struct {
	RecordID  string
	RequestID string
	Err       error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process verification"
	}
	return "process verification: " + e.Err.Error()
}

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.RecordID) == "" {
		return msg, meta, ErrMissingRecordID{Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

// Processor runs one verification end to end: load the record, read its
// extracted text, ask the scoring service for a confidence payload, and
// apply the evaluated outcome.
type Processor struct {
	Records *records.Service
	Store   object.ObjectStore
	Scorer  scorer.Client
}

func (p *Processor) ProcessVerification(ctx context.Context, recordID string) error {
	started := time.Now()
	metrics.IncVerificationStarted()

	rec, err := p.Records.GetByID(ctx, recordID)
	if err != nil {
		metrics.IncVerificationFailed()
		return err
	}

	rawText, err := p.readExtractedText(ctx, rec)
	if err != nil {
		metrics.IncVerificationFailed()
		return err
	}

	payload, err := p.Scorer.Score(ctx, scorer.ScoreInput{
		RecordID:     rec.ID,
		DocumentType: rec.Type,
		RawText:      rawText,
	})
	if err != nil {
		metrics.IncVerificationFailed()
		return err
	}

	if _, err := p.Records.ApplyVerificationResult(ctx, recordID, payload); err != nil {
		metrics.IncVerificationFailed()
		return err
	}

	metrics.IncVerificationCompleted()
	metrics.ObserveVerificationDurationMs(float64(time.Since(started).Milliseconds()))
	return nil
}

// readExtractedText is tolerant of records whose text extraction was skipped
// or failed: the scorer receives an empty transcript and decides for itself.
func (p *Processor) readExtractedText(ctx context.Context, rec records.AcademicRecord) (string, error) {
	if rec.ExtractedTextKey == "" || p.Store == nil {
		return "", nil
	}
	rc, err := p.Store.Open(ctx, rec.ExtractedTextKey)
	if err != nil {
		return "", nil
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// HandleMessage parses, validates, and processes a message payload.
func HandleMessage(ctx context.Context, p *Processor, body string) error {
	if p == nil || p.Records == nil || p.Scorer == nil {
		return errors.New("verification processor not configured")
	}

	msg, meta, err := ParseMessage(body)
	if err != nil {
		return err
	}
	if strings.TrimSpace(msg.RecordID) == "" {
		return ErrMissingRecordID{Meta: meta, RequestID: msg.RequestID}
	}

	if err := p.ProcessVerification(ctx, msg.RecordID); err != nil {
		return ErrProcess{RecordID: msg.RecordID, RequestID: msg.RequestID, Err: err}
	}
	return nil
}
