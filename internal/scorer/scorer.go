package scorer

import (
	"context"
	"errors"

	"admitportal-backend/internal/records"
)

// Client abstracts the external document-extraction/scoring service. The
// service reads marksheet text and returns a confidence payload; this
// process never interprets documents itself.
type Client interface {
	Score(ctx context.Context, input ScoreInput) (records.AIPayload, error)
}

// ScoreInput captures what the scoring service needs for one record.
type ScoreInput struct {
	RecordID     string `json:"recordId"`
	DocumentType string `json:"documentType"`
	RawText      string `json:"rawText"`
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("scorer not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

func (PlaceholderClient) Score(ctx context.Context, input ScoreInput) (records.AIPayload, error) {
	_ = ctx
	_ = input
	return records.AIPayload{}, ErrNotConfigured
}
