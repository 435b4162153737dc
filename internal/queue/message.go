package queue

import (
	"context"
	"encoding/json"
)

// Client sends verification jobs to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Message asks the worker to run verification for one academic record.
type Message struct {
	RecordID   string `json:"recordId"`
	RequestID  string `json:"requestId"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
