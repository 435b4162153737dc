package records

import "errors"

var (
	ErrNotFound       = errors.New("academic record not found")
	ErrInvalidType    = errors.New("invalid document type")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotStudent     = errors.New("academic records can only be created for students")
	ErrInvalidPayload = errors.New("invalid verification payload")
)
