package extract

import (
	"context"
	"errors"
	"testing"
)

func TestExtractTextFromBytesRejectsNonPDF(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("hello"), "text/plain", "notes.txt")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestNormalizeMimeType(t *testing.T) {
	cases := []struct {
		name     string
		mime     string
		fileName string
		data     []byte
		want     string
	}{
		{"declared pdf", "application/pdf", "a.bin", nil, "application/pdf"},
		{"pdf with charset", "application/pdf; charset=binary", "a.bin", nil, "application/pdf"},
		{"pdf extension", "application/octet-stream", "marksheet.PDF", nil, "application/pdf"},
		{"pdf magic bytes", "application/octet-stream", "upload", []byte("%PDF-1.7 ..."), "application/pdf"},
		{"plain text", "text/plain", "notes.txt", []byte("hello"), "text/plain"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeMimeType(tc.mime, tc.fileName, tc.data); got != tc.want {
				t.Fatalf("normalizeMimeType = %q, want %q", got, tc.want)
			}
		})
	}
}
