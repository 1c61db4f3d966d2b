package ocr

import (
	"context"
)

// Provider defines the contract for any OCR backend.
type Provider interface {
	// ExtractText reads an image and returns the recognized text, one line
	// per detected field.
	ExtractText(ctx context.Context, image []byte) (string, error)
}
