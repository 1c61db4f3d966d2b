package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ReceiptFingerprint is the identity key of one pipeline run: the hex SHA-256
// digest of the uploaded image bytes. Immutable once computed.
type ReceiptFingerprint string

func NewReceiptFingerprint(image []byte) ReceiptFingerprint {
	sum := sha256.Sum256(image)
	return ReceiptFingerprint(hex.EncodeToString(sum[:]))
}

func (f ReceiptFingerprint) String() string {
	return string(f)
}

// OCRResult is the raw text recovered from a receipt image, keyed by the
// image fingerprint. Read-only after the OCR stage produces it.
type OCRResult struct {
	Fingerprint ReceiptFingerprint `json:"fingerprint"`
	Text        string             `json:"text"`
}

// StructuredExtraction holds the fields the extraction stage derives from OCR
// text. Location is always normalized (branch suffix stripped) or set to the
// unknown sentinel.
type StructuredExtraction struct {
	Amount   int64     `json:"amount"`
	UsageAt  time.Time `json:"usage_at"`
	Location string    `json:"location"`
}
