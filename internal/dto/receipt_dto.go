package dto

import (
	"smart-receipt-be/internal/entity"
)

type ProcessReceiptResponse struct {
	Fingerprint string                 `json:"fingerprint"`
	Amount      int64                  `json:"amount"`
	UsageDate   string                 `json:"usage_date"`
	Location    string                 `json:"usage_location"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Confidence  float64                `json:"confidence"`
	Path        string                 `json:"path"`
	Trace       []entity.ReasoningStep `json:"reasoning_trace"`
	CacheUsed   bool                   `json:"cache_used"`
	ProcessedIn string                 `json:"processing_time"`
}

type SubmitFeedbackRequest struct {
	Location    string `json:"usage_location" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	UsageDate   string `json:"usage_date" validate:"required"`
}

type SubmitFeedbackResponse struct {
	Accepted bool `json:"accepted"`
}

// PublishFeedbackMessage is the payload carried between the feedback endpoint
// and the learning consumer.
type PublishFeedbackMessage struct {
	Location    string `json:"usage_location"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	UsageDate   string `json:"usage_date"`
}
