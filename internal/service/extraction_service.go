// FILE: internal/service/extraction_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"smart-receipt-be/internal/constant"
	"smart-receipt-be/internal/entity"
	"smart-receipt-be/internal/pkg/parse"
	"smart-receipt-be/pkg/llm"
)

type IExtractionService interface {
	// Extract turns raw OCR text into structured fields. The inference call
	// must return amount, raw_datetime and usage_location; a payload missing
	// any of them is an invalid response.
	Extract(ctx context.Context, rawText string) (*entity.StructuredExtraction, error)
}

type extractionService struct {
	llmProvider llm.LLMProvider
	clock       func() time.Time
}

func NewExtractionService(llmProvider llm.LLMProvider) IExtractionService {
	return &extractionService{
		llmProvider: llmProvider,
		clock:       time.Now,
	}
}

type extractionPayload struct {
	Amount        *json.RawMessage `json:"amount"`
	RawDatetime   *string          `json:"raw_datetime"`
	UsageLocation *string          `json:"usage_location"`
}

func (s *extractionService) Extract(ctx context.Context, rawText string) (*entity.StructuredExtraction, error) {
	prompt := fmt.Sprintf(constant.ExtractionPrompt, rawText)

	raw, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return nil, NewStageError(constant.StageExtraction, KindProviderUnavailable, err)
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(stripToJSON(raw)), &payload); err != nil {
		return nil, NewStageError(constant.StageExtraction, KindInvalidResponse,
			fmt.Errorf("unparseable extraction payload: %w", err))
	}
	if payload.Amount == nil || payload.RawDatetime == nil || payload.UsageLocation == nil {
		return nil, NewStageError(constant.StageExtraction, KindInvalidResponse,
			fmt.Errorf("extraction payload missing required fields"))
	}

	// Amount may arrive as a number or a formatted string like "₩4,500".
	// An amount that cannot be parsed at all is fatal for the run.
	amount, err := parse.Amount(strings.Trim(string(*payload.Amount), `"`))
	if err != nil {
		return nil, NewStageError(constant.StageExtraction, KindValidation,
			fmt.Errorf("unparseable amount %q: %w", string(*payload.Amount), err))
	}

	return &entity.StructuredExtraction{
		Amount:   amount,
		UsageAt:  parse.DateTime(*payload.RawDatetime, s.clock()),
		Location: parse.Location(*payload.UsageLocation, constant.UnknownLocation),
	}, nil
}

// stripToJSON trims everything outside the outermost JSON object, since some
// models wrap their answer in markdown fences or prose.
func stripToJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}
