// FILE: internal/service/classification_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"smart-receipt-be/internal/constant"
	"smart-receipt-be/internal/entity"
	"smart-receipt-be/pkg/classify"
	"smart-receipt-be/pkg/llm"
)

// Minimum pattern strength for adopting history directly: the top group must
// at least be a prefix match seen this many times.
const (
	minPatternRelevance = entity.RelevancePrefix
	minPatternFrequency = 5
)

type IClassificationService interface {
	Classify(ctx context.Context, extraction *entity.StructuredExtraction, patterns []entity.HistoricalPattern) (*entity.ClassificationResult, error)
}

type classificationService struct {
	llmProvider llm.LLMProvider
}

func NewClassificationService(llmProvider llm.LLMProvider) IClassificationService {
	return &classificationService{
		llmProvider: llmProvider,
	}
}

func (s *classificationService) Classify(ctx context.Context, extraction *entity.StructuredExtraction, patterns []entity.HistoricalPattern) (*entity.ClassificationResult, error) {
	timeContext := classify.AnalyzeTime(extraction.UsageAt)

	var brand classify.BrandDefault
	brandKnown := false
	if extraction.Location != constant.UnknownLocation {
		brand, brandKnown = classify.LookupBrand(extraction.Location)
	}

	trace := []entity.ReasoningStep{
		{Label: "time_context", Detail: timeContextDetail(timeContext)},
		{Label: "pattern_match", Detail: patternDetail(patterns)},
		{Label: "brand_match", Detail: brandDetail(brand, brandKnown)},
	}

	var category, description, path string
	switch {
	case strongPattern(patterns):
		top := patterns[0]
		category = top.Category
		description = describe(top.Description, timeContext)
		path = entity.PathPattern
		trace = append(trace, entity.ReasoningStep{
			Label:  "decision",
			Detail: fmt.Sprintf("adopted top pattern %s (relevance %d, frequency %d)", top.Category, top.Relevance, top.Frequency),
		})

	case brandKnown:
		category = brand.Category
		description = describe(brand.Description, timeContext)
		path = entity.PathBrandDefault
		trace = append(trace, entity.ReasoningStep{
			Label:  "decision",
			Detail: fmt.Sprintf("no strong pattern, used %s sector default %s", brand.Sector, brand.Category),
		})

	default:
		inferred, err := s.infer(ctx, extraction, patterns, timeContext)
		if err != nil {
			return nil, err
		}
		category = inferred.Category
		description = inferred.Description
		path = entity.PathInference
		trace = append(trace, entity.ReasoningStep{
			Label:  "decision",
			Detail: "no strong pattern or brand, delegated to inference",
		})
	}

	confidence := classify.Score(classify.ScoreInput{
		Patterns:    patterns,
		TimeContext: timeContext,
		Amount:      extraction.Amount,
		BrandKnown:  brandKnown,
	})
	trace = append(trace, entity.ReasoningStep{
		Label:  "confidence",
		Detail: fmt.Sprintf("%.2f", confidence),
	})

	return &entity.ClassificationResult{
		Amount:      extraction.Amount,
		UsageAt:     extraction.UsageAt.Format("2006-01-02 15:04:05"),
		Location:    extraction.Location,
		Category:    category,
		Description: description,
		Confidence:  confidence,
		Path:        path,
		Trace:       trace,
	}, nil
}

func strongPattern(patterns []entity.HistoricalPattern) bool {
	if len(patterns) == 0 {
		return false
	}
	top := patterns[0]
	return top.Relevance >= minPatternRelevance && top.Frequency >= minPatternFrequency
}

// describe prefixes a usage description with the time-context label, so a
// coffee run at 19:30 reads "야근 커피" rather than just "커피".
func describe(base string, tc classify.TimeContext) string {
	label := tc.Label()
	if label == "" || strings.Contains(base, label) {
		return base
	}
	return label + " " + base
}

type inferencePayload struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (s *classificationService) infer(ctx context.Context, extraction *entity.StructuredExtraction, patterns []entity.HistoricalPattern, tc classify.TimeContext) (*inferencePayload, error) {
	prompt := fmt.Sprintf(constant.ClassificationPrompt,
		extraction.Amount,
		extraction.UsageAt.Format("2006-01-02 15:04:05"),
		tc.Label(),
		extraction.Location,
		patternSummary(patterns),
		strings.Join(constant.ExpenseCategories, ", "),
	)

	raw, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return nil, NewStageError(constant.StageClassify, KindProviderUnavailable, err)
	}

	var payload inferencePayload
	if err := json.Unmarshal([]byte(stripToJSON(raw)), &payload); err != nil {
		return nil, NewStageError(constant.StageClassify, KindInvalidResponse,
			fmt.Errorf("unparseable classification payload: %w", err))
	}
	if payload.Category == "" || payload.Description == "" {
		return nil, NewStageError(constant.StageClassify, KindInvalidResponse,
			fmt.Errorf("classification payload missing required fields"))
	}
	return &payload, nil
}

func patternSummary(patterns []entity.HistoricalPattern) string {
	if len(patterns) == 0 {
		return "(no history)"
	}
	lines := make([]string, len(patterns))
	for i, p := range patterns {
		lines[i] = fmt.Sprintf("- %s / %s: %d times, avg %.0f KRW", p.Category, p.Description, p.Frequency, p.AverageAmount)
	}
	return strings.Join(lines, "\n")
}

func timeContextDetail(tc classify.TimeContext) string {
	if tc.IsWeekend {
		return "weekend " + tc.Period
	}
	return tc.Period
}

func patternDetail(patterns []entity.HistoricalPattern) string {
	if len(patterns) == 0 {
		return "no historical patterns"
	}
	top := patterns[0]
	return fmt.Sprintf("top %s (relevance %d, frequency %d)", top.Category, top.Relevance, top.Frequency)
}

func brandDetail(brand classify.BrandDefault, known bool) string {
	if !known {
		return "no brand match"
	}
	return fmt.Sprintf("matched %s sector", brand.Sector)
}
