package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-receipt-be/internal/constant"
	"smart-receipt-be/internal/entity"
	"smart-receipt-be/internal/pkg/logger"
	"smart-receipt-be/pkg/cache"
	"smart-receipt-be/pkg/llm"
)

// --- Fakes ---

type fakeOCRProvider struct {
	mu    sync.Mutex
	calls int
	delay time.Duration
	text  string
	err   error
}

func (f *fakeOCRProvider) ExtractText(ctx context.Context, image []byte) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeOCRProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeLLMProvider struct {
	mu        sync.Mutex
	calls     int
	responses []string
	err       error
}

func (f *fakeLLMProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", fmt.Errorf("fake llm: no scripted response")
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func (f *fakeLLMProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.Generate(ctx, "", opts...)
}

func (f *fakeLLMProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeExpenseRepository struct {
	mu       sync.Mutex
	queries  int
	patterns []entity.HistoricalPattern
	created  []entity.ExpenseRecord
}

func (f *fakeExpenseRepository) Create(ctx context.Context, record *entity.ExpenseRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *record)
	return nil
}

func (f *fakeExpenseRepository) FindPatterns(ctx context.Context, location string, limit int) ([]entity.HistoricalPattern, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries++
	return f.patterns, nil
}

func (f *fakeExpenseRepository) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries
}

// --- Harness ---

type pipelineHarness struct {
	pipeline IPipelineService
	store    *cache.MemoryStore
	ocr      *fakeOCRProvider
	llm      *fakeLLMProvider
	repo     *fakeExpenseRepository
}

func newPipelineHarness(t *testing.T, ocrFake *fakeOCRProvider, llmFake *fakeLLMProvider, repo *fakeExpenseRepository) *pipelineHarness {
	t.Helper()

	store := cache.NewMemoryStore()
	log := logger.NewZapLogger(filepath.Join(t.TempDir(), "test.log"), false)

	pipeline := NewPipelineService(
		store,
		ocrFake,
		NewExtractionService(llmFake),
		NewPatternService(repo),
		NewClassificationService(llmFake),
		StageTTLs{
			OCR:        time.Hour,
			Extraction: time.Hour,
			Pattern:    time.Hour,
			Complete:   time.Hour,
		},
		2,
		5*time.Second,
		log,
	)

	return &pipelineHarness{
		pipeline: pipeline,
		store:    store,
		ocr:      ocrFake,
		llm:      llmFake,
		repo:     repo,
	}
}

const starbucksReceipt = "스타벅스 강남점\n아메리카노 T 2\n합계 4,500원\n2025-01-06 19:11"

func starbucksExtraction() string {
	return `{"amount": "₩4,500", "raw_datetime": "2025-01-06 19:11", "usage_location": "스타벅스 강남점"}`
}

func starbucksPatterns() []entity.HistoricalPattern {
	return []entity.HistoricalPattern{
		{Category: "복리후생비", Description: "커피", Frequency: 45, AverageAmount: 4500, Relevance: entity.RelevanceExact},
	}
}

// --- Tests ---

func TestProcessAdoptsStrongPattern(t *testing.T) {
	h := newPipelineHarness(t,
		&fakeOCRProvider{text: starbucksReceipt},
		&fakeLLMProvider{responses: []string{starbucksExtraction()}},
		&fakeExpenseRepository{patterns: starbucksPatterns()},
	)

	result, _, err := h.pipeline.Process(context.Background(), []byte("receipt-image"))
	require.NoError(t, err)

	assert.Equal(t, int64(4500), result.Amount)
	assert.Equal(t, "스타벅스", result.Location)
	assert.Equal(t, "복리후생비", result.Category)
	assert.Equal(t, entity.PathPattern, result.Path)
	// 19:11 on a Monday is overtime, so the description carries the label
	assert.Equal(t, "야근 커피", result.Description)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)

	require.NotEmpty(t, result.Trace)
	assert.Equal(t, "time_context", result.Trace[0].Label)
	assert.Equal(t, "confidence", result.Trace[len(result.Trace)-1].Label)

	// Pattern path never consults the inference call for classification
	assert.Equal(t, 1, h.llm.callCount())
}

func TestProcessIsIdempotent(t *testing.T) {
	h := newPipelineHarness(t,
		&fakeOCRProvider{text: starbucksReceipt},
		&fakeLLMProvider{responses: []string{starbucksExtraction()}},
		&fakeExpenseRepository{patterns: starbucksPatterns()},
	)

	image := []byte("receipt-image")
	first, firstCached, err := h.pipeline.Process(context.Background(), image)
	require.NoError(t, err)
	assert.False(t, firstCached)

	second, secondCached, err := h.pipeline.Process(context.Background(), image)
	require.NoError(t, err)
	assert.True(t, secondCached)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, h.ocr.callCount())
	assert.Equal(t, 1, h.llm.callCount())
	assert.Equal(t, 1, h.repo.queryCount())
}

func TestProcessStageCacheSurvivesCompleteInvalidation(t *testing.T) {
	h := newPipelineHarness(t,
		&fakeOCRProvider{text: starbucksReceipt},
		&fakeLLMProvider{responses: []string{starbucksExtraction()}},
		&fakeExpenseRepository{patterns: starbucksPatterns()},
	)

	ctx := context.Background()
	image := []byte("receipt-image")

	_, _, err := h.pipeline.Process(ctx, image)
	require.NoError(t, err)

	h.store.Invalidate(ctx, constant.CacheNamespaceComplete)

	_, _, err = h.pipeline.Process(ctx, image)
	require.NoError(t, err)

	// Every stage before classification replays from its own namespace
	assert.Equal(t, 1, h.ocr.callCount())
	assert.Equal(t, 1, h.llm.callCount())
	assert.Equal(t, 1, h.repo.queryCount())
}

func TestProcessSingleFlight(t *testing.T) {
	h := newPipelineHarness(t,
		&fakeOCRProvider{text: starbucksReceipt, delay: 50 * time.Millisecond},
		&fakeLLMProvider{responses: []string{starbucksExtraction()}},
		&fakeExpenseRepository{patterns: starbucksPatterns()},
	)

	const waiters = 8
	image := []byte("receipt-image")
	results := make([]*entity.ClassificationResult, waiters)
	errs := make([]error, waiters)

	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _, errs[i] = h.pipeline.Process(context.Background(), image)
		}(i)
	}
	wg.Wait()

	for i := 0; i < waiters; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
	assert.Equal(t, 1, h.ocr.callCount())
	assert.Equal(t, 1, h.llm.callCount())
}

func TestProcessOCRFailureIsStageTagged(t *testing.T) {
	h := newPipelineHarness(t,
		&fakeOCRProvider{err: fmt.Errorf("connection refused")},
		&fakeLLMProvider{},
		&fakeExpenseRepository{},
	)

	ctx := context.Background()
	_, _, err := h.pipeline.Process(ctx, []byte("receipt-image"))
	require.Error(t, err)

	se, ok := AsStageError(err)
	require.True(t, ok)
	assert.Equal(t, constant.StageOCR, se.Stage)
	assert.Equal(t, KindProviderUnavailable, se.Kind)

	// Failed attempts are retried up to maxTries
	assert.Equal(t, 2, h.ocr.callCount())

	// Nothing is cached for a failed stage
	assert.Equal(t, int64(0), h.store.Stats(ctx).Count)
}

func TestProcessUnparseableAmountIsFatal(t *testing.T) {
	h := newPipelineHarness(t,
		&fakeOCRProvider{text: "가맹점명 불명\n금액 불명"},
		&fakeLLMProvider{responses: []string{`{"amount": "abc", "raw_datetime": "", "usage_location": "어딘가"}`}},
		&fakeExpenseRepository{},
	)

	_, _, err := h.pipeline.Process(context.Background(), []byte("receipt-image"))
	require.Error(t, err)

	se, ok := AsStageError(err)
	require.True(t, ok)
	assert.Equal(t, constant.StageExtraction, se.Stage)
	assert.Equal(t, KindValidation, se.Kind)

	// Validation failures are permanent, no retry
	assert.Equal(t, 1, h.llm.callCount())
}

func TestProcessIncompleteExtractionRetries(t *testing.T) {
	h := newPipelineHarness(t,
		&fakeOCRProvider{text: starbucksReceipt},
		&fakeLLMProvider{responses: []string{`{"amount": 4500}`}},
		&fakeExpenseRepository{},
	)

	_, _, err := h.pipeline.Process(context.Background(), []byte("receipt-image"))
	require.Error(t, err)

	se, ok := AsStageError(err)
	require.True(t, ok)
	assert.Equal(t, constant.StageExtraction, se.Stage)
	assert.Equal(t, KindInvalidResponse, se.Kind)
	assert.Equal(t, 2, h.llm.callCount())
}

func TestProcessDelegatesToInference(t *testing.T) {
	h := newPipelineHarness(t,
		&fakeOCRProvider{text: "김가네분식\n김밥 2줄\n합계 7,000원\n2025-01-06 12:30"},
		&fakeLLMProvider{responses: []string{
			`{"amount": 7000, "raw_datetime": "2025-01-06 12:30", "usage_location": "김가네분식"}`,
			`{"category": "복리후생비", "description": "점심식대"}`,
		}},
		&fakeExpenseRepository{},
	)

	result, _, err := h.pipeline.Process(context.Background(), []byte("receipt-image"))
	require.NoError(t, err)

	assert.Equal(t, entity.PathInference, result.Path)
	assert.Equal(t, "복리후생비", result.Category)
	assert.Equal(t, "점심식대", result.Description)
	// Base score only: lunch on a weekday, no patterns, no brand
	assert.InDelta(t, 0.45, result.Confidence, 1e-9)
	assert.Equal(t, 2, h.llm.callCount())
}

func TestProcessBrandDefaultPath(t *testing.T) {
	h := newPipelineHarness(t,
		&fakeOCRProvider{text: "GS25 역삼점\n합계 3,200원\n2025-01-04 23:10"},
		&fakeLLMProvider{responses: []string{
			`{"amount": "3,200원", "raw_datetime": "2025-01-04 23:10", "usage_location": "GS25 역삼점"}`,
		}},
		&fakeExpenseRepository{},
	)

	result, _, err := h.pipeline.Process(context.Background(), []byte("receipt-image"))
	require.NoError(t, err)

	assert.Equal(t, entity.PathBrandDefault, result.Path)
	assert.Equal(t, "소모품비", result.Category)
	// Saturday night: weekend label wins
	assert.Equal(t, "주말 특근 소모품 구매", result.Description)
	assert.Equal(t, 1, h.llm.callCount())
}
