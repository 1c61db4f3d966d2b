// FILE: internal/service/pipeline_service.go
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/singleflight"

	"smart-receipt-be/internal/constant"
	"smart-receipt-be/internal/entity"
	"smart-receipt-be/internal/pkg/logger"
	"smart-receipt-be/pkg/cache"
	"smart-receipt-be/pkg/ocr"
)

// StageTTLs carries the cache lifetime per pipeline stage. Pattern entries
// outlive extraction entries since history shifts slowly; completed results
// stay short-lived so feedback reaches users quickly.
type StageTTLs struct {
	OCR        time.Duration
	Extraction time.Duration
	Pattern    time.Duration
	Complete   time.Duration
}

type IPipelineService interface {
	// Process runs the full OCR -> extraction -> pattern -> classification
	// flow for one receipt image. Repeated calls with the same image return
	// the cached terminal result; the bool reports that short-circuit.
	Process(ctx context.Context, image []byte) (*entity.ClassificationResult, bool, error)
}

type pipelineService struct {
	cacheStore   cache.Store
	ocrProvider  ocr.Provider
	extraction   IExtractionService
	patterns     IPatternService
	classifier   IClassificationService
	ttls         StageTTLs
	maxTries     uint
	stageTimeout time.Duration
	group        singleflight.Group
	logger       logger.ILogger
}

func NewPipelineService(
	cacheStore cache.Store,
	ocrProvider ocr.Provider,
	extraction IExtractionService,
	patterns IPatternService,
	classifier IClassificationService,
	ttls StageTTLs,
	maxTries uint,
	stageTimeout time.Duration,
	log logger.ILogger,
) IPipelineService {
	return &pipelineService{
		cacheStore:   cacheStore,
		ocrProvider:  ocrProvider,
		extraction:   extraction,
		patterns:     patterns,
		classifier:   classifier,
		ttls:         ttls,
		maxTries:     maxTries,
		stageTimeout: stageTimeout,
		logger:       log,
	}
}

func (s *pipelineService) Process(ctx context.Context, image []byte) (*entity.ClassificationResult, bool, error) {
	fingerprint := entity.NewReceiptFingerprint(image)

	// A fully processed receipt short-circuits all four stages at once.
	if payload, ok := s.cacheStore.Get(ctx, constant.CacheNamespaceComplete, fingerprint.String()); ok {
		var result entity.ClassificationResult
		if err := json.Unmarshal(payload, &result); err == nil {
			s.logger.Info("pipeline", "Complete cache hit", map[string]interface{}{
				"fingerprint": fingerprint.String(),
			})
			return &result, true, nil
		}
	}

	rawText, err := s.runOCRStage(ctx, fingerprint, image)
	if err != nil {
		return nil, false, err
	}

	extraction, err := s.runExtractionStage(ctx, rawText)
	if err != nil {
		return nil, false, err
	}

	patterns, err := s.runPatternStage(ctx, extraction.Location)
	if err != nil {
		return nil, false, err
	}

	result, err := s.runClassifyStage(ctx, fingerprint, extraction, patterns)
	if err != nil {
		return nil, false, err
	}
	return result, false, nil
}

func (s *pipelineService) runOCRStage(ctx context.Context, fingerprint entity.ReceiptFingerprint, image []byte) (string, error) {
	payload, err := s.runStage(ctx, constant.StageOCR, constant.CacheNamespaceOCR, fingerprint.String(), s.ttls.OCR,
		func(ctx context.Context) ([]byte, error) {
			text, err := s.ocrProvider.ExtractText(ctx, image)
			if err != nil {
				return nil, NewStageError(constant.StageOCR, KindProviderUnavailable, err)
			}
			if strings.TrimSpace(text) == "" {
				return nil, NewStageError(constant.StageOCR, KindInvalidResponse,
					fmt.Errorf("ocr returned no text"))
			}
			return json.Marshal(entity.OCRResult{Fingerprint: fingerprint, Text: text})
		})
	if err != nil {
		return "", err
	}

	var result entity.OCRResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", NewStageError(constant.StageOCR, KindInvalidResponse, err)
	}
	return result.Text, nil
}

func (s *pipelineService) runExtractionStage(ctx context.Context, rawText string) (*entity.StructuredExtraction, error) {
	key := hashKey(strings.TrimSpace(rawText))

	payload, err := s.runStage(ctx, constant.StageExtraction, constant.CacheNamespaceExtraction, key, s.ttls.Extraction,
		func(ctx context.Context) ([]byte, error) {
			extraction, err := s.extraction.Extract(ctx, rawText)
			if err != nil {
				return nil, err
			}
			return json.Marshal(extraction)
		})
	if err != nil {
		return nil, err
	}

	var extraction entity.StructuredExtraction
	if err := json.Unmarshal(payload, &extraction); err != nil {
		return nil, NewStageError(constant.StageExtraction, KindInvalidResponse, err)
	}
	return &extraction, nil
}

func (s *pipelineService) runPatternStage(ctx context.Context, location string) ([]entity.HistoricalPattern, error) {
	payload, err := s.runStage(ctx, constant.StagePattern, constant.CacheNamespacePattern, hashKey(location), s.ttls.Pattern,
		func(ctx context.Context) ([]byte, error) {
			patterns, err := s.patterns.FindPatterns(ctx, location)
			if err != nil {
				return nil, err
			}
			return json.Marshal(patterns)
		})
	if err != nil {
		return nil, err
	}

	var patterns []entity.HistoricalPattern
	if err := json.Unmarshal(payload, &patterns); err != nil {
		return nil, NewStageError(constant.StagePattern, KindInvalidResponse, err)
	}
	return patterns, nil
}

func (s *pipelineService) runClassifyStage(ctx context.Context, fingerprint entity.ReceiptFingerprint, extraction *entity.StructuredExtraction, patterns []entity.HistoricalPattern) (*entity.ClassificationResult, error) {
	payload, err := s.runStage(ctx, constant.StageClassify, constant.CacheNamespaceComplete, fingerprint.String(), s.ttls.Complete,
		func(ctx context.Context) ([]byte, error) {
			result, err := s.classifier.Classify(ctx, extraction, patterns)
			if err != nil {
				return nil, err
			}
			return json.Marshal(result)
		})
	if err != nil {
		return nil, err
	}

	var result entity.ClassificationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, NewStageError(constant.StageClassify, KindInvalidResponse, err)
	}
	return &result, nil
}

// runStage is the cache-aside template shared by every stage: check the
// namespace, and on a miss coordinate a single in-flight computation per
// (namespace, key), retried with backoff, whose output is cached before the
// waiters are released. Nothing is cached for a failed stage.
func (s *pipelineService) runStage(ctx context.Context, stage, namespace, key string, ttl time.Duration, compute func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if payload, ok := s.cacheStore.Get(ctx, namespace, key); ok {
		return payload, nil
	}

	flightKey := namespace + ":" + key
	ch := s.group.DoChan(flightKey, func() (interface{}, error) {
		// The computation runs on a detached context: a caller aborting its
		// request must not cancel work other waiters depend on.
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.stageTimeout)
		defer cancel()

		payload, err := s.computeWithRetry(dctx, stage, compute)
		if err != nil {
			return nil, err
		}
		s.cacheStore.Set(dctx, namespace, key, payload, ttl)
		return payload, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			s.logger.Error("pipeline", "Stage failed", map[string]interface{}{
				"stage": stage,
				"key":   key,
				"error": res.Err.Error(),
			})
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *pipelineService) computeWithRetry(ctx context.Context, stage string, compute func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	operation := func() ([]byte, error) {
		payload, err := compute(ctx)
		if err != nil {
			if se, ok := AsStageError(err); ok && se.Kind == KindValidation {
				return nil, backoff.Permanent(err)
			}
			s.logger.Warn("pipeline", "Stage attempt failed, retrying", map[string]interface{}{
				"stage": stage,
				"error": err.Error(),
			})
			return nil, err
		}
		return payload, nil
	}

	payload, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(s.maxTries),
	)
	if err != nil {
		if _, ok := AsStageError(err); ok {
			return nil, err
		}
		return nil, NewStageError(stage, KindProviderUnavailable, err)
	}
	return payload, nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
