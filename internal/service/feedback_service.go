// FILE: internal/service/feedback_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smart-receipt-be/internal/constant"
	"smart-receipt-be/internal/dto"
	"smart-receipt-be/internal/pkg/parse"
)

type IFeedbackService interface {
	// Submit queues a user correction for the learning consumer. The record
	// becomes part of future pattern lookups once consumed.
	Submit(ctx context.Context, req *dto.SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error)
}

type feedbackService struct {
	publisherService IPublisherService
}

func NewFeedbackService(publisherService IPublisherService) IFeedbackService {
	return &feedbackService{
		publisherService: publisherService,
	}
}

func (s *feedbackService) Submit(ctx context.Context, req *dto.SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error) {
	location := parse.Location(req.Location, constant.UnknownLocation)
	if location == constant.UnknownLocation {
		return nil, NewStageError(constant.StagePattern, KindValidation,
			fmt.Errorf("feedback needs a usable location"))
	}

	msgPayload := dto.PublishFeedbackMessage{
		Location:    location,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		UsageDate:   parse.DateTime(req.UsageDate, time.Now()).Format("2006-01-02 15:04:05"),
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	return &dto.SubmitFeedbackResponse{Accepted: true}, nil
}
