// FILE: internal/service/learning_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"smart-receipt-be/internal/constant"
	"smart-receipt-be/internal/dto"
	"smart-receipt-be/internal/entity"
	"smart-receipt-be/internal/repository/contract"
	"smart-receipt-be/pkg/cache"
)

type ILearningService interface {
	Consume(ctx context.Context) error
}

// learningService persists user feedback into the expense history and drops
// the memoized pattern lookups so the next query sees the new record.
type learningService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	expenseRepository contract.ExpenseRepository
	cacheStore        cache.Store
}

func NewLearningService(
	pubSub *gochannel.GoChannel,
	topicName string,
	expenseRepository contract.ExpenseRepository,
	cacheStore cache.Store,
) ILearningService {
	return &learningService{
		pubSub:            pubSub,
		topicName:         topicName,
		expenseRepository: expenseRepository,
		cacheStore:        cacheStore,
	}
}

func (ls *learningService) Consume(ctx context.Context) error {
	messages, err := ls.pubSub.Subscribe(ctx, ls.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ls.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ls *learningService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishFeedbackMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal feedback message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	usageDate, err := time.Parse("2006-01-02 15:04:05", payload.UsageDate)
	if err != nil {
		log.Printf("[ERROR] Feedback message carries bad usage date %q: %v", payload.UsageDate, err)
		msg.Ack()
		return
	}

	record := entity.ExpenseRecord{
		Id:          uuid.New(),
		Location:    payload.Location,
		Category:    payload.Category,
		Description: payload.Description,
		Amount:      payload.Amount,
		UsageDate:   usageDate,
		CreatedAt:   time.Now(),
	}

	if err := ls.expenseRepository.Create(ctx, &record); err != nil {
		log.Printf("[ERROR] Failed to persist feedback for %s: %v", payload.Location, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	// Memoized lookups are stale now that history changed.
	removed := ls.cacheStore.Invalidate(ctx, constant.CacheNamespacePattern)

	log.Printf("[SUCCESS] Feedback learned for %s (%s), %d pattern entries invalidated", payload.Location, payload.Category, removed)
	msg.Ack()
}
