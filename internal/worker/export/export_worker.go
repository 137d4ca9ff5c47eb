package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/domain/repository"
	"github.com/festival-trip-planner/internal/usecase"
	"github.com/festival-trip-planner/internal/worker"
)

// ItineraryExportWorker listens for plan-saved events and prepares the
// printable itinerary document for the external formatter.
type ItineraryExportWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	exportUC     *usecase.ExportUseCase
	consumerName string
}

func NewItineraryExportWorker(
	streamRepo repository.StreamRepository,
	exportUC *usecase.ExportUseCase,
	consumerGroup string,
	logger *zap.Logger,
) *ItineraryExportWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &ItineraryExportWorker{
		BaseWorker:   worker.NewBaseWorker("itinerary-export", consumerGroup, logger),
		streamRepo:   streamRepo,
		exportUC:     exportUC,
		consumerName: consumerName,
	}
}

func (w *ItineraryExportWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ItineraryExportWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPlanSaved, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamPlanSaved, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("Context cancelled, stopping worker")
			return nil
		case <-w.StopChan():
			logger.Info("Stop signal received")
			return nil
		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

func (w *ItineraryExportWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.PlanSavedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Skipping malformed plan saved event",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// Ack anyway: a malformed event never becomes valid on redelivery.
		w.ack(ctx, msg.ID)
		return
	}

	if _, err := w.exportUC.PrepareItinerary(ctx, event.UserID); err != nil {
		logger.Error("Failed to prepare itinerary document",
			zap.String("user_id", event.UserID),
			zap.String("plan_id", event.PlanID),
			zap.Error(err))
		// Leave unacked for redelivery.
		return
	}

	logger.Info("Itinerary exported",
		zap.String("user_id", event.UserID),
		zap.String("plan_id", event.PlanID))
	w.ack(ctx, msg.ID)
}

func (w *ItineraryExportWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamPlanSaved, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Warn("Failed to ack message", zap.String("message_id", messageID), zap.Error(err))
	}
}
