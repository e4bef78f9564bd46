package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/forgeline/equipment-cms/internal/broker"
	"github.com/forgeline/equipment-cms/internal/inquiry"
	"github.com/forgeline/equipment-cms/internal/inquiry/dto"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/metrics"
	"go.uber.org/zap"
)

// EventInquirySubmitted is produced by channels outside the website (trade-fair
// tablets, the mail gateway) that feed inquiries into the CMS.
const EventInquirySubmitted = "InquirySubmitted"

type InquiryListener struct {
	consumer broker.Reader
	uc       inquiry.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewInquiryListener(consumer broker.Reader, uc inquiry.UseCase, log logger.ZapLogger) *InquiryListener {
	return &InquiryListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
		backoff:  time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (l *InquiryListener) Start(ctx context.Context) {
	l.logger.Info("Starting inquiry intake listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping inquiry intake listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *InquiryListener) processMessage(ctx context.Context, value []byte) {
	var event broker.Event
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}
	if event.EventType != EventInquirySubmitted {
		return
	}

	var input dto.SubmitInquiryInput
	if err := json.Unmarshal(event.Payload, &input); err != nil {
		l.logger.Error("Failed to unmarshal inquiry payload", zap.String("event_id", event.EventID), zap.Error(err))
		return
	}
	if input.Source == "" {
		input.Source = "kafka"
	}

	q, err := l.uc.Submit(ctx, &input)
	if err != nil {
		metrics.RecordInquiry("rejected")
		l.logger.Warn("Dropping inquiry from intake topic",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return
	}
	metrics.RecordInquiry("intake")
	l.logger.Info("Inquiry taken in", zap.String("event_id", event.EventID), zap.String("id", q.ID))
}
