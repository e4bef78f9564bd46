package usecase

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/broker"
	"github.com/forgeline/equipment-cms/internal/inquiry"
	"github.com/forgeline/equipment-cms/internal/inquiry/dto"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sideEffectWait = 10 * time.Second

	EventInquiryReceived = "InquiryReceived"
)

type inquiryUseCase struct {
	repo      inquiry.Repository
	products  inquiry.ProductLookup
	publisher broker.Publisher
	logger    logger.ZapLogger
	async     func(func(ctx context.Context))
}

func NewInquiryUseCase(repo inquiry.Repository, products inquiry.ProductLookup, publisher broker.Publisher, log logger.ZapLogger) inquiry.UseCase {
	return &inquiryUseCase{
		repo:      repo,
		products:  products,
		publisher: publisher,
		logger:    log,
		async: func(fn func(ctx context.Context)) {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), sideEffectWait)
				defer cancel()
				fn(ctx)
			}()
		},
	}
}

func (uc *inquiryUseCase) Submit(ctx context.Context, input *dto.SubmitInquiryInput) (*model.CustomerInquiry, error) {
	in := *input
	if err := inquiry.PrepareSubmission(&in); err != nil {
		return nil, err
	}
	if in.ProductID != nil {
		if _, err := uc.products.FindByID(ctx, *in.ProductID); err != nil {
			if !model.IsNotFound(err) {
				return nil, err
			}
			v := model.NewValidationError()
			v.Add("product_id", "unknown product")
			return nil, v
		}
	}

	now := model.Now()
	q := &model.CustomerInquiry{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Country:   in.Country,
		Subject:   in.Subject,
		Message:   in.Message,
		ProductID: in.ProductID,
		Status:    model.InquiryNew,
		Source:    in.Source,
	}
	if err := uc.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	uc.logger.Info("inquiry received", zap.String("id", q.ID), zap.String("source", q.Source))

	ev := dto.Event{ID: q.ID, Email: q.Email, Subject: q.Subject, ProductID: q.ProductID, Source: q.Source}
	uc.async(func(ctx context.Context) {
		event, err := broker.NewEvent(EventInquiryReceived, ev)
		if err != nil {
			uc.logger.Error("failed to build inquiry event", zap.Error(err))
			return
		}
		if err := uc.publisher.Publish(ctx, ev.ID, event); err != nil {
			uc.logger.Error("failed to publish inquiry event", zap.String("id", ev.ID), zap.Error(err))
		}
	})
	return q, nil
}

// GetInquiry returns the inquiry with its linked product, if it still exists.
func (uc *inquiryUseCase) GetInquiry(ctx context.Context, id string) (*model.CustomerInquiry, error) {
	q, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.ProductID != nil {
		p, err := uc.products.FindByID(ctx, *q.ProductID)
		switch {
		case err == nil:
			q.Product = p
		case !model.IsNotFound(err):
			return nil, err
		}
	}
	return q, nil
}

func (uc *inquiryUseCase) ListInquiries(ctx context.Context, filters *dto.InquiryFilters) ([]model.CustomerInquiry, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *inquiryUseCase) UpdateInquiry(ctx context.Context, input *dto.UpdateInquiryInput) (*model.CustomerInquiry, error) {
	q, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	v := model.NewValidationError()
	if input.Status != nil {
		if !inquiry.CanTransition(q.Status, *input.Status) {
			v.Add("status", "cannot move an inquiry from "+q.Status+" to "+*input.Status)
		} else {
			q.Status = *input.Status
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.AssignedTo != nil {
		q.AssignedTo = model.StringPtr(*input.AssignedTo)
	}
	switch {
	case input.ClearFollowUp:
		q.FollowUpAt = nil
	case input.FollowUpAt != nil:
		t := input.FollowUpAt.UTC()
		q.FollowUpAt = &t
	}
	if input.InternalNotes != nil {
		q.InternalNotes = *input.InternalNotes
	}
	q.UpdatedAt = model.Now()

	if err := uc.repo.UpdateWorkflow(ctx, q, input.LoadedAt); err != nil {
		return nil, err
	}
	uc.logger.Info("inquiry updated", zap.String("id", q.ID), zap.String("status", q.Status))
	return q, nil
}

func (uc *inquiryUseCase) DeleteInquiry(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// CountUnread counts inquiries nobody has picked up yet.
func (uc *inquiryUseCase) CountUnread(ctx context.Context) (int, error) {
	return uc.repo.CountByStatus(ctx, model.InquiryNew)
}
