package inquiry

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/inquiry/dto"
	"github.com/forgeline/equipment-cms/internal/model"
)

type UseCase interface {
	Submit(ctx context.Context, input *dto.SubmitInquiryInput) (*model.CustomerInquiry, error)
	GetInquiry(ctx context.Context, id string) (*model.CustomerInquiry, error)
	ListInquiries(ctx context.Context, filters *dto.InquiryFilters) ([]model.CustomerInquiry, int, error)
	UpdateInquiry(ctx context.Context, input *dto.UpdateInquiryInput) (*model.CustomerInquiry, error)
	DeleteInquiry(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int, error)
}
