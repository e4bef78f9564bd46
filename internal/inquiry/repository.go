package inquiry

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/inquiry/dto"
	"github.com/forgeline/equipment-cms/internal/model"
)

type Repository interface {
	Create(ctx context.Context, q *model.CustomerInquiry) error
	UpdateWorkflow(ctx context.Context, q *model.CustomerInquiry, loadedAt time.Time) error
	FindByID(ctx context.Context, id string) (*model.CustomerInquiry, error)
	FindAll(ctx context.Context, filters *dto.InquiryFilters) ([]model.CustomerInquiry, int, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int, error)
}

// ProductLookup resolves the product an inquiry refers to.
type ProductLookup interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}
