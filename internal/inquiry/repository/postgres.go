package repository

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/inquiry/dto"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/remote"
)

const inquiriesTable = "customer_inquiries"

var inquiryColumns = []string{
	"id", "name", "email", "phone", "company", "country", "subject", "message", "product_id",
	"status", "assigned_to", "follow_up_at", "internal_notes", "source", "created_at", "updated_at",
}

type PGRepository struct {
	DB *remote.Client
}

func NewPGRepository(db *remote.Client) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, q *model.CustomerInquiry) error {
	return r.DB.From(inquiriesTable).Select(inquiryColumns...).Insert(ctx, q)
}

// UpdateWorkflow writes only the admin-owned fields; the submitted contact data
// never changes.
func (r *PGRepository) UpdateWorkflow(ctx context.Context, q *model.CustomerInquiry, loadedAt time.Time) error {
	return r.DB.UpdateVersioned(ctx, inquiriesTable, q.ID, loadedAt, map[string]interface{}{
		"status":         q.Status,
		"assigned_to":    q.AssignedTo,
		"follow_up_at":   q.FollowUpAt,
		"internal_notes": q.InternalNotes,
		"updated_at":     q.UpdatedAt,
	})
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.CustomerInquiry, error) {
	var q model.CustomerInquiry
	if err := r.DB.From(inquiriesTable).Eq("id", id).One(ctx, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *PGRepository) filtered(f *dto.InquiryFilters) *remote.Query {
	q := r.DB.From(inquiriesTable)
	if f.Status != "" {
		q = q.Eq("status", f.Status)
	}
	if f.AssignedTo != "" {
		q = q.Eq("assigned_to", f.AssignedTo)
	}
	if f.SearchQuery != "" {
		q = q.Search(f.SearchQuery, "name", "email", "company", "subject")
	}
	return q
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InquiryFilters) ([]model.CustomerInquiry, int, error) {
	total, err := r.filtered(f).Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	var items []model.CustomerInquiry
	err = r.filtered(f).
		Order("created_at", false).
		Order("id", true).
		Page(f.Page, f.PageSize).
		Many(ctx, &items)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	n, err := r.DB.From(inquiriesTable).Eq("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *PGRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	return r.DB.From(inquiriesTable).Eq("status", status).Count(ctx)
}
