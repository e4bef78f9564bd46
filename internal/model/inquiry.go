package model

import "time"

const (
	InquiryNew        = "new"
	InquiryInProgress = "in_progress"
	InquiryCompleted  = "completed"
	InquiryArchived   = "archived"
)

var InquiryStatuses = []string{InquiryNew, InquiryInProgress, InquiryCompleted, InquiryArchived}

type CustomerInquiry struct {
	BaseModel
	Name          string     `db:"name" json:"name"`
	Email         string     `db:"email" json:"email"`
	Phone         string     `db:"phone" json:"phone"`
	Company       string     `db:"company" json:"company"`
	Country       string     `db:"country" json:"country"`
	Subject       string     `db:"subject" json:"subject"`
	Message       string     `db:"message" json:"message"`
	ProductID     *string    `db:"product_id" json:"product_id"`
	Status        string     `db:"status" json:"status"`
	AssignedTo    *string    `db:"assigned_to" json:"assigned_to"`
	FollowUpAt    *time.Time `db:"follow_up_at" json:"follow_up_at"`
	InternalNotes string     `db:"internal_notes" json:"internal_notes"`
	Source        string     `db:"source" json:"source"`

	Product *Product `db:"-" json:"product,omitempty"`
}
