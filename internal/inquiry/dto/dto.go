package dto

import "time"

type InquiryFilters struct {
	Status      string `json:"status"`
	AssignedTo  string `json:"assigned_to"`
	SearchQuery string `json:"q"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

// SubmitInquiryInput is what the public contact form and the intake topic carry.
type SubmitInquiryInput struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Company   string  `json:"company"`
	Country   string  `json:"country"`
	Subject   string  `json:"subject"`
	Message   string  `json:"message"`
	ProductID *string `json:"product_id"`
	Source    string  `json:"source"`
}

// UpdateInquiryInput carries the admin workflow fields. Nil fields are left as they are.
type UpdateInquiryInput struct {
	ID            string     `json:"-"`
	Status        *string    `json:"status"`
	AssignedTo    *string    `json:"assigned_to"`
	FollowUpAt    *time.Time `json:"follow_up_at"`
	ClearFollowUp bool       `json:"clear_follow_up"`
	InternalNotes *string    `json:"internal_notes"`
	LoadedAt      time.Time  `json:"loaded_at"`
}

// Event is published when an inquiry is received.
type Event struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Subject   string  `json:"subject"`
	ProductID *string `json:"product_id,omitempty"`
	Source    string  `json:"source"`
}
