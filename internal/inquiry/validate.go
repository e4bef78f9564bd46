package inquiry

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/forgeline/equipment-cms/internal/inquiry/dto"
	"github.com/forgeline/equipment-cms/internal/model"
)

const (
	SourceWebsite  = "website"
	maxMessageLen  = 5000
	maxFieldLength = 200
)

// transitions lists the statuses reachable from each status.
var transitions = map[string][]string{
	model.InquiryNew:        {model.InquiryInProgress, model.InquiryCompleted, model.InquiryArchived},
	model.InquiryInProgress: {model.InquiryCompleted, model.InquiryArchived},
	model.InquiryCompleted:  {model.InquiryInProgress, model.InquiryArchived},
	model.InquiryArchived:   {model.InquiryInProgress},
}

// CanTransition reports whether an inquiry may move from one status to another.
// Staying in the same status is always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return model.OneOf(to, model.InquiryStatuses)
	}
	return model.OneOf(to, transitions[from])
}

// PrepareSubmission trims the contact form and validates it.
func PrepareSubmission(in *dto.SubmitInquiryInput) error {
	for _, f := range []*string{&in.Name, &in.Email, &in.Phone, &in.Company, &in.Country, &in.Subject, &in.Message, &in.Source} {
		*f = strings.TrimSpace(*f)
	}
	if in.Source == "" {
		in.Source = SourceWebsite
	}
	if in.ProductID != nil && strings.TrimSpace(*in.ProductID) == "" {
		in.ProductID = nil
	}

	v := model.NewValidationError()
	if in.Name == "" {
		v.Add("name", "name is required")
	} else if utf8.RuneCountInString(in.Name) > maxFieldLength {
		v.Add("name", "name is too long")
	}
	if in.Email == "" {
		v.Add("email", "email is required")
	} else if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		v.Add("email", "email is not a valid address")
	}
	if in.Message == "" {
		v.Add("message", "message is required")
	} else if utf8.RuneCountInString(in.Message) > maxMessageLen {
		v.Add("message", "message is too long")
	}
	if utf8.RuneCountInString(in.Subject) > maxFieldLength {
		v.Add("subject", "subject is too long")
	}
	return v.Err()
}
