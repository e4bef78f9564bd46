package inquiry

import (
	"strings"
	"testing"

	"github.com/forgeline/equipment-cms/internal/inquiry/dto"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareSubmission(t *testing.T) {
	blank := " "
	in := dto.SubmitInquiryInput{Name: " Ada ", Email: "ada@example.com ", Message: " Quote please ", ProductID: &blank}
	require.NoError(t, PrepareSubmission(&in))
	assert.Equal(t, "Ada", in.Name)
	assert.Equal(t, "website", in.Source)
	assert.Nil(t, in.ProductID)

	bad := dto.SubmitInquiryInput{Email: "Ada <ada@example.com>", Message: strings.Repeat("x", 5001)}
	err := PrepareSubmission(&bad)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "message")
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(model.InquiryNew, model.InquiryInProgress))
	assert.True(t, CanTransition(model.InquiryArchived, model.InquiryInProgress))
	assert.True(t, CanTransition(model.InquiryCompleted, model.InquiryCompleted))
	assert.False(t, CanTransition(model.InquiryArchived, model.InquiryNew))
	assert.False(t, CanTransition(model.InquiryNew, "spam"))
}
