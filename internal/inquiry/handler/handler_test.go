package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/forgeline/equipment-cms/internal/httpx"
	"github.com/forgeline/equipment-cms/internal/inquiry"
	"github.com/forgeline/equipment-cms/internal/inquiry/dto"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUseCase struct {
	inquiry.UseCase
	submitted []dto.SubmitInquiryInput
	update    *dto.UpdateInquiryInput
}

func (s *stubUseCase) Submit(ctx context.Context, in *dto.SubmitInquiryInput) (*model.CustomerInquiry, error) {
	s.submitted = append(s.submitted, *in)
	if err := inquiry.PrepareSubmission(in); err != nil {
		return nil, err
	}
	return &model.CustomerInquiry{Name: in.Name}, nil
}

func (s *stubUseCase) UpdateInquiry(ctx context.Context, in *dto.UpdateInquiryInput) (*model.CustomerInquiry, error) {
	s.update = in
	return &model.CustomerInquiry{BaseModel: model.BaseModel{ID: in.ID}}, nil
}

func (s *stubUseCase) CountUnread(ctx context.Context) (int, error) { return 3, nil }

func postForm(h http.Handler, ip string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = ip + ":40000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSubmit_FormRedirectsBackWithFlag(t *testing.T) {
	uc := &stubUseCase{}
	mux := http.NewServeMux()
	NewSubmitHandler(uc, httpx.NewIPLimiter(60, 10, nil), logger.NewNop()).Register(mux)

	rec := postForm(mux, "198.51.100.1", url.Values{
		"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Quote"}, "redirect": {"/products/mixer"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products/mixer?inquiry=sent", rec.Header().Get("Location"))

	rec = postForm(mux, "198.51.100.1", url.Values{"name": {"Ada"}, "redirect": {"//evil.test"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?inquiry=invalid", rec.Header().Get("Location"))
}

func TestSubmit_JSONValidation(t *testing.T) {
	mux := http.NewServeMux()
	NewSubmitHandler(&stubUseCase{}, httpx.NewIPLimiter(60, 10, nil), logger.NewNop()).Register(mux)

	req := httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(`{"name":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email"`)
}

func TestSubmit_RateLimitedPerIP(t *testing.T) {
	uc := &stubUseCase{}
	mux := http.NewServeMux()
	NewSubmitHandler(uc, httpx.NewIPLimiter(1, 1, nil), logger.NewNop()).Register(mux)

	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"hi"}}
	assert.Equal(t, http.StatusSeeOther, postForm(mux, "203.0.113.9", form).Code)
	assert.Equal(t, http.StatusTooManyRequests, postForm(mux, "203.0.113.9", form).Code)
	assert.Equal(t, http.StatusSeeOther, postForm(mux, "203.0.113.10", form).Code)
	assert.Len(t, uc.submitted, 2)
}

func TestAdmin_UpdateAndUnread(t *testing.T) {
	uc := &stubUseCase{}
	mux := http.NewServeMux()
	NewInquiryHandler(uc, logger.NewNop()).Register(mux)

	req := httptest.NewRequest(http.MethodPatch, "/admin/api/inquiries/q1", strings.NewReader(`{"status":"in_progress"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.update)
	assert.Equal(t, "q1", uc.update.ID)
	assert.Equal(t, "in_progress", *uc.update.Status)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/inquiries/unread", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"unread":3}`, rec.Body.String())
}
