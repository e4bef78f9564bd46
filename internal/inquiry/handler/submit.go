package handler

import (
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/forgeline/equipment-cms/internal/httpx"
	"github.com/forgeline/equipment-cms/internal/inquiry"
	"github.com/forgeline/equipment-cms/internal/inquiry/dto"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/metrics"
	"github.com/forgeline/equipment-cms/internal/model"
)

const maxFormBody = 64 << 10

// SubmitHandler takes contact-form posts from the public site. JSON bodies get a
// JSON answer; HTML form posts are redirected back with an inquiry=sent|invalid flag.
type SubmitHandler struct {
	uc      inquiry.UseCase
	limiter *httpx.IPLimiter
	logger  logger.ZapLogger
}

func NewSubmitHandler(uc inquiry.UseCase, limiter *httpx.IPLimiter, log logger.ZapLogger) *SubmitHandler {
	return &SubmitHandler{
		uc:      uc,
		limiter: limiter,
		logger:  log,
	}
}

func (h *SubmitHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /inquiries", h.Submit)
}

func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	isJSON := isJSONRequest(r)
	if !h.limiter.Allow(h.limiter.ClientIP(r)) {
		metrics.RecordInquiry("rate_limited")
		w.Header().Set("Retry-After", "60")
		httpx.WriteStatus(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	var (
		input    dto.SubmitInquiryInput
		redirect = "/"
	)
	if isJSON {
		if err := httpx.DecodeJSON(r, &input); err != nil {
			metrics.RecordInquiry("invalid")
			httpx.WriteError(w, h.logger, "decode inquiry", err)
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
		if err := r.ParseForm(); err != nil {
			metrics.RecordInquiry("invalid")
			httpx.WriteStatus(w, http.StatusBadRequest, "malformed form")
			return
		}
		input = formInput(r.PostForm)
		redirect = safeRedirect(r.PostForm.Get("redirect"))
	}

	_, err := h.uc.Submit(r.Context(), &input)
	outcome := "accepted"
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		outcome = "invalid"
	case err != nil:
		outcome = "error"
	}
	metrics.RecordInquiry(outcome)

	if isJSON {
		if err != nil {
			httpx.WriteError(w, h.logger, "submit inquiry", err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, map[string]string{"status": "received"})
		return
	}
	if outcome == "error" {
		httpx.WriteError(w, h.logger, "submit inquiry", err)
		return
	}
	flag := "sent"
	if err != nil {
		flag = "invalid"
	}
	http.Redirect(w, r, withFlag(redirect, flag), http.StatusSeeOther)
}

func isJSONRequest(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "application/json"
}

func formInput(f url.Values) dto.SubmitInquiryInput {
	in := dto.SubmitInquiryInput{
		Name:    f.Get("name"),
		Email:   f.Get("email"),
		Phone:   f.Get("phone"),
		Company: f.Get("company"),
		Country: f.Get("country"),
		Subject: f.Get("subject"),
		Message: f.Get("message"),
	}
	if pid := f.Get("product_id"); pid != "" {
		in.ProductID = &pid
	}
	return in
}

// safeRedirect only follows local paths.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

func withFlag(target, flag string) string {
	u, err := url.Parse(target)
	if err != nil {
		return "/?inquiry=" + flag
	}
	q := u.Query()
	q.Set("inquiry", flag)
	u.RawQuery = q.Encode()
	return u.String()
}
