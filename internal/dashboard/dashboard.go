// Package dashboard serves the admin landing numbers.
package dashboard

import (
	"context"
	"net/http"

	"github.com/forgeline/equipment-cms/internal/httpx"
	"github.com/forgeline/equipment-cms/internal/logger"
	"golang.org/x/sync/errgroup"
)

type Sources struct {
	Products interface {
		CountByStatus(ctx context.Context) (map[string]int, error)
	}
	Components interface {
		CountActive(ctx context.Context) (int, error)
	}
	News interface {
		CountPublished(ctx context.Context) (int, error)
	}
	Inquiries interface {
		CountUnread(ctx context.Context) (int, error)
	}
}

type Summary struct {
	ProductsByStatus map[string]int `json:"products_by_status"`
	ActiveComponents int            `json:"active_components"`
	PublishedNews    int            `json:"published_news"`
	UnreadInquiries  int            `json:"unread_inquiries"`
}

// Collect runs every count concurrently.
func Collect(ctx context.Context, src Sources) (*Summary, error) {
	var s Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.ProductsByStatus, err = src.Products.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.ActiveComponents, err = src.Components.CountActive(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.PublishedNews, err = src.News.CountPublished(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.UnreadInquiries, err = src.Inquiries.CountUnread(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

type Handler struct {
	src    Sources
	logger logger.ZapLogger
}

func NewHandler(src Sources, log logger.ZapLogger) *Handler {
	return &Handler{src: src, logger: log}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/api/dashboard", h.Summary)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := Collect(r.Context(), h.src)
	if err != nil {
		httpx.WriteError(w, h.logger, "load dashboard", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}
