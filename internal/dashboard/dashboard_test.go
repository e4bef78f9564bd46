package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/stretchr/testify/assert"
)

type counts struct{ err error }

func (c counts) CountByStatus(ctx context.Context) (map[string]int, error) {
	return map[string]int{"draft": 2, "published": 5, "archived": 0}, nil
}
func (c counts) CountActive(ctx context.Context) (int, error)    { return 7, nil }
func (c counts) CountPublished(ctx context.Context) (int, error) { return 3, nil }
func (c counts) CountUnread(ctx context.Context) (int, error)    { return 1, c.err }

func sources(c counts) Sources {
	return Sources{Products: c, Components: c, News: c, Inquiries: c}
}

func TestSummary(t *testing.T) {
	mux := http.NewServeMux()
	NewHandler(sources(counts{}), logger.NewNop()).Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/dashboard", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"products_by_status": {"draft": 2, "published": 5, "archived": 0},
		"active_components": 7,
		"published_news": 3,
		"unread_inquiries": 1
	}`, rec.Body.String())
}

func TestSummary_AnyFailureIs500(t *testing.T) {
	mux := http.NewServeMux()
	NewHandler(sources(counts{err: errors.New("db down")}), logger.NewNop()).Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/dashboard", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
