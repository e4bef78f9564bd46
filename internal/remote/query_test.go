package remote

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return &Client{}
}

func TestBuildSelect(t *testing.T) {
	q := newTestClient().From("products").
		Select("id", "name").
		Eq("status", "published").
		Eq("category_id", nil).
		Search("mixer", "name", "description").
		Order("name", true).
		Page(2, 10)

	query, args, err := q.buildSelect()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, name FROM products WHERE status = $1 AND category_id IS NULL AND (name ILIKE $2 OR description ILIKE $3) ORDER BY name ASC LIMIT 10 OFFSET 10",
		query)
	assert.Equal(t, []interface{}{"published", "%mixer%", "%mixer%"}, args)
}

func TestBuildSelect_InAndNotIn(t *testing.T) {
	query, args, err := newTestClient().From("components").
		In("id", []string{"a", "b"}).
		NotIn("component_type", nil).
		buildSelect()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM components WHERE id IN ($1, $2)", query)
	assert.Equal(t, []interface{}{"a", "b"}, args)

	query, _, err = newTestClient().From("components").In("id", nil).buildSelect()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM components WHERE FALSE", query)
}

func TestSearch_EscapesWildcards(t *testing.T) {
	_, args, err := newTestClient().From("news_articles").Search("100%_pure", "title").buildSelect()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{`%100\%\_pure%`}, args)

	query, args, err := newTestClient().From("news_articles").Search("   ", "title").buildSelect()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM news_articles", query)
	assert.Empty(t, args)
}

func TestRejectsUnsafeIdentifiers(t *testing.T) {
	_, _, err := newTestClient().From("products; DROP TABLE products").buildSelect()
	assert.Error(t, err)

	_, _, err = newTestClient().From("products").Order("name DESC, (SELECT 1)", true).buildSelect()
	assert.Error(t, err)

	_, _, err = newTestClient().From("products").Eq("Name", "x").buildSelect()
	assert.Error(t, err)
}

func TestBuildInsertAndUpsert(t *testing.T) {
	q := newTestClient().From("product_media").Select("id", "product_id", "url")

	query, err := q.buildInsert(nil)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO product_media (id, product_id, url) VALUES (:id, :product_id, :url)", query)

	query, err = q.buildInsert([]string{"id"})
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO product_media (id, product_id, url) VALUES (:id, :product_id, :url) ON CONFLICT (id) DO UPDATE SET product_id = EXCLUDED.product_id, url = EXCLUDED.url",
		query)

	_, err = newTestClient().From("product_media").buildInsert(nil)
	assert.Error(t, err)
}

func TestBuildUpsert_OwnedGuardsConflictUpdate(t *testing.T) {
	query, err := newTestClient().From("product_media").
		Select("id", "product_id", "url").
		Owned("product_id").
		buildInsert([]string{"id"})
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO product_media (id, product_id, url) VALUES (:id, :product_id, :url) ON CONFLICT (id) DO UPDATE SET product_id = EXCLUDED.product_id, url = EXCLUDED.url WHERE product_media.product_id = EXCLUDED.product_id",
		query)

	_, err = newTestClient().From("product_media").Select("id").Owned("bad col").buildInsert([]string{"id"})
	assert.Error(t, err)
}

func TestBuildUpdate(t *testing.T) {
	query, args, err := newTestClient().From("customer_inquiries").
		Eq("id", "42").
		buildUpdate(map[string]interface{}{"status": "completed", "assigned_to": "ops"})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE customer_inquiries SET assigned_to = $1, status = $2 WHERE id = $3", query)
	assert.Equal(t, []interface{}{"ops", "completed", "42"}, args)
}

func TestUpdateAndDeleteRequireFilter(t *testing.T) {
	_, _, err := newTestClient().From("products").buildUpdate(map[string]interface{}{"status": "archived"})
	assert.ErrorIs(t, err, errUnfiltered)

	_, _, err = newTestClient().From("products").buildDelete()
	assert.ErrorIs(t, err, errUnfiltered)

	query, args, err := newTestClient().From("product_media").Eq("product_id", "p1").NotIn("id", []string{"m1"}).buildDelete()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM product_media WHERE product_id = $1 AND id NOT IN ($2)", query)
	assert.Equal(t, []interface{}{"p1", "m1"}, args)
}

func TestErrorMapping(t *testing.T) {
	notFound := wrap("select", "products", sql.ErrNoRows)
	assert.ErrorIs(t, notFound, model.ErrNotFound)
	assert.NotErrorIs(t, notFound, model.ErrConflict)

	dup := wrap("insert", "products", &pq.Error{Code: "23505", Message: "duplicate key"})
	assert.ErrorIs(t, dup, model.ErrConflict)

	var re *Error
	require.True(t, errors.As(dup, &re))
	assert.Equal(t, "insert", re.Op)
	assert.Equal(t, "23505", re.Code)

	fk := wrap("insert", "product_components", &pq.Error{Code: "23503"})
	assert.ErrorIs(t, fk, model.ErrInvalidInput)

	assert.NoError(t, wrap("select", "products", nil))
	assert.Same(t, dup, wrap("update", "products", dup))
}

func TestIsEmptySlice(t *testing.T) {
	var nilSlice []model.ProductMedia
	assert.True(t, isEmptySlice(nilSlice))
	assert.True(t, isEmptySlice(&nilSlice))
	assert.False(t, isEmptySlice([]model.ProductMedia{{ID: "m"}}))
	assert.False(t, isEmptySlice(model.ProductMedia{}))
}
