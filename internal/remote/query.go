package remote

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/jmoiron/sqlx"
)

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func validIdent(s string) bool {
	return identRe.MatchString(s)
}

var errUnfiltered = errors.New("refusing to modify every row: add a filter")

type predicate struct {
	sql  string
	args []interface{}
}

// Query accumulates filters for one table. Builder methods record the first
// invalid argument and the terminal call reports it.
type Query struct {
	c       *Client
	table   string
	columns []string
	where   []predicate
	orders  []string
	owned   []string
	limit   int
	offset  int
	err     error
}

func (q *Query) fail(err error) *Query {
	if q.err == nil {
		q.err = err
	}
	return q
}

func (q *Query) checkIdent(col string) bool {
	if !validIdent(col) {
		q.fail(fmt.Errorf("invalid column name %q", col))
		return false
	}
	return true
}

// Select restricts the returned columns. Insert and Upsert use it as the column list.
func (q *Query) Select(cols ...string) *Query {
	for _, col := range cols {
		if !q.checkIdent(col) {
			return q
		}
	}
	q.columns = append(q.columns, cols...)
	return q
}

// Owned limits the conflict update of Upsert to existing rows whose cols already
// hold the incoming values. When a row belongs to someone else Upsert leaves it
// alone and fails with model.ErrInvalidInput.
func (q *Query) Owned(cols ...string) *Query {
	for _, col := range cols {
		if !q.checkIdent(col) {
			return q
		}
	}
	q.owned = append(q.owned, cols...)
	return q
}

// Eq filters on equality; a nil value matches NULL.
func (q *Query) Eq(col string, v interface{}) *Query {
	if !q.checkIdent(col) {
		return q
	}
	if isNil(v) {
		q.where = append(q.where, predicate{sql: col + " IS NULL"})
		return q
	}
	q.where = append(q.where, predicate{sql: col + " = ?", args: []interface{}{v}})
	return q
}

func (q *Query) Neq(col string, v interface{}) *Query {
	if !q.checkIdent(col) {
		return q
	}
	if isNil(v) {
		q.where = append(q.where, predicate{sql: col + " IS NOT NULL"})
		return q
	}
	q.where = append(q.where, predicate{sql: col + " <> ?", args: []interface{}{v}})
	return q
}

// In matches any of values. An empty list matches nothing.
func (q *Query) In(col string, values []string) *Query {
	if !q.checkIdent(col) {
		return q
	}
	if len(values) == 0 {
		q.where = append(q.where, predicate{sql: "FALSE"})
		return q
	}
	q.where = append(q.where, predicate{sql: col + " IN (" + placeholders(len(values)) + ")", args: toArgs(values)})
	return q
}

// NotIn excludes values. An empty list excludes nothing.
func (q *Query) NotIn(col string, values []string) *Query {
	if !q.checkIdent(col) || len(values) == 0 {
		return q
	}
	q.where = append(q.where, predicate{sql: col + " NOT IN (" + placeholders(len(values)) + ")", args: toArgs(values)})
	return q
}

// Search matches term as a case-insensitive substring of any of cols.
// An empty term is a no-op.
func (q *Query) Search(term string, cols ...string) *Query {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return q
	}
	pattern := "%" + escapeLike(term) + "%"
	parts := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		if !q.checkIdent(col) {
			return q
		}
		parts = append(parts, col+" ILIKE ?")
		args = append(args, pattern)
	}
	q.where = append(q.where, predicate{sql: "(" + strings.Join(parts, " OR ") + ")", args: args})
	return q
}

func (q *Query) Order(col string, asc bool) *Query {
	if !q.checkIdent(col) {
		return q
	}
	dir := " DESC"
	if asc {
		dir = " ASC"
	}
	q.orders = append(q.orders, col+dir)
	return q
}

func (q *Query) Limit(n int) *Query {
	if n > 0 {
		q.limit = n
	}
	return q
}

// Page applies 1-based pagination. A non-positive size disables it.
func (q *Query) Page(page, size int) *Query {
	if size <= 0 {
		return q
	}
	if page < 1 {
		page = 1
	}
	q.limit = size
	q.offset = (page - 1) * size
	return q
}

// Many loads every matching row into dest, a pointer to a slice.
func (q *Query) Many(ctx context.Context, dest interface{}) error {
	query, args, err := q.buildSelect()
	if err != nil {
		return wrap("select", q.table, err)
	}
	return wrap("select", q.table, q.c.db.SelectContext(ctx, dest, query, args...))
}

// One loads the first matching row. No row yields an error matching model.ErrNotFound.
func (q *Query) One(ctx context.Context, dest interface{}) error {
	q.limit = 1
	query, args, err := q.buildSelect()
	if err != nil {
		return wrap("select", q.table, err)
	}
	return wrap("select", q.table, q.c.db.GetContext(ctx, dest, query, args...))
}

func (q *Query) Count(ctx context.Context) (int, error) {
	query, args, err := q.buildCount()
	if err != nil {
		return 0, wrap("count", q.table, err)
	}
	var n int
	if err := q.c.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, wrap("count", q.table, err)
	}
	return n, nil
}

// Insert writes rows (a struct, a pointer or a slice of them) using the Select columns,
// bound by their `db` tags. An empty slice is a no-op.
func (q *Query) Insert(ctx context.Context, rows interface{}) error {
	if isEmptySlice(rows) {
		return nil
	}
	query, err := q.buildInsert(nil)
	if err != nil {
		return wrap("insert", q.table, err)
	}
	_, err = q.c.db.NamedExecContext(ctx, query, rows)
	return wrap("insert", q.table, err)
}

// Upsert inserts rows, updating every non-conflict column when a row with the same
// conflict key already exists.
func (q *Query) Upsert(ctx context.Context, conflict []string, rows interface{}) error {
	if isEmptySlice(rows) {
		return nil
	}
	if len(conflict) == 0 {
		return wrap("upsert", q.table, errors.New("upsert needs a conflict target"))
	}
	query, err := q.buildInsert(conflict)
	if err != nil {
		return wrap("upsert", q.table, err)
	}
	res, err := q.c.db.NamedExecContext(ctx, query, rows)
	if err != nil || len(q.owned) == 0 {
		return wrap("upsert", q.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap("upsert", q.table, err)
	}
	if want := rowCount(rows); n < int64(want) {
		return wrap("upsert", q.table, fmt.Errorf("%w: %d of %d rows belong to another %s",
			model.ErrInvalidInput, int64(want)-n, want, strings.Join(q.owned, ", ")))
	}
	return nil
}

// Update sets columns on the filtered rows and returns how many changed.
func (q *Query) Update(ctx context.Context, set map[string]interface{}) (int64, error) {
	query, args, err := q.buildUpdate(set)
	if err != nil {
		return 0, wrap("update", q.table, err)
	}
	res, err := q.c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrap("update", q.table, err)
	}
	n, err := res.RowsAffected()
	return n, wrap("update", q.table, err)
}

// Delete removes the filtered rows and returns how many were removed.
func (q *Query) Delete(ctx context.Context) (int64, error) {
	query, args, err := q.buildDelete()
	if err != nil {
		return 0, wrap("delete", q.table, err)
	}
	res, err := q.c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrap("delete", q.table, err)
	}
	n, err := res.RowsAffected()
	return n, wrap("delete", q.table, err)
}

func (q *Query) whereClause() (string, []interface{}) {
	if len(q.where) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(q.where))
	var args []interface{}
	for _, p := range q.where {
		parts = append(parts, p.sql)
		args = append(args, p.args...)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func (q *Query) buildSelect() (string, []interface{}, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	cols := "*"
	if len(q.columns) > 0 {
		cols = strings.Join(q.columns, ", ")
	}

	where, args := q.whereClause()
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s%s", cols, q.table, where)
	if len(q.orders) > 0 {
		b.WriteString(" ORDER BY " + strings.Join(q.orders, ", "))
	}
	if q.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
	}
	if q.offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", q.offset)
	}
	return sqlx.Rebind(sqlx.DOLLAR, b.String()), args, nil
}

func (q *Query) buildCount() (string, []interface{}, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	where, args := q.whereClause()
	return sqlx.Rebind(sqlx.DOLLAR, "SELECT count(*) FROM "+q.table+where), args, nil
}

func (q *Query) buildInsert(conflict []string) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	if len(q.columns) == 0 {
		return "", errors.New("insert needs columns: call Select first")
	}

	named := make([]string, len(q.columns))
	for i, col := range q.columns {
		named[i] = ":" + col
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		q.table, strings.Join(q.columns, ", "), strings.Join(named, ", "))

	if len(conflict) == 0 {
		return query, nil
	}

	inConflict := make(map[string]bool, len(conflict))
	for _, col := range conflict {
		if !validIdent(col) {
			return "", fmt.Errorf("invalid conflict column %q", col)
		}
		inConflict[col] = true
	}
	var sets []string
	for _, col := range q.columns {
		if !inConflict[col] {
			sets = append(sets, col+" = EXCLUDED."+col)
		}
	}
	query += " ON CONFLICT (" + strings.Join(conflict, ", ") + ")"
	if len(sets) == 0 {
		return query + " DO NOTHING", nil
	}
	query += " DO UPDATE SET " + strings.Join(sets, ", ")
	if len(q.owned) > 0 {
		guards := make([]string, len(q.owned))
		for i, col := range q.owned {
			guards[i] = q.table + "." + col + " = EXCLUDED." + col
		}
		query += " WHERE " + strings.Join(guards, " AND ")
	}
	return query, nil
}

func (q *Query) buildUpdate(set map[string]interface{}) (string, []interface{}, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if len(set) == 0 {
		return "", nil, errors.New("update needs at least one column")
	}
	if len(q.where) == 0 {
		return "", nil, errUnfiltered
	}

	cols := make([]string, 0, len(set))
	for col := range set {
		if !validIdent(col) {
			return "", nil, fmt.Errorf("invalid column name %q", col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	assigns := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+len(q.where))
	for i, col := range cols {
		assigns[i] = col + " = ?"
		args = append(args, set[col])
	}
	where, whereArgs := q.whereClause()
	args = append(args, whereArgs...)

	query := "UPDATE " + q.table + " SET " + strings.Join(assigns, ", ") + where
	return sqlx.Rebind(sqlx.DOLLAR, query), args, nil
}

func (q *Query) buildDelete() (string, []interface{}, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if len(q.where) == 0 {
		return "", nil, errUnfiltered
	}
	where, args := q.whereClause()
	return sqlx.Rebind(sqlx.DOLLAR, "DELETE FROM "+q.table+where), args, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toArgs(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func rowCount(v interface{}) int {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len()
	}
	return 1
}

func isEmptySlice(v interface{}) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	return (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() == 0
}
