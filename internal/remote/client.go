// Package remote is a thin table-style data client over the hosted Postgres.
//
// Calls read like the hosted data API the admin used to talk to:
//
//	c.From("products").Eq("status", "published").Order("name", true).Many(ctx, &rows)
//
// Every failure comes back as *Error, which matches the model sentinels with errors.Is.
package remote

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DB is satisfied by both *sqlx.DB and *sqlx.Tx.
type DB interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type Client struct {
	db   DB
	root *sqlx.DB // nil when the client is bound to a transaction
}

func New(db *sqlx.DB) *Client {
	return &Client{db: db, root: db}
}

// From starts a query against the named table.
func (c *Client) From(table string) *Query {
	q := &Query{c: c, table: table}
	if !validIdent(table) {
		q.err = fmt.Errorf("invalid table name %q", table)
	}
	return q
}

// InTx reports whether the client is bound to a transaction.
func (c *Client) InTx() bool {
	return c.root == nil
}

// WithTx runs fn with a client bound to a single transaction. The transaction
// commits when fn returns nil and rolls back otherwise. Nested calls reuse the
// outer transaction.
func (c *Client) WithTx(ctx context.Context, fn func(tx *Client) error) error {
	if c.InTx() {
		return fn(c)
	}

	tx, err := c.root.BeginTxx(ctx, nil)
	if err != nil {
		return wrap("begin", "", err)
	}
	defer tx.Rollback()

	if err := fn(&Client{db: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrap("commit", "", err)
	}
	return nil
}

// Ping checks connectivity to the backing database.
func (c *Client) Ping(ctx context.Context) error {
	if c.root == nil {
		return nil
	}
	return wrap("ping", "", c.root.PingContext(ctx))
}
