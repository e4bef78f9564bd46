package remote

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the client translates into model sentinels.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// Error is returned by every failed remote call.
type Error struct {
	Op    string
	Table string
	Code  string // SQLSTATE when the server reported one
	Err   error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote %s %s (%s): %v", e.Op, e.Table, e.Code, e.Err)
	}
	return fmt.Sprintf("remote %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case model.ErrNotFound:
		return errors.Is(e.Err, sql.ErrNoRows)
	case model.ErrConflict:
		return e.Code == codeUniqueViolation
	case model.ErrInvalidInput:
		switch e.Code {
		case codeForeignKeyViolation, codeNotNullViolation, codeCheckViolation, codeInvalidText:
			return true
		}
	}
	return false
}

func wrap(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	e := &Error{Op: op, Table: table, Err: err}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		e.Code = string(pqErr.Code)
	}
	return e
}
