// Package form drives the admin edit sessions: load an entity and its editors,
// validate locally, then persist everything in one save call.
package form

import (
	"errors"
	"time"
)

type State int

const (
	Loading State = iota
	Editing
	Saving
	Saved
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	case Saved:
		return "saved"
	}
	return "unknown"
}

var ErrNotEditable = errors.New("form is not editable in its current state")

// lifecycle is the state machine shared by every form:
// Loading -> Editing -> Saving -> Saved, or back to Editing with Err set.
type lifecycle struct {
	state    State
	err      error
	loadedAt time.Time
}

func (l *lifecycle) State() State { return l.state }

// Err is the last load or save failure, cleared when a save starts.
func (l *lifecycle) Err() error { return l.err }

// LoadedAt is the updated_at the session started from; saves are rejected when
// the row has moved on since.
func (l *lifecycle) LoadedAt() time.Time { return l.loadedAt }

func (l *lifecycle) loaded(err error, updatedAt time.Time) error {
	if err != nil {
		l.err = err
		return err
	}
	l.state = Editing
	l.err = nil
	l.loadedAt = updatedAt
	return nil
}

func (l *lifecycle) begin() error {
	if l.state != Editing && l.state != Saved {
		return ErrNotEditable
	}
	l.state = Saving
	l.err = nil
	return nil
}

func (l *lifecycle) finish(err error, updatedAt time.Time) error {
	if err != nil {
		l.state = Editing
		l.err = err
		return err
	}
	l.state = Saved
	l.loadedAt = updatedAt
	return nil
}
