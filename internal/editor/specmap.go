package editor

import (
	"fmt"
	"strings"

	"github.com/forgeline/equipment-cms/internal/model"
)

// SpecRow is one editable entry of a specification map.
type SpecRow struct {
	Key   string          `json:"key"`
	Value model.SpecValue `json:"value"`
}

// SpecEditor edits an open-ended attribute bag while keeping row order stable.
// Every mutation hands the full replacement map to OnChange.
type SpecEditor struct {
	rows     []SpecRow
	OnChange func(model.SpecMap)
}

// NewSpecEditor starts from m with rows in key order.
func NewSpecEditor(m model.SpecMap, onChange func(model.SpecMap)) *SpecEditor {
	e := &SpecEditor{OnChange: onChange}
	for _, k := range m.Keys() {
		e.rows = append(e.rows, SpecRow{Key: k, Value: m[k]})
	}
	return e
}

// NewSpecEditorFromRows keeps the caller's row order, dropping duplicate keys.
func NewSpecEditorFromRows(rows []SpecRow, onChange func(model.SpecMap)) *SpecEditor {
	e := &SpecEditor{OnChange: onChange}
	seen := map[string]bool{}
	for _, r := range rows {
		if seen[r.Key] {
			continue
		}
		seen[r.Key] = true
		e.rows = append(e.rows, r)
	}
	return e
}

func (e *SpecEditor) Rows() []SpecRow {
	out := make([]SpecRow, len(e.rows))
	copy(out, e.rows)
	return out
}

// Map returns the current state as a specification map.
func (e *SpecEditor) Map() model.SpecMap {
	m := make(model.SpecMap, len(e.rows))
	for _, r := range e.rows {
		m[r.Key] = r.Value
	}
	return m
}

func (e *SpecEditor) index(key string) int {
	for i, r := range e.rows {
		if r.Key == key {
			return i
		}
	}
	return -1
}

func (e *SpecEditor) changed() {
	if e.OnChange != nil {
		e.OnChange(e.Map())
	}
}

// Append adds an empty text row under the first free placeholder key and returns it.
func (e *SpecEditor) Append() string {
	key := ""
	for n := len(e.rows) + 1; ; n++ {
		key = fmt.Sprintf("field_%d", n)
		if e.index(key) < 0 {
			break
		}
	}
	e.rows = append(e.rows, SpecRow{Key: key, Value: model.Text("")})
	e.changed()
	return key
}

// Rename changes a row key in place. Renaming onto another existing key, to an
// empty key or from a missing key is ignored and reports false.
func (e *SpecEditor) Rename(oldKey, newKey string) bool {
	newKey = strings.TrimSpace(newKey)
	i := e.index(oldKey)
	if i < 0 || newKey == "" {
		return false
	}
	if newKey == oldKey {
		return true
	}
	if e.index(newKey) >= 0 {
		return false
	}
	e.rows[i].Key = newKey
	e.changed()
	return true
}

// ChangeType coerces the row value to kind.
func (e *SpecEditor) ChangeType(key string, kind model.SpecKind) bool {
	i := e.index(key)
	if i < 0 || !kind.Valid() {
		return false
	}
	e.rows[i].Value = e.rows[i].Value.Convert(kind)
	e.changed()
	return true
}

// SetValue parses raw input according to the row's current kind.
func (e *SpecEditor) SetValue(key, raw string) bool {
	i := e.index(key)
	if i < 0 {
		return false
	}
	e.rows[i].Value = model.ParseSpecValue(e.rows[i].Value.Kind(), raw)
	e.changed()
	return true
}

func (e *SpecEditor) Remove(key string) bool {
	i := e.index(key)
	if i < 0 {
		return false
	}
	e.rows = append(e.rows[:i], e.rows[i+1:]...)
	e.changed()
	return true
}
