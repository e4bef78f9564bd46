package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// SpecKind is the tag of a SpecValue.
type SpecKind string

const (
	KindText   SpecKind = "text"
	KindNumber SpecKind = "number"
	KindBool   SpecKind = "boolean"
	KindList   SpecKind = "array"
)

func (k SpecKind) Valid() bool {
	switch k {
	case KindText, KindNumber, KindBool, KindList:
		return true
	}
	return false
}

// SpecValue is one entry of an open-ended attribute bag. The zero value is empty text.
type SpecValue struct {
	kind SpecKind
	text string
	num  float64
	b    bool
	list []string
}

func Text(s string) SpecValue { return SpecValue{kind: KindText, text: s} }

func Number(f float64) SpecValue {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return SpecValue{kind: KindNumber, num: f}
}

func Bool(b bool) SpecValue { return SpecValue{kind: KindBool, b: b} }

func List(items ...string) SpecValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return SpecValue{kind: KindList, list: cp}
}

func (v SpecValue) Kind() SpecKind {
	if v.kind == "" {
		return KindText
	}
	return v.kind
}

func (v SpecValue) AsText() string { return v.text }
func (v SpecValue) AsNumber() float64 { return v.num }
func (v SpecValue) AsBool() bool { return v.b }

func (v SpecValue) AsList() []string {
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp
}

// String is the display form used by the specs table.
func (v SpecValue) String() string {
	switch v.Kind() {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		return strings.Join(v.list, ", ")
	default:
		return v.text
	}
}

func (v SpecValue) Equal(o SpecValue) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	default:
		return v.text == o.text
	}
}

// Convert coerces the value to another kind. Coercion never fails: values that
// cannot be represented fall back to the zero of the target kind.
func (v SpecValue) Convert(to SpecKind) SpecValue {
	if v.Kind() == to {
		return v
	}
	switch to {
	case KindBool:
		return Bool(v.truthy())
	case KindNumber:
		return Number(v.numeric())
	case KindList:
		if v.Kind() == KindList {
			return v
		}
		return List(SplitList(v.String())...)
	default:
		return Text(v.String())
	}
}

func (v SpecValue) truthy() bool {
	switch v.Kind() {
	case KindNumber:
		return v.num != 0
	case KindBool:
		return v.b
	case KindList:
		return true
	default:
		return v.text != ""
	}
}

func (v SpecValue) numeric() float64 {
	switch v.Kind() {
	case KindNumber:
		return v.num
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindList:
		return ParseNumber(strings.Join(v.list, ","))
	default:
		return ParseNumber(v.text)
	}
}

// ParseNumber reads a decimal number; anything unparsable is 0.
func ParseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// SplitList comma-splits raw into trimmed, non-empty tokens.
func SplitList(raw string) []string {
	out := []string{}
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// ParseSpecValue interprets raw form input for the given kind.
func ParseSpecValue(kind SpecKind, raw string) SpecValue {
	switch kind {
	case KindNumber:
		return Number(ParseNumber(raw))
	case KindBool:
		b, _ := strconv.ParseBool(strings.TrimSpace(raw))
		return Bool(b)
	case KindList:
		return List(SplitList(raw)...)
	default:
		return Text(raw)
	}
}

func (v SpecValue) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.text)
	}
}

func (v *SpecValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Text("")
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		items := make([]string, 0, len(raw))
		for _, r := range raw {
			var elem SpecValue
			if err := elem.UnmarshalJSON(r); err != nil {
				return err
			}
			items = append(items, elem.String())
		}
		*v = List(items...)
	case '{':
		*v = Text(string(data))
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("spec value: %w", err)
		}
		*v = Number(f)
	}
	return nil
}

// SpecMap is stored as a jsonb object.
type SpecMap map[string]SpecValue

// Keys returns the map keys in lexical order.
func (m SpecMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m SpecMap) Clone() SpecMap {
	out := make(SpecMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m SpecMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]SpecValue(m))
}

func (m *SpecMap) Scan(src any) error {
	var data []byte
	switch s := src.(type) {
	case nil:
		*m = SpecMap{}
		return nil
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return fmt.Errorf("spec map: unsupported source %T", src)
	}

	out := SpecMap{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, (*map[string]SpecValue)(&out)); err != nil {
			return fmt.Errorf("spec map: %w", err)
		}
	}
	*m = out
	return nil
}
