package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	KindAbsent ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindTime
)

// String returns a human-readable kind name.
func (k ValueKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is a tagged variant for a single raw or cleaned cell. The zero
// Value is absent. Values are immutable once constructed and safe to
// copy; cleaned rows hold fresh Values rather than aliases into input.
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
	t    time.Time
}

// Absent returns the absent (null/missing) cell value.
func Absent() Value {
	return Value{}
}

// Bool returns a boolean cell value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a numeric cell value.
func Number(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

// String returns a text cell value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Time returns a date-like cell value.
func Time(t time.Time) Value {
	return Value{kind: KindTime, t: t}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsAbsent reports whether the cell is null/missing.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// BoolValue returns the boolean payload; valid only for KindBool.
func (v Value) BoolValue() bool {
	return v.b
}

// NumberValue returns the numeric payload; valid only for KindNumber.
func (v Value) NumberValue() float64 {
	return v.n
}

// StringValue returns the text payload; valid only for KindString.
func (v Value) StringValue() string {
	return v.s
}

// TimeValue returns the date payload; valid only for KindTime.
func (v Value) TimeValue() time.Time {
	return v.t
}

// Text renders the cell in its textual form. Absent renders as the
// empty string. Numbers use the shortest representation that
// round-trips; times use RFC 3339.
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindString:
		return v.s
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Equal compares two cells by value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// MarshalJSON encodes the cell as its natural JSON form:
// null, boolean, number, or string. Date values encode as RFC 3339.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindTime:
		return json.Marshal(v.t.Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null, boolean, number, or string into the
// matching variant. Any other JSON shape is rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Absent()
	case bool:
		*v = Bool(x)
	case float64:
		*v = Number(x)
	case string:
		*v = String(x)
	default:
		return fmt.Errorf("unsupported cell value of type %T", raw)
	}
	return nil
}
