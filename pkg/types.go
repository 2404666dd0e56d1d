package dataquery

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind tags the concrete type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindTime
)

// Value is a tagged scalar as returned by the embedded engine. The engine
// produces loosely-typed tabular data; tagging keeps the row representation
// type-safe without falling back to bare interface values everywhere.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
	t    time.Time
}

func NullValue() Value            { return Value{kind: KindNull} }
func IntValue(v int64) Value      { return Value{kind: KindInt, i: v} }
func FloatValue(v float64) Value  { return Value{kind: KindFloat, f: v} }
func BoolValue(v bool) Value      { return Value{kind: KindBool, b: v} }
func StringValue(v string) Value  { return Value{kind: KindString, s: v} }
func TimeValue(v time.Time) Value { return Value{kind: KindTime, t: v} }

// FromDriver converts a value scanned from database/sql into a tagged Value.
// Byte slices are normalized to strings.
func FromDriver(v any) Value {
	switch x := v.(type) {
	case nil:
		return NullValue()
	case int64:
		return IntValue(x)
	case int32:
		return IntValue(int64(x))
	case int16:
		return IntValue(int64(x))
	case int8:
		return IntValue(int64(x))
	case int:
		return IntValue(int64(x))
	case uint64:
		return IntValue(int64(x))
	case uint32:
		return IntValue(int64(x))
	case float64:
		return FloatValue(x)
	case float32:
		return FloatValue(float64(x))
	case bool:
		return BoolValue(x)
	case string:
		return StringValue(x)
	case []byte:
		return StringValue(string(x))
	case time.Time:
		return TimeValue(x)
	default:
		return StringValue(fmt.Sprint(x))
	}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer payload; zero for other kinds.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload, converting integer values.
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

func (v Value) Bool() bool      { return v.b }
func (v Value) Time() time.Time { return v.t }

// String renders the value for human-readable text blocks.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindTime:
		return formatTime(v.t)
	default:
		return v.s
	}
}

// MarshalJSON renders the value as a plain JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		return json.Marshal(v.f)
	case KindBool:
		return json.Marshal(v.b)
	case KindTime:
		return json.Marshal(formatTime(v.t))
	default:
		return json.Marshal(v.s)
	}
}

// UnmarshalJSON maps plain JSON scalars back onto tagged values. Integral
// numbers become KindInt; date/time strings are not recognized and stay
// strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = NullValue()
	case bool:
		*v = BoolValue(x)
	case string:
		*v = StringValue(x)
	case float64:
		if x == float64(int64(x)) {
			*v = IntValue(int64(x))
		} else {
			*v = FloatValue(x)
		}
	default:
		return fmt.Errorf("unsupported JSON value for Value: %T", raw)
	}
	return nil
}

// Dates come back from the engine as midnight timestamps; render them as
// plain dates, everything else as RFC 3339.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

// Row maps column names to tagged values. Column order is carried alongside
// by the envelope, since Go maps are unordered.
type Row map[string]Value

// QueryResult is the uniform envelope returned for every SQL execution.
// Created fresh per invocation; never persisted.
type QueryResult struct {
	Success  bool     `json:"success"`
	Columns  []string `json:"columns"`
	Rows     []Row    `json:"rows"`
	RowCount int      `json:"row_count"`
	Error    string   `json:"error,omitempty"`
}

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// SchemaDescription is the on-demand description of a single table.
type SchemaDescription struct {
	Table    string       `json:"table"`
	Columns  []ColumnInfo `json:"columns"`
	RowCount int64        `json:"row_count"`
	Sample   []Row        `json:"sample,omitempty"`
}

// Source records where a loaded table's data came from.
type Source string

const (
	SourceFile      Source = "file"
	SourceSynthetic Source = "synthetic"
)

// TableMetadata is the server's own cached description of a loaded dataset,
// independent of the engine's catalog. Read-only after load.
type TableMetadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Columns     []string `json:"columns"`
	RowCount    int64    `json:"row_count"`
	Source      Source   `json:"source"`
}
