package suggestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is one JSON value from a model response, kept in its decoded shape so
// field coercion stays explicit. The zero Value is KindAbsent.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  map[string]Value
}

// Descriptor is one activity object as the model emitted it.
type Descriptor map[string]Value

func StringValue(s string) Value           { return Value{kind: KindString, str: s} }
func NumberValue(n json.Number) Value      { return Value{kind: KindNumber, num: n} }
func ObjectValue(m map[string]Value) Value { return Value{kind: KindObject, obj: m} }

func (v Value) Kind() Kind { return v.kind }

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("empty json value")
	}
	switch b[0] {
	case 'n':
		*v = Value{kind: KindNull}
	case 't', 'f':
		var x bool
		if err := json.Unmarshal(b, &x); err != nil {
			return err
		}
		*v = Value{kind: KindBool, b: x}
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value{kind: KindString, str: s}
	case '[':
		var a []Value
		if err := json.Unmarshal(b, &a); err != nil {
			return err
		}
		*v = Value{kind: KindArray, arr: a}
	case '{':
		var m map[string]Value
		if err := json.Unmarshal(b, &m); err != nil {
			return err
		}
		*v = Value{kind: KindObject, obj: m}
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*v = Value{kind: KindNumber, num: n}
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return []byte(v.num.String()), nil
	case KindString:
		return json.Marshal(v.str)
	case KindArray:
		return json.Marshal(v.arr)
	case KindObject:
		return json.Marshal(v.obj)
	default:
		return []byte("null"), nil
	}
}

func (v Value) Object() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// AsString returns the trimmed string for string values. Blank strings and
// every other kind report false.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	s := strings.TrimSpace(v.str)
	return s, s != ""
}

// AsInt accepts JSON numbers, truncated toward zero and saturated to the
// int32 range, and strings holding a base-10 integer after trimming.
func (v Value) AsInt() (int, bool) {
	switch v.kind {
	case KindNumber:
		if i, err := v.num.Int64(); err == nil {
			return saturate(float64(i)), true
		}
		f, err := v.num.Float64()
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return saturate(math.Trunc(f)), true
	case KindString:
		i, err := strconv.Atoi(strings.TrimSpace(v.str))
		if err != nil || i > math.MaxInt32 || i < math.MinInt32 {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func saturate(f float64) int {
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	default:
		return int(f)
	}
}
