package message

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
)

// ValueKind identifies the populated member of an ObjectValue
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueInt32
	ValueSInt32
	ValueInt64
	ValueSInt64
	ValueString
	ValueBytes
	ValueFloat
	ValueDouble
	ValueBool
)

var valueKindNames = [...]string{
	ValueNone:   "none",
	ValueInt32:  "int32",
	ValueSInt32: "sint32",
	ValueInt64:  "int64",
	ValueSInt64: "sint64",
	ValueString: "string",
	ValueBytes:  "bytes",
	ValueFloat:  "float",
	ValueDouble: "double",
	ValueBool:   "bool",
}

func (k ValueKind) String() string {
	if k >= ValueNone && int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// ParseValueKind returns the ValueKind named s
func ParseValueKind(s string) (ValueKind, bool) {
	for i, name := range valueKindNames {
		if name == s {
			return ValueKind(i), true
		}
	}
	return ValueNone, false
}

// ObjectValue is the CDAP object value, a tagged union of the scalar
// types a CDAP message can carry. The zero value holds nothing.
//
// Upper layers encoding richer object types (e.g. RIB objects) carry
// their own serialization in a Bytes value.
type ObjectValue struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	b    []byte
}

func Int32Value(v int32) ObjectValue    { return ObjectValue{kind: ValueInt32, i: int64(v)} }
func SInt32Value(v int32) ObjectValue   { return ObjectValue{kind: ValueSInt32, i: int64(v)} }
func Int64Value(v int64) ObjectValue    { return ObjectValue{kind: ValueInt64, i: v} }
func SInt64Value(v int64) ObjectValue   { return ObjectValue{kind: ValueSInt64, i: v} }
func StringValue(v string) ObjectValue  { return ObjectValue{kind: ValueString, s: v} }
func BytesValue(v []byte) ObjectValue   { return ObjectValue{kind: ValueBytes, b: v} }
func FloatValue(v float32) ObjectValue  { return ObjectValue{kind: ValueFloat, f: float64(v)} }
func DoubleValue(v float64) ObjectValue { return ObjectValue{kind: ValueDouble, f: v} }

func BoolValue(v bool) ObjectValue {
	ov := ObjectValue{kind: ValueBool}
	if v {
		ov.i = 1
	}
	return ov
}

// Kind returns the kind of value held
func (v ObjectValue) Kind() ValueKind { return v.kind }

// IsZero returns true if v holds no value
func (v ObjectValue) IsZero() bool { return v.kind == ValueNone }

// Int32 returns the value of an int32 or sint32 value
func (v ObjectValue) Int32() (int32, bool) {
	if v.kind == ValueInt32 || v.kind == ValueSInt32 {
		return int32(v.i), true
	}
	return 0, false
}

// Int64 returns the value of any integer kind, widened to int64
func (v ObjectValue) Int64() (int64, bool) {
	switch v.kind {
	case ValueInt32, ValueSInt32, ValueInt64, ValueSInt64:
		return v.i, true
	}
	return 0, false
}

func (v ObjectValue) Str() (string, bool)   { return v.s, v.kind == ValueString }
func (v ObjectValue) Bytes() ([]byte, bool) { return v.b, v.kind == ValueBytes }
func (v ObjectValue) Bool() (bool, bool)    { return v.i != 0, v.kind == ValueBool }

// Float returns the value of a float value
func (v ObjectValue) Float() (float32, bool) { return float32(v.f), v.kind == ValueFloat }

// Double returns the value of a float or double value
func (v ObjectValue) Double() (float64, bool) {
	return v.f, v.kind == ValueDouble || v.kind == ValueFloat
}

// Equal reports whether v and o hold the same kind and value
func (v ObjectValue) Equal(o ObjectValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueString:
		return v.s == o.s
	case ValueBytes:
		return bytes.Equal(v.b, o.b)
	case ValueFloat, ValueDouble:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	default:
		return v.i == o.i
	}
}

// Text returns the value's text representation, without its kind
func (v ObjectValue) Text() string {
	switch v.kind {
	case ValueNone:
		return ""
	case ValueString:
		return v.s
	case ValueBytes:
		return hex.EncodeToString(v.b)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case ValueDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.i != 0)
	default:
		return strconv.FormatInt(v.i, 10)
	}
}

func (v ObjectValue) String() string {
	if v.kind == ValueNone {
		return "<none>"
	}
	return v.kind.String() + ":" + v.Text()
}

// ParseValue returns the ObjectValue of kind k represented by text, the
// inverse of ObjectValue.Text.
func ParseValue(k ValueKind, text string) (ObjectValue, error) {
	switch k {
	case ValueNone:
		return ObjectValue{}, nil
	case ValueString:
		return StringValue(text), nil
	case ValueBytes:
		b, err := hex.DecodeString(text)
		return BytesValue(b), err
	case ValueBool:
		b, err := strconv.ParseBool(text)
		return BoolValue(b), err
	case ValueFloat:
		f, err := strconv.ParseFloat(text, 32)
		return FloatValue(float32(f)), err
	case ValueDouble:
		f, err := strconv.ParseFloat(text, 64)
		return DoubleValue(f), err
	case ValueInt32, ValueSInt32:
		i, err := strconv.ParseInt(text, 10, 32)
		return ObjectValue{kind: k, i: i}, err
	case ValueInt64, ValueSInt64:
		i, err := strconv.ParseInt(text, 10, 64)
		return ObjectValue{kind: k, i: i}, err
	}
	return ObjectValue{}, fmt.Errorf("unknown value kind %v", k)
}
