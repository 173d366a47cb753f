package metadata

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
	"unique"
)

// Kind identifies the concrete scalar type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(k))
	}
}

// Value is a small typed scalar used for metadata fields.
//
// The representation avoids reflection and fmt-based stringification so
// that profiling large batches stays predictable. Values are comparable
// with ==, which frequency counting relies on.
type Value struct {
	kind Kind
	i64  int64
	f64  float64
	s    unique.Handle[string] // interned string
	b    bool
}

// Null returns a null Value.
func Null() Value { return Value{kind: KindNull} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{kind: KindInt, i64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{kind: KindFloat, f64: v} }

// String returns a string Value.
func String(v string) Value { return Value{kind: KindString, s: unique.Make(v)} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Kind returns the kind tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null (or invalid/zero).
func (v Value) IsNull() bool { return v.kind == KindNull || v.kind == KindInvalid }

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f64, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s.Value(), true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// StringValue returns the string value if Kind is KindString, otherwise "".
func (v Value) StringValue() string {
	if v.kind == KindString {
		return v.s.Value()
	}
	return ""
}

// Text renders the value for display. Unlike JSON marshaling it never fails.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInt:
		return strconv.FormatInt(v.i64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindString:
		return v.s.Value()
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "invalid"
	}
}

// MarshalJSON encodes the value as its plain JSON literal.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull, KindInvalid:
		return []byte("null"), nil
	case KindInt:
		return strconv.AppendInt(nil, v.i64, 10), nil
	case KindFloat:
		if math.IsNaN(v.f64) || math.IsInf(v.f64, 0) {
			return nil, fmt.Errorf("metadata: %v has no JSON literal", v.f64)
		}
		b := strconv.AppendFloat(nil, v.f64, 'g', -1, 64)
		// Keep a fraction marker so the kind survives a decode round trip.
		if !bytes.ContainsAny(b, ".eE") {
			b = append(b, '.', '0')
		}
		return b, nil
	case KindString:
		return appendQuoted(nil, v.s.Value()), nil
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	default:
		return nil, fmt.Errorf("metadata: cannot encode kind %s", v.kind)
	}
}

// UnmarshalJSON decodes a plain JSON scalar. Integral numbers without a
// fraction or exponent are restored as KindInt.
func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("metadata: empty value")
	}
	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return fmt.Errorf("metadata: invalid literal %q", data)
		}
		*v = Null()
		return nil
	case 't', 'f':
		b, err := strconv.ParseBool(string(data))
		if err != nil {
			return fmt.Errorf("metadata: invalid literal %q", data)
		}
		*v = Bool(b)
		return nil
	case '"':
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("metadata: invalid string %q: %w", data, err)
		}
		*v = String(s)
		return nil
	default:
		if i, err := strconv.ParseInt(string(data), 10, 64); err == nil {
			*v = Int(i)
			return nil
		}
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("metadata: unsupported value %q (arrays and objects are not scalar)", data)
		}
		*v = Float(f)
		return nil
	}
}

// appendQuoted writes a JSON string literal. Escaping matches what
// encoding/json produces for the characters metadata realistically holds.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			if r < 0x20 {
				dst = append(dst, []byte(fmt.Sprintf("\\u%04x", r))...)
			} else {
				dst = utf8.AppendRune(dst, r)
			}
		}
	}
	return append(dst, '"')
}

// Document is a typed metadata document: one record's field mapping.
type Document map[string]Value

// Clone creates a copy of the document. Values have value semantics, so a
// shallow map copy is a full copy.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	clone := make(Document, len(d))
	for k, v := range d {
		clone[k] = v
	}
	return clone
}
