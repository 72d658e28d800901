package ioreg

import (
	"fmt"
	"strconv"
)

// Kind identifies which representation a property Value carries.
type Kind uint8

const (
	KindString Kind = iota
	KindBytes
	KindNumber
	KindBool
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	}
	return "unknown"
}

// TypeMismatchError reports an accessor called on a Value of a different kind.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("ioreg: property is %s, not %s", e.Got, e.Want)
}

// Value is a single device-registry property value: a tagged variant holding
// exactly one of a string, a byte blob, a signed integer, a bool, or a float.
// Accessors fail with *TypeMismatchError when asked for the wrong variant.
type Value struct {
	kind  Kind
	str   string
	bytes []byte
	num   int64
	f     float64
	b     bool
}

// String returns a Value holding a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bytes returns a Value holding a binary blob.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Number returns a Value holding a signed integer.
func Number(n int64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a Value holding a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Float returns a Value holding a float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Kind reports which variant the Value holds.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string variant.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &TypeMismatchError{Want: KindString, Got: v.kind}
	}
	return v.str, nil
}

// AsBytes returns the binary-blob variant.
func (v Value) AsBytes() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, &TypeMismatchError{Want: KindBytes, Got: v.kind}
	}
	return v.bytes, nil
}

// AsNumber returns the integer variant.
func (v Value) AsNumber() (int64, error) {
	if v.kind != KindNumber {
		return 0, &TypeMismatchError{Want: KindNumber, Got: v.kind}
	}
	return v.num, nil
}

// AsBool returns the boolean variant.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, &TypeMismatchError{Want: KindBool, Got: v.kind}
	}
	return v.b, nil
}

// AsFloat returns the float variant.
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, &TypeMismatchError{Want: KindFloat, Got: v.kind}
	}
	return v.f, nil
}

// Display renders the value for CLI output. Binary blobs are shown as
// space-separated hex bytes.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBytes:
		out := make([]byte, 0, len(v.bytes)*3)
		for i, b := range v.bytes {
			if i > 0 {
				out = append(out, ' ')
			}
			out = append(out, hexDigits[b>>4], hexDigits[b&0xf])
		}
		return "<" + string(out) + ">"
	case KindNumber:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return ""
}

const hexDigits = "0123456789abcdef"
