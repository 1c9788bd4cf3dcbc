package types

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ValueKind identifies the scalar type carried by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindText
	KindInt
	KindFloat
	KindBool
	KindUUID
	KindTimestamp
	KindBytes
)

var kindNames = [...]string{
	KindNull:      "null",
	KindText:      "text",
	KindInt:       "int",
	KindFloat:     "float",
	KindBool:      "bool",
	KindUUID:      "uuid",
	KindTimestamp: "timestamp",
	KindBytes:     "bytes",
}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a literal bound as a positional parameter.
// Values are never inlined into SQL text.
type Value struct {
	raw  any
	Kind ValueKind
}

// Null returns the SQL NULL value.
func Null() Value { return Value{Kind: KindNull} }

// Text wraps a string.
func Text(s string) Value { return Value{Kind: KindText, raw: s} }

// Int wraps an integer.
func Int(i int64) Value { return Value{Kind: KindInt, raw: i} }

// Float wraps a floating point number.
func Float(f float64) Value { return Value{Kind: KindFloat, raw: f} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: KindBool, raw: b} }

// UUID wraps a uuid.
func UUID(u uuid.UUID) Value { return Value{Kind: KindUUID, raw: u} }

// Timestamp wraps a point in time.
func Timestamp(t time.Time) Value { return Value{Kind: KindTimestamp, raw: t} }

// Bytes wraps a byte slice. The slice is copied.
func Bytes(b []byte) Value {
	return Value{Kind: KindBytes, raw: append([]byte(nil), b...)}
}

// ToValue converts a Go value into a Value.
func ToValue(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case string:
		return Text(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case bool:
		return Bool(x), nil
	case uuid.UUID:
		return UUID(x), nil
	case time.Time:
		return Timestamp(x), nil
	case []byte:
		return Bytes(x), nil
	case *string:
		if x == nil {
			return Null(), nil
		}
		return Text(*x), nil
	case *int64:
		if x == nil {
			return Null(), nil
		}
		return Int(*x), nil
	case *bool:
		if x == nil {
			return Null(), nil
		}
		return Bool(*x), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, v)
	}
}

// Any returns the driver-ready Go value.
func (v Value) Any() any {
	return v.raw
}

// IsNull reports whether v is SQL NULL.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// String formats the value for display.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindText:
		return strconv.Quote(v.raw.(string))
	case KindTimestamp:
		return v.raw.(time.Time).Format(time.RFC3339Nano)
	case KindBytes:
		return fmt.Sprintf("%x", v.raw)
	default:
		return fmt.Sprint(v.raw)
	}
}

func (Value) isOperand() {}
