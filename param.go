package sqlfrag

import (
	"time"

	"github.com/google/uuid"

	"github.com/zoobzio/sqlfrag/internal/types"
)

// Re-export value kinds for public API.
const (
	KindNull      = types.KindNull
	KindText      = types.KindText
	KindInt       = types.KindInt
	KindFloat     = types.KindFloat
	KindBool      = types.KindBool
	KindUUID      = types.KindUUID
	KindTimestamp = types.KindTimestamp
	KindBytes     = types.KindBytes
)

// TryV converts a Go value into a bound parameter value.
// Supported: nil, string, integers, floats, bool, uuid.UUID, time.Time,
// []byte and nil-able pointers to string, int64 and bool.
func TryV(v any) (types.Value, error) {
	return types.ToValue(v)
}

// V converts a Go value into a bound parameter value.
func V(v any) types.Value {
	val, err := TryV(v)
	if err != nil {
		panic(err)
	}
	return val
}

// NullValue returns the SQL NULL value.
func NullValue() types.Value { return types.Null() }

// Text wraps a string value.
func Text(s string) types.Value { return types.Text(s) }

// Int wraps an integer value.
func Int(i int64) types.Value { return types.Int(i) }

// Float wraps a floating point value.
func Float(f float64) types.Value { return types.Float(f) }

// Bool wraps a boolean value.
func Bool(b bool) types.Value { return types.Bool(b) }

// UUID wraps a uuid value.
func UUID(u uuid.UUID) types.Value { return types.UUID(u) }

// Timestamp wraps a time value.
func Timestamp(t time.Time) types.Value { return types.Timestamp(t) }

// Bytes wraps a byte slice value.
func Bytes(b []byte) types.Value { return types.Bytes(b) }
