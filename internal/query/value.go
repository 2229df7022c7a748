package query

import "fmt"

// Kind tags the only value types a plan may bind.
type Kind int

const (
	KindString Kind = iota + 1
	KindInt
	KindLong
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	default:
		return "invalid"
	}
}

// Value is a bound parameter. The zero Value is invalid and is rejected by
// the executor.
type Value struct {
	kind Kind
	s    string
	i    int32
	l    int64
}

func String(s string) Value { return Value{kind: KindString, s: s} }

func Int(i int32) Value { return Value{kind: KindInt, i: i} }

func Long(l int64) Value { return Value{kind: KindLong, l: l} }

// ValueOf converts loosely typed input. Anything other than string, int32 or
// int64 (plain int is treated as int64) is reported as unsupported.
func ValueOf(v any) (Value, bool) {
	switch t := v.(type) {
	case string:
		return String(t), true
	case int32:
		return Int(t), true
	case int64:
		return Long(t), true
	case int:
		return Long(int64(t)), true
	default:
		return Value{}, false
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Valid() bool { return v.kind != 0 }

// Any returns the driver argument for the value.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindLong:
		return v.l
	default:
		return nil
	}
}

func (v Value) String() string {
	if !v.Valid() {
		return "<invalid>"
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.Any())
}
