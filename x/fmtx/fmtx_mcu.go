//go:build rp2040 || rp2350

package fmtx

import (
	"io"

	"motioncode-go/x/strconvx"
)

// DefaultOutput is used by Printf on MCU builds. Set it from the platform
// bootstrap (e.g. a UART writer).
var DefaultOutput io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// Tiny formatter subset: %s %q %d %x %v %%, enough for the report feed and
// boot logging without pulling fmt's reflection into the MCU image.

func Sprintf(format string, a ...any) string {
	var b []byte
	ai := 0
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			b = append(b, c)
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			b = append(b, '%')
			i += 2
			continue
		}
		i++
		if i >= len(format) || ai >= len(a) {
			break
		}
		verb := format[i]
		i++
		arg := a[ai]
		ai++
		switch verb {
		case 's', 'v', 'q':
			s := stringify(arg)
			if verb == 'q' {
				b = append(b, '"')
				b = append(b, s...)
				b = append(b, '"')
			} else {
				b = append(b, s...)
			}
		case 'd':
			b = append(b, strconvx.FormatInt(toI64(arg), 10)...)
		case 'x':
			b = append(b, strconvx.FormatUint(toU64(arg), 16)...)
		default:
			b = append(b, '%', verb)
		}
	}
	return string(b)
}

func Printf(format string, a ...any) (int, error) {
	return io.WriteString(DefaultOutput, Sprintf(format, a...))
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return io.WriteString(w, Sprintf(format, a...))
}

func Errorf(format string, a ...any) error {
	return &stringError{Sprintf(format, a...)}
}

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case error:
		return x.Error()
	case interface{ String() string }:
		return x.String()
	case int, int8, int16, int32, int64:
		return strconvx.FormatInt(toI64(v), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconvx.FormatUint(toU64(v), 10)
	default:
		return "<unk>"
	}
}

func toI64(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint, uint8, uint16, uint32, uint64:
		return int64(toU64(t))
	default:
		return 0
	}
}

func toU64(v any) uint64 {
	switch t := v.(type) {
	case uint:
		return uint64(t)
	case uint8:
		return uint64(t)
	case uint16:
		return uint64(t)
	case uint32:
		return uint64(t)
	case uint64:
		return t
	case int:
		return uint64(t)
	case int32:
		return uint64(t)
	case int64:
		return uint64(t)
	default:
		return 0
	}
}
