//go:build rp2040 || rp2350

package strconvx

// Minimal, allocation-aware helpers with strconv-compatible signatures.
// Supported bases: 2..36. Only the integer surface the firmware needs.

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

func Itoa(i int) string { return FormatInt(int64(i), 10) }

func Atoi(s string) (int, error) {
	neg := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	u, err := ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		return int(-int64(u)), nil
	}
	return int(u), nil
}

func FormatInt(i int64, base int) string {
	if i < 0 {
		return "-" + FormatUint(uint64(-i), base)
	}
	return FormatUint(uint64(i), base)
}

func FormatUint(u uint64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	if u == 0 {
		return "0"
	}
	var buf [64]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = digits[u%uint64(base)]
		u /= uint64(base)
	}
	return string(buf[i:])
}

func ParseUint(s string, base, bitSize int) (uint64, error) {
	if base < 2 || base > 36 {
		base = 10
	}
	if bitSize == 0 {
		bitSize = 64
	}
	if len(s) == 0 {
		return 0, errSyntax
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d byte
		switch {
		case '0' <= c && c <= '9':
			d = c - '0'
		case 'a' <= c && c <= 'z':
			d = c - 'a' + 10
		case 'A' <= c && c <= 'Z':
			d = c - 'A' + 10
		default:
			return 0, errSyntax
		}
		if int(d) >= base {
			return 0, errSyntax
		}
		v = v*uint64(base) + uint64(d)
	}
	max := uint64(1)<<uint(bitSize) - 1
	if bitSize == 64 {
		max = ^uint64(0)
	}
	if v > max {
		return max, errRange
	}
	return v, nil
}

type parseError string

func (e parseError) Error() string { return string(e) }

const (
	errSyntax = parseError("strconvx: syntax")
	errRange  = parseError("strconvx: range")
)
