package mathx

import "golang.org/x/exp/constraints"

// IsClose reports |v - ref| <= tol. Used for analog band membership where the
// tolerance is inclusive on both sides. Signed only: the difference must not
// wrap.
func IsClose[T constraints.Signed](v, ref, tol T) bool {
	d := v - ref
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// Abs for signed integers.
func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
