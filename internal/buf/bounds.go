package buf

import (
	"math"

	"github.com/cockroachdb/errors"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative sizes, returning ok = false when
// either operand is negative or the product would overflow int.
// Used for count * elementSize in allocation requests.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// CeilDiv returns ceil(n / d) for n >= 0 and d > 0.
//
// Example:
//
//	CeilDiv(44, 64)  = 1
//	CeilDiv(64, 64)  = 1
//	CeilDiv(158, 64) = 3
func CeilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)/d + 1
}

// RequestBytes computes count*elementSize + header, the total byte footprint of
// an allocation request including its metadata prefix.
func RequestBytes(elementSize, count, header int) (int, error) {
	if elementSize < 0 {
		return 0, errors.Newf("negative element size: %d", elementSize)
	}
	if count < 0 {
		return 0, errors.Newf("negative count: %d", count)
	}
	payload, ok := MulOverflowSafe(count, elementSize)
	if !ok {
		return 0, errors.Newf("overflow: count=%d * elemSize=%d", count, elementSize)
	}
	total, ok := AddOverflowSafe(payload, header)
	if !ok {
		return 0, errors.Newf("overflow: payload=%d + header=%d", payload, header)
	}
	return total, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end:end], true
}
