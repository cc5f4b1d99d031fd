package pool

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices in r.
func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Partition splits [first, last) into at most parts contiguous ranges whose
// lengths differ by at most one. Earlier ranges receive the remainder.
// Empty ranges are omitted, so fewer than parts ranges are returned when the
// interval is shorter than parts.
func Partition(first, last, parts int) []Range {
	n := last - first
	if n <= 0 || parts < 1 {
		return nil
	}
	if parts > n {
		parts = n
	}

	base, rem := n/parts, n%parts
	ranges := make([]Range, 0, parts)

	lo := first
	for i := 0; i < parts; i++ {
		size := base
		if i < rem {
			size++
		}
		ranges = append(ranges, Range{Lo: lo, Hi: lo + size})
		lo += size
	}

	return ranges
}
