package core

// Grow returns buf with length n. The backing array is reused when its
// capacity suffices; otherwise a zeroed slice is allocated and the old
// contents are dropped.
func Grow(buf []float64, n int) []float64 {
	n = max(n, 0)
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}

// Duplicate copies src into every dst and returns the number of samples
// written to each: the shortest of all lengths.
func Duplicate(src []float64, dsts ...[]float64) int {
	n := len(src)
	for _, d := range dsts {
		n = min(n, len(d))
	}
	for _, d := range dsts {
		copy(d[:n], src[:n])
	}
	return n
}
