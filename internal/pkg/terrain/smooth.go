// Package terrain derives grades from raw elevation samples along a path.
package terrain

import "math"

// Smooth applies a centered moving average of width 2*window+1.
// Missing samples (nil) are skipped rather than treated as zero; a position
// whose whole window is missing stays NaN.
func Smooth(elev []*float64, window int) []float64 {
	if window < 0 {
		window = 0
	}
	n := len(elev)
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		lo := max(0, i-window)
		hi := min(n-1, i+window)

		var sum float64
		var count int
		for j := lo; j <= hi; j++ {
			if v := elev[j]; v != nil && !math.IsNaN(*v) {
				sum += *v
				count++
			}
		}
		if count == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(count)
	}
	return out
}
