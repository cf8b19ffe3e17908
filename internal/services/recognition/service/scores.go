package service

import "math"

// argmax returns the first index holding the highest finite score
// ok is false when there is no finite score at all
func argmax(scores []float32) (idx int, top float32, ok bool) {
	idx = -1
	for i, s := range scores {
		f := float64(s)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if idx < 0 || s > top {
			idx, top = i, s
		}
	}
	return idx, top, idx >= 0
}

// unit clamps a model score into [0,1]
func unit(v float32) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return float64(v)
}
