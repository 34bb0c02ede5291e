package analytics

import "math"

// percent returns round(num/den*100), or 0 when den is not positive.
func percent(num, den int) int {
	if den <= 0 {
		return 0
	}
	return clampPct(int(math.Round(float64(num) / float64(den) * 100)))
}

func clampPct(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// roundMean returns the rounded arithmetic mean, 0 for an empty slice.
func roundMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
