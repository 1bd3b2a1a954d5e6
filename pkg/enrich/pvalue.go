package enrich

// Tails returns add-one smoothed empirical tail probabilities of obs
// against a null distribution:
//
//	upper = (#{d >= obs} + 1) / (N + 1)
//	lower = (#{d <= obs} + 1) / (N + 1)
func Tails(obs int, dist []int32) (upper, lower float64) {
	var ge, le int
	for _, d := range dist {
		v := int(d)
		if v >= obs {
			ge++
		}
		if v <= obs {
			le++
		}
	}
	n := float64(len(dist) + 1)
	return float64(ge+1) / n, float64(le+1) / n
}

// TwoSided returns the two-sided empirical p-value 2*min(upper, lower),
// clamped to 1.
func TwoSided(obs int, dist []int32) float64 {
	upper, lower := Tails(obs, dist)
	return min(1, 2*min(upper, lower))
}
