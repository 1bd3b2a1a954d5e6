package enrich

import (
	"fmt"
	"sort"
	"strings"
)

// Method is a multiple-testing correction.
type Method string

// Supported corrections. They follow R p.adjust.
const (
	BH         Method = "BH"
	BY         Method = "BY"
	Bonferroni Method = "bonferroni"
	Holm       Method = "holm"
	Hochberg   Method = "hochberg"
	None       Method = "none"
)

// Methods lists all supported corrections.
var Methods = []Method{BH, BY, Bonferroni, Holm, Hochberg, None}

// ParseMethod converts a name to a Method. "fdr" is an alias of BH.
// Names are case-insensitive.
func ParseMethod(s string) (Method, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "fdr") {
		return BH, nil
	}
	for _, m := range Methods {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown p-value adjustment method '%s'", s)
}

// Adjust returns corrected p-values in the order of ps.
func Adjust(m Method, ps []float64) ([]float64, error) {
	n := len(ps)
	res := make([]float64, n)
	if n == 0 {
		return res, nil
	}
	nf := float64(n)

	switch m {
	case None:
		copy(res, ps)
	case Bonferroni:
		for i, p := range ps {
			res[i] = min(1, nf*p)
		}
	case BH, BY:
		q := 1.0
		if m == BY {
			q = 0
			for i := 1; i <= n; i++ {
				q += 1 / float64(i)
			}
		}
		// descending p, i runs n..1
		o := order(ps, true)
		acc := 1.0
		for k, idx := range o {
			i := float64(n - k)
			acc = min(acc, q*nf/i*ps[idx])
			res[idx] = min(1, acc)
		}
	case Holm:
		o := order(ps, false)
		acc := 0.0
		for k, idx := range o {
			acc = max(acc, (nf-float64(k))*ps[idx])
			res[idx] = min(1, acc)
		}
	case Hochberg:
		o := order(ps, true)
		acc := 1.0
		for k, idx := range o {
			i := float64(k + 1)
			acc = min(acc, i*ps[idx])
			res[idx] = min(1, acc)
		}
	default:
		return nil, fmt.Errorf("unknown p-value adjustment method '%s'", m)
	}
	return res, nil
}

// order returns indices of ps sorted by value, ties keep input order.
func order(ps []float64, desc bool) []int {
	res := make([]int, len(ps))
	for i := range res {
		res[i] = i
	}
	sort.SliceStable(res, func(a, b int) bool {
		if desc {
			return ps[res[a]] > ps[res[b]]
		}
		return ps[res[a]] < ps[res[b]]
	})
	return res
}
