package analytics

import (
	"math"
	"sort"
)

// MannWhitney 双侧 Mann-Whitney U 检验（带并列校正的正态近似）
// 返回 x 组的 U 统计量和 p 值；样本不足时 p=1
func MannWhitney(x, y []float64) (u, p float64) {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return 0, 1
	}

	combined := make([]float64, 0, n1+n2)
	combined = append(combined, x...)
	combined = append(combined, y...)
	ranks := Ranks(combined)

	// x 组的秩和
	var r1 float64
	for i := 0; i < n1; i++ {
		r1 += ranks[i]
	}
	u = r1 - float64(n1)*float64(n1+1)/2.0

	n := float64(n1 + n2)
	mu := float64(n1) * float64(n2) / 2.0

	// 并列校正项 Σ(t³-t)
	sorted := make([]float64, len(combined))
	copy(sorted, combined)
	sort.Float64s(sorted)
	var tieSum float64
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[i] {
			j++
		}
		t := float64(j - i + 1)
		tieSum += t*t*t - t
		i = j + 1
	}

	variance := float64(n1) * float64(n2) / 12.0 * (n + 1 - tieSum/(n*(n-1)))
	if variance <= 0 {
		// 所有观测值相同，两组无差异
		return u, 1
	}

	z := (u - mu) / math.Sqrt(variance)
	p = math.Erfc(math.Abs(z) / math.Sqrt2)
	return u, p
}
