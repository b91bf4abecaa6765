package analytics

import (
	"math"
	"sort"
)

// Ranks 返回序列的秩（从 1 开始），平手取平均秩
func Ranks(x []float64) []float64 {
	n := len(x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && x[idx[j+1]] == x[idx[i]] {
			j++
		}
		// i..j 为平手组，秩取平均
		avg := (float64(i) + float64(j)) / 2.0 + 1.0
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// Pearson 皮尔逊相关系数；方差为零或长度不足时返回 0
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n < 2 || n != len(y) {
		return 0
	}
	var sx, sy float64
	for i := 0; i < n; i++ {
		sx += x[i]
		sy += y[i]
	}
	mx, my := sx/float64(n), sy/float64(n)

	var xy, x2, y2 float64
	for i := 0; i < n; i++ {
		dx, dy := x[i]-mx, y[i]-my
		xy += dx * dy
		x2 += dx * dx
		y2 += dy * dy
	}
	if x2 == 0 || y2 == 0 {
		return 0
	}
	r := xy / (math.Sqrt(x2) * math.Sqrt(y2))
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Spearman 斯皮尔曼秩相关：对秩做皮尔逊
// p 值用大样本正态近似 z = rho·sqrt(n-1)，数据集电影数以万计，近似足够
func Spearman(x, y []float64) (rho, p float64) {
	n := len(x)
	if n < 3 || n != len(y) {
		return 0, 1
	}
	rho = Pearson(Ranks(x), Ranks(y))
	z := rho * math.Sqrt(float64(n-1))
	p = math.Erfc(math.Abs(z) / math.Sqrt2)
	return rho, p
}
