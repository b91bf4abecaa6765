package analytics

import "sort"

// BenjaminiHochberg 多重检验校正，返回与输入同序的校正后 p 值
// adj_(i) = p_(i)·m/i，从最大的 p 往回取单调最小并截断到 1
func BenjaminiHochberg(p []float64) []float64 {
	m := len(p)
	if m == 0 {
		return nil
	}

	idx := make([]int, m)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return p[idx[a]] < p[idx[b]] })

	adj := make([]float64, m)
	minSoFar := 1.0
	for i := m - 1; i >= 0; i-- {
		v := p[idx[i]] * float64(m) / float64(i+1)
		if v < minSoFar {
			minSoFar = v
		}
		if minSoFar > 1 {
			adj[idx[i]] = 1
		} else {
			adj[idx[i]] = minSoFar
		}
	}
	return adj
}
