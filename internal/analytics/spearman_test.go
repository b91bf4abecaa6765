package analytics

import (
	"math"
	"reflect"
	"testing"
)

func approx(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestRanks(t *testing.T) {
	got := Ranks([]float64{30, 10, 20})
	if !reflect.DeepEqual(got, []float64{3, 1, 2}) {
		t.Errorf("Ranks = %v, want [3 1 2]", got)
	}
}

func TestRanksTiesAverage(t *testing.T) {
	// 平手组取平均秩
	got := Ranks([]float64{10, 20, 20, 30})
	if !reflect.DeepEqual(got, []float64{1, 2.5, 2.5, 4}) {
		t.Errorf("Ranks = %v, want [1 2.5 2.5 4]", got)
	}
}

func TestPearsonPerfectLinear(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{2, 4, 6, 8}
	if r := Pearson(x, y); !approx(r, 1, 1e-12) {
		t.Errorf("Pearson = %v, want 1", r)
	}
}

func TestPearsonZeroVariance(t *testing.T) {
	// 常数序列没有相关可言
	if r := Pearson([]float64{5, 5, 5}, []float64{1, 2, 3}); r != 0 {
		t.Errorf("Pearson = %v, want 0", r)
	}
}

func TestSpearmanMonotonic(t *testing.T) {
	// 单调非线性：秩相关满分，皮尔逊则到不了 1
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{1, 4, 9, 16, 25}

	rho, p := Spearman(x, y)
	if !approx(rho, 1, 1e-12) {
		t.Errorf("rho = %v, want 1", rho)
	}
	// z = 1·sqrt(4) = 2, p = erfc(2/sqrt2) ≈ 0.0455
	if !approx(p, 0.0455, 1e-3) {
		t.Errorf("p = %v, want ≈0.0455", p)
	}
}

func TestSpearmanInverse(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{25, 16, 9, 4, 1}
	rho, _ := Spearman(x, y)
	if !approx(rho, -1, 1e-12) {
		t.Errorf("rho = %v, want -1", rho)
	}
}

func TestSpearmanTooFewSamples(t *testing.T) {
	rho, p := Spearman([]float64{1, 2}, []float64{3, 4})
	if rho != 0 || p != 1 {
		t.Errorf("Spearman = %v/%v, want 0/1", rho, p)
	}
}
