package analytics

import "testing"

func TestMannWhitneySeparatedGroups(t *testing.T) {
	// 完全分离的两组：U=0，p ≈ 0.0495
	u, p := MannWhitney([]float64{1, 2, 3}, []float64{4, 5, 6})
	if u != 0 {
		t.Errorf("U = %v, want 0", u)
	}
	if !approx(p, 0.0495, 1e-3) {
		t.Errorf("p = %v, want ≈0.0495", p)
	}
}

func TestMannWhitneyIdenticalGroups(t *testing.T) {
	// 两组分布相同：U 落在期望值上，p=1
	u, p := MannWhitney([]float64{1, 2, 3}, []float64{1, 2, 3})
	if u != 4.5 {
		t.Errorf("U = %v, want 4.5", u)
	}
	if p != 1 {
		t.Errorf("p = %v, want 1", p)
	}
}

func TestMannWhitneyAllEqual(t *testing.T) {
	// 全并列让方差退化为零，此时直接判定无差异
	_, p := MannWhitney([]float64{4, 4, 4}, []float64{4, 4})
	if p != 1 {
		t.Errorf("p = %v, want 1", p)
	}
}

func TestMannWhitneyEmptyGroup(t *testing.T) {
	u, p := MannWhitney(nil, []float64{1, 2})
	if u != 0 || p != 1 {
		t.Errorf("MannWhitney = %v/%v, want 0/1", u, p)
	}
}

func TestMannWhitneySymmetric(t *testing.T) {
	// 交换两组 p 值不变
	_, p1 := MannWhitney([]float64{1, 2, 3, 7}, []float64{4, 5, 6})
	_, p2 := MannWhitney([]float64{4, 5, 6}, []float64{1, 2, 3, 7})
	if !approx(p1, p2, 1e-12) {
		t.Errorf("p values differ after swapping groups: %v vs %v", p1, p2)
	}
}
