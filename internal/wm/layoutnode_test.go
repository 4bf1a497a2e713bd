package wm

import "testing"

func TestNormalizeOrderAllNilFocusLast(t *testing.T) {
	w1, w2, w3 := WindowID(1), WindowID(2), WindowID(3)
	records := []Record{{Window: w1}, {Window: w2}, {Window: w3}}
	out := NormalizeOrder(records, &w3)

	orders := make(map[WindowID]int)
	for _, r := range out {
		orders[r.Window] = *r.Order
	}

	// focused record must have the highest order (property 6).
	if orders[w3] != 2 {
		t.Fatalf("focused window order = %d, want 2 (highest of 0..2)", orders[w3])
	}

	// orders must be a permutation of 0..n-1.
	seen := map[int]bool{}
	for _, o := range orders {
		seen[o] = true
	}
	for i := 0; i < len(records); i++ {
		if !seen[i] {
			t.Fatalf("orders %v are not a permutation of 0..%d", orders, len(records)-1)
		}
	}
}

func TestNormalizeOrderPreservesSliceOrder(t *testing.T) {
	w1, w2 := WindowID(1), WindowID(2)
	records := []Record{{Window: w2}, {Window: w1}}
	out := NormalizeOrder(records, nil)
	if out[0].Window != w2 || out[1].Window != w1 {
		t.Fatalf("NormalizeOrder must not reorder the slice, got %+v", out)
	}
}

func TestNormalizeOrderKeepsExistingRelativeRank(t *testing.T) {
	w1, w2, w3 := WindowID(1), WindowID(2), WindowID(3)
	records := []Record{
		{Window: w1, Order: intPtr(5)},
		{Window: w2, Order: intPtr(1)},
		{Window: w3}, // new window, no order yet
	}
	out := NormalizeOrder(records, nil)
	byWindow := map[WindowID]int{}
	for _, r := range out {
		byWindow[r.Window] = *r.Order
	}
	if byWindow[w2] >= byWindow[w1] {
		t.Fatalf("w2 (order 1) should still rank below w1 (order 5): %v", byWindow)
	}
}
