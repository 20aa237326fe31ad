package core

import "testing"

func TestGrowReusesCapacity(t *testing.T) {
	buf := make([]float64, 4, 8)
	buf[0] = 3

	out := Grow(buf, 6)
	if len(out) != 6 || cap(out) != 8 {
		t.Fatalf("len/cap = %d/%d, want 6/8", len(out), cap(out))
	}
	if out[0] != 3 {
		t.Fatalf("reused storage lost contents: %v", out)
	}
}

func TestGrowAllocates(t *testing.T) {
	out := Grow([]float64{1, 2}, 16)
	if len(out) != 16 {
		t.Fatalf("len = %d, want 16", len(out))
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want zeroed storage", i, v)
		}
	}
	if got := Grow(out, -3); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestDuplicate(t *testing.T) {
	a := make([]float64, 3)
	b := make([]float64, 2)

	n := Duplicate([]float64{1, 2, 3}, a, b)
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if a[0] != 1 || a[1] != 2 || a[2] != 0 || b[0] != 1 || b[1] != 2 {
		t.Fatalf("a = %v, b = %v", a, b)
	}
	if Duplicate([]float64{1}) != 1 {
		t.Fatal("no destinations must report len(src)")
	}
}
