package geom

import "testing"

func TestRandDeterministic(t *testing.T) {
	a, b := NewRand(123), NewRand(123)
	for i := 0; i < 100; i++ {
		if a.NextU64() != b.NextU64() {
			t.Fatalf("streams diverged at step %d", i)
		}
	}
}

func TestRandRangeF(t *testing.T) {
	r := NewRand(99)
	for i := 0; i < 1000; i++ {
		v := r.RangeF(-3, 7)
		if v < -3 || v >= 7 {
			t.Fatalf("value %v outside [-3,7)", v)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Fatalf("got %v", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Fatalf("got %v", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Fatalf("got %v", got)
	}
}
