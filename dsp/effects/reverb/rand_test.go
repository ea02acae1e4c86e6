package reverb

import "testing"

func TestRandSourceDeterministic(t *testing.T) {
	a := NewRandSource(99)
	b := NewRandSource(99)

	for i := 0; i < 64; i++ {
		x, y := a.Uniform(1, 2), b.Uniform(1, 2)
		if x != y {
			t.Fatalf("draw %d: %g != %g", i, x, y)
		}
		if x < 1 || x >= 2 {
			t.Fatalf("draw %d: %g outside [1, 2)", i, x)
		}
	}
}

func TestRandSourceDifferentSeeds(t *testing.T) {
	a := NewRandSource(1)
	b := NewRandSource(2)

	same := true
	for i := 0; i < 16; i++ {
		if a.Uniform(0, 1) != b.Uniform(0, 1) {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical draws")
	}
}

func TestRandSourceEmptyInterval(t *testing.T) {
	if got := NewRandSource(1).Uniform(3, 3); got != 3 {
		t.Fatalf("Uniform(3, 3) = %g, want 3", got)
	}
}
