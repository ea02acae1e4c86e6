package core

import (
	"math"
	"testing"
)

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		name  string
		phase float64
		want  float64
	}{
		{name: "zero", phase: 0, want: 0},
		{name: "inside", phase: 1, want: 1},
		{name: "one cycle", phase: TwoPi, want: 0},
		{name: "above", phase: TwoPi + 0.5, want: 0.5},
		{name: "negative", phase: -0.5, want: TwoPi - 0.5},
		{name: "many cycles", phase: 7*TwoPi + 0.25, want: 0.25},
		{name: "tiny negative", phase: -1e-18, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapPhase(tt.phase)
			if got < 0 || got >= TwoPi {
				t.Fatalf("WrapPhase(%v) = %v outside [0, 2π)", tt.phase, got)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("WrapPhase(%v) = %v, want %v", tt.phase, got, tt.want)
			}
		})
	}
}

func TestTruncateSample(t *testing.T) {
	tests := []struct {
		in   float64
		want int32
	}{
		{in: 0.999, want: 0},
		{in: -0.999, want: 0},
		{in: 10.7, want: 10},
		{in: -10.7, want: -10},
		{in: 1e12, want: math.MaxInt32},
		{in: -1e12, want: math.MinInt32},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: math.MaxInt32},
	}

	for _, tt := range tests {
		if got := TruncateSample(tt.in); got != tt.want {
			t.Fatalf("TruncateSample(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if math.Abs(db+6) > 1e-10 {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
	if got := DBToLinear(0); got != 1 {
		t.Fatalf("DBToLinear(0) = %v, want 1", got)
	}
}
