package charts

import (
	"math"
	"testing"
)

func TestNiceAxisBoundsWidensDegenerateRange(t *testing.T) {
	lo, hi := niceAxisBounds(10, 10)
	if lo >= hi {
		t.Fatalf("expected widened range; got %v >= %v", lo, hi)
	}
	if lo > 10 || hi < 10 {
		t.Fatalf("range [%v,%v] does not contain the value", lo, hi)
	}
}

func TestNiceAxisBoundsContainsData(t *testing.T) {
	cases := [][2]float64{{5, 123}, {-3.2, 7.9}, {0.00012, 0.00031}, {-15, -2}}
	for _, c := range cases {
		lo, hi := niceAxisBounds(c[0], c[1])
		if lo > c[0] || hi < c[1] {
			t.Fatalf("bounds [%v,%v] do not contain [%v,%v]", lo, hi, c[0], c[1])
		}
	}
}

func TestNiceAxisBoundsNaN(t *testing.T) {
	lo, _ := niceAxisBounds(math.NaN(), 1)
	if !math.IsNaN(lo) {
		t.Fatalf("expected NaN passthrough, got %v", lo)
	}
}

func TestNiceTicksWithinRangeAndLabelled(t *testing.T) {
	lo, hi := niceAxisBounds(1, 9)
	ticks := niceTicks(lo, hi, 6)
	if len(ticks) < 2 {
		t.Fatalf("expected >=2 ticks, got %d", len(ticks))
	}
	for i, tk := range ticks {
		if tk.Label == "" {
			t.Fatalf("empty label at index %d", i)
		}
		if tk.Value < lo-1e-9 || tk.Value > hi+1e-9 {
			t.Fatalf("tick %v outside [%v,%v]", tk.Value, lo, hi)
		}
	}
}

func TestYearTicksAreWholeYears(t *testing.T) {
	ticks := yearTicks(1994.5, 2023.5, 6)
	if len(ticks) < 2 {
		t.Fatalf("expected ticks, got %d", len(ticks))
	}
	for _, tk := range ticks {
		if tk.Value != math.Round(tk.Value) {
			t.Fatalf("non-integer year tick %v", tk.Value)
		}
	}
	// A two-year span must not produce half-year steps.
	short := yearTicks(1994.5, 1996.5, 6)
	for _, tk := range short {
		if tk.Value != math.Round(tk.Value) {
			t.Fatalf("non-integer year tick %v", tk.Value)
		}
	}
}

func TestFormatTickSmallValues(t *testing.T) {
	cases := map[float64]string{
		0:        "0",
		250:      "250",
		12.5:     "12.5",
		0.25:     "0.25",
		0.000123: "0.000123",
	}
	for in, want := range cases {
		if got := formatTick(in); got != want {
			t.Fatalf("formatTick(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFiniteRangeSkipsNaNAndInf(t *testing.T) {
	lo, hi, ok := finiteRange([]float64{math.NaN(), 3, math.Inf(1)}, []float64{-1, math.Inf(-1)})
	if !ok || lo != -1 || hi != 3 {
		t.Fatalf("got lo=%v hi=%v ok=%v", lo, hi, ok)
	}
	if _, _, ok := finiteRange([]float64{math.NaN()}); ok {
		t.Fatalf("expected ok=false for all-NaN input")
	}
}

func TestYearAxisWidensSingleYear(t *testing.T) {
	r, ticks := yearAxis(2009, 2009, 6)
	if r.Min != 2008 || r.Max != 2010 {
		t.Fatalf("range [%v,%v], want [2008,2010]", r.Min, r.Max)
	}
	if ticks[0].Value != r.Min || ticks[len(ticks)-1].Value != r.Max {
		t.Fatalf("ticks %v do not span the range", ticks)
	}
}

func TestSpanTicksCoverRange(t *testing.T) {
	r, ticks := yearAxis(1995, 2023, 6)
	if ticks[0].Value != r.Min || ticks[len(ticks)-1].Value != r.Max {
		t.Fatalf("ticks %v do not span [%v,%v]", ticks, r.Min, r.Max)
	}
	if ticks[0].Label != "" {
		t.Fatalf("edge tick should be unlabelled, got %q", ticks[0].Label)
	}
	lo, hi := niceAxisBounds(1, 9)
	got := spanTicks(niceTicks(lo, hi, 6), lo, hi)
	if got[0].Value != lo || got[len(got)-1].Value != hi {
		t.Fatalf("ticks %v do not span [%v,%v]", got, lo, hi)
	}
}
