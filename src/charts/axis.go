package charts

import (
	"fmt"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		pad := math.Abs(min) * 0.1
		if pad == 0 {
			pad = 1
		}
		min, max = min-pad, max+pad
	}
	span := max - min
	// 5% margin on both sides
	pad := span * 0.05
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks generates about n tick marks between [min, max] using 1/2/2.5/5 steps.
func niceTicks(min, max float64, n int) []chart.Tick {
	return stepTicks(min, max, n, []float64{1, 2, 2.5, 5, 10}, 0, formatTick)
}

// yearTicks is niceTicks restricted to whole-year steps.
func yearTicks(min, max float64, n int) []chart.Tick {
	return stepTicks(min, max, n, []float64{1, 2, 5, 10}, 1, func(v float64) string {
		return strconv.Itoa(int(math.Round(v)))
	})
}

func stepTicks(min, max float64, n int, candidates []float64, minStep float64, label func(float64) string) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	if bestStep < minStep {
		bestStep = minStep
	}
	start := math.Ceil(min/bestStep-1e-9) * bestStep
	ticks := []chart.Tick{}
	for i := 0; ; i++ {
		v := start + float64(i)*bestStep
		if v > max+bestStep*1e-9 {
			break
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: label(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	case av >= 0.01:
		return fmt.Sprintf("%.2f", v)
	default:
		// Intensities and per-capita energy are tiny; keep three significant digits.
		return strconv.FormatFloat(v, 'g', 3, 64)
	}
}

// finiteRange returns the min and max of the finite values, ok=false when there are none.
func finiteRange(vals ...[]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, vs := range vals {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

// axisRange builds a padded continuous range and matching ticks for [lo,hi].
func axisRange(lo, hi float64, n int) (*chart.ContinuousRange, []chart.Tick) {
	a, b := niceAxisBounds(lo, hi)
	return &chart.ContinuousRange{Min: a, Max: b}, spanTicks(niceTicks(a, b, n), a, b)
}

// yearAxis covers [first,last] with half a year of slack; a single year gets one year either side.
func yearAxis(first, last int, n int) (*chart.ContinuousRange, []chart.Tick) {
	min, max := float64(first)-0.5, float64(last)+0.5
	if first == last {
		min, max = float64(first)-1, float64(last)+1
	}
	return &chart.ContinuousRange{Min: min, Max: max}, spanTicks(yearTicks(min, max, n), min, max)
}

// spanTicks adds unlabelled ticks at min and max when the labelled ones fall short.
// go-chart resets an axis range to the extent of its ticks.
func spanTicks(ticks []chart.Tick, min, max float64) []chart.Tick {
	const eps = 1e-9
	if len(ticks) == 0 || ticks[0].Value > min+eps {
		ticks = append([]chart.Tick{{Value: min}}, ticks...)
	}
	if ticks[len(ticks)-1].Value < max-eps {
		ticks = append(ticks, chart.Tick{Value: max})
	}
	return ticks
}
