package charts

import (
	"image"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/analysis"
)

const (
	gdpVariationLabel    = "GDP Variation[%]"
	energyVariationLabel = "Energy Variation[%]"
)

// black, blue, green, yellow
var scatterColors = []drawing.Color{
	{A: 255},
	{B: 255, A: 255},
	{G: 128, A: 255},
	{R: 191, G: 191, A: 255},
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    4,
		DotColor:    col,
	}
}

var diagonalStyle = chart.Style{
	StrokeColor:     drawing.ColorRed,
	StrokeWidth:     2,
	StrokeDashArray: []float64{6, 4},
}

// RenderScatterGrid plots energy against GDP percent change, one panel per country in the
// given order, two panels per row. Each panel carries the y = x reference line.
func RenderScatterGrid(rows []analysis.VariationRecord, countries []string, title string, p Panel) image.Image {
	panels := make([]image.Image, len(countries))
	for i, c := range countries {
		panels[i] = scatterPanel(analysis.ForCountry(rows, c), c, scatterColors[i%len(scatterColors)], p)
	}
	return grid(title, 2, panels)
}

func scatterPanel(rows []analysis.VariationRecord, country string, col drawing.Color, p Panel) image.Image {
	var xs, ys []float64
	for _, r := range rows {
		if !finite(r.GDPVariationPct) || !finite(r.EnergyVariationPct) {
			continue
		}
		xs = append(xs, r.GDPVariationPct)
		ys = append(ys, r.EnergyVariationPct)
	}
	if len(xs) == 0 {
		return placeholder(p.Width, p.Height, country+": no data")
	}
	xlo, xhi, _ := finiteRange(xs)
	ylo, yhi, _ := finiteRange(ys)
	xRange, xTicks := axisRange(xlo, xhi, 6)
	yRange, yTicks := axisRange(ylo, yhi, 6)

	series := []chart.Series{}
	if d, ok := diagonal(xRange, yRange); ok {
		series = append(series, d)
	}
	series = append(series, chart.ContinuousSeries{Name: country, XValues: xs, YValues: ys, Style: pointStyle(col)})

	ch := chart.Chart{
		Title:      country,
		Width:      p.Width,
		Height:     p.Height,
		Background: chart.Style{Padding: panelPadding},
		XAxis: chart.XAxis{
			Name:           gdpVariationLabel,
			Range:          xRange,
			Ticks:          xTicks,
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           energyVariationLabel,
			Range:          yRange,
			Ticks:          yTicks,
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		Series: series,
	}
	return renderPNG(ch, country, p.Width, p.Height)
}

// diagonal clips y = x to the visible box; ok is false when the line misses it.
func diagonal(x, y *chart.ContinuousRange) (chart.ContinuousSeries, bool) {
	lo := math.Max(x.Min, y.Min)
	hi := math.Min(x.Max, y.Max)
	if hi <= lo {
		return chart.ContinuousSeries{}, false
	}
	return chart.ContinuousSeries{
		Name:    "y = x",
		XValues: []float64{lo, hi},
		YValues: []float64{lo, hi},
		Style:   diagonalStyle,
	}, true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
