// Package charts renders the trend, decoupling scatter and elasticity bar charts as PNG files.
package charts

import (
	"image"
	"image/draw"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/analysis"
)

// Panel is the pixel size of one chart cell.
type Panel struct {
	Width  int
	Height int
}

var seriesColors = []drawing.Color{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

func seriesColor(i int) drawing.Color { return seriesColors[i%len(seriesColors)] }

var gridStyle = chart.Style{StrokeColor: drawing.Color{R: 220, G: 220, B: 220, A: 255}, StrokeWidth: 1}

var panelPadding = chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 12}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{StrokeColor: col, StrokeWidth: 2}
}

// lonePointStyle marks a country with a single year, which has no line to draw.
func lonePointStyle(col drawing.Color) chart.Style {
	st := pointStyle(col)
	st.DotWidth = 5
	return st
}

// RenderTrendGrid draws one line chart per pivot (one line per country, years on x) in a
// two-column grid and fills the next free cell with the shared legend.
func RenderTrendGrid(pivots []analysis.PivotTable, title string, p Panel) image.Image {
	panels := make([]image.Image, 0, len(pivots)+1)
	var countries []string
	for _, pt := range pivots {
		panels = append(panels, trendPanel(pt, p))
		if len(pt.Countries) > len(countries) {
			countries = pt.Countries
		}
	}
	panels = append(panels, legendPanel(countries, p))
	return grid(title, 2, panels)
}

func trendPanel(pt analysis.PivotTable, p Panel) image.Image {
	if len(pt.Years) == 0 {
		return placeholder(p.Width, p.Height, pt.Metric.Name+": no data")
	}
	years := make([]float64, len(pt.Years))
	for i, y := range pt.Years {
		years[i] = float64(y)
	}
	var series []chart.Series
	var all [][]float64
	for j, country := range pt.Countries {
		var xs, ys []float64
		for i, v := range pt.Column(country) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			xs = append(xs, years[i])
			ys = append(ys, v)
		}
		if len(xs) == 0 {
			continue
		}
		all = append(all, ys)
		style := lineStyle(seriesColor(j))
		if len(xs) == 1 {
			style = lonePointStyle(seriesColor(j))
		}
		series = append(series, chart.ContinuousSeries{Name: country, XValues: xs, YValues: ys, Style: style})
	}
	lo, hi, ok := finiteRange(all...)
	if !ok {
		return placeholder(p.Width, p.Height, pt.Metric.Name+": no data")
	}
	yRange, yTicks := axisRange(lo, hi, 6)
	xRange, xTicks := yearAxis(pt.Years[0], pt.Years[len(pt.Years)-1], 6)

	ch := chart.Chart{
		Title:      pt.Metric.Name,
		Width:      p.Width,
		Height:     p.Height,
		Background: chart.Style{Padding: panelPadding},
		XAxis: chart.XAxis{
			Name:           "Year",
			Range:          xRange,
			Ticks:          xTicks,
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           pt.Metric.Unit,
			Range:          yRange,
			Ticks:          yTicks,
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		Series: series,
	}
	return renderPNG(ch, pt.Metric.Name, p.Width, p.Height)
}

// legendPanel lists each country next to its line color.
func legendPanel(countries []string, p Panel) image.Image {
	img := blank(p.Width, p.Height)
	const lineH = 22
	top := p.Height/2 - len(countries)*lineH/2
	left := p.Width/2 - 50
	for i, c := range countries {
		y := top + i*lineH + lineH/2
		sw := image.Rect(left, y-1, left+28, y+2)
		draw.Draw(img, sw, image.NewUniform(seriesColor(i)), image.Point{}, draw.Src)
		drawText(img, c, left+38, y+5, black, false)
	}
	return img
}
