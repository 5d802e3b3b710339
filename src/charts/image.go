package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/logging"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

const titleBand = 30

type renderer interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// renderPNG renders c and decodes the result; any failure yields a placeholder panel.
func renderPNG(c renderer, name string, w, h int) image.Image {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		logging.Warnf("[charts] %s render error: %v; using placeholder", name, err)
		return placeholder(w, h, name+": no data")
	}
	img, err := png.Decode(&buf)
	if err != nil {
		logging.Warnf("[charts] %s decode error: %v; using placeholder", name, err)
		return placeholder(w, h, name+": no data")
	}
	return img
}

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

func placeholder(w, h int, text string) image.Image {
	img := blank(w, h)
	drawText(img, text, w/2, h/2, black, true)
	return img
}

// drawText writes text with the 7x13 bitmap face. With center set, (x,y) is the middle of the line.
func drawText(dst draw.Image, text string, x, y int, col color.Color, center bool) {
	if strings.TrimSpace(text) == "" {
		return
	}
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	if center {
		x -= dr.MeasureString(text).Ceil() / 2
		y += face.Metrics().Ascent.Ceil() / 2
	}
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}

// grid places panels row-major into a cols-wide grid under a title band.
// Panels are assumed to share the size of the first one; nil cells stay white.
func grid(title string, cols int, panels []image.Image) image.Image {
	if cols < 1 {
		cols = 1
	}
	var pw, ph int
	for _, p := range panels {
		if p != nil {
			pw, ph = p.Bounds().Dx(), p.Bounds().Dy()
			break
		}
	}
	rows := (len(panels) + cols - 1) / cols
	if rows == 0 || pw == 0 {
		return placeholder(400, 200, title)
	}
	out := blank(cols*pw, rows*ph+titleBand)
	drawText(out, title, out.Bounds().Dx()/2, titleBand/2, black, true)
	for i, p := range panels {
		if p == nil {
			continue
		}
		at := image.Pt((i%cols)*pw, titleBand+(i/cols)*ph)
		draw.Draw(out, image.Rectangle{Min: at, Max: at.Add(image.Pt(pw, ph))}, p, p.Bounds().Min, draw.Src)
	}
	return out
}

// savePNG encodes img to path, creating the parent directory.
func savePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
