package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 400

	marginLeft   = 60.0
	marginRight  = 24.0
	marginTop    = 48.0
	marginBottom = 64.0
	gridLines    = 5
)

var ErrNoData = errors.New("no data")

var (
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	axisColor       = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	gridColor       = color.RGBA{R: 225, G: 225, B: 225, A: 255}
	seriesColor     = color.RGBA{R: 196, G: 69, B: 105, A: 255}
	textColor       = color.RGBA{R: 30, G: 30, B: 30, A: 255}
)

type Options struct {
	Width  int
	Height int
}

// Renderer draws PNG charts with an embedded Go font. Renders are serialized: the
// font faces keep a glyph cache.
type Renderer struct {
	mu        sync.Mutex
	width     int
	height    int
	labelFace font.Face
	titleFace font.Face
}

type LineChart struct {
	Title  string
	YLabel string
	Labels []string
	// Values may hold nil gaps; the line breaks across them.
	Values []*float64
	YMin   float64
	YMax   float64
}

type BarChart struct {
	Title  string
	YLabel string
	Labels []string
	Values []float64
	YMax   float64
}

func NewRenderer(options Options) (*Renderer, error) {
	if options.Width <= 0 {
		options.Width = DefaultWidth
	}
	if options.Height <= 0 {
		options.Height = DefaultHeight
	}

	parsedFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse chart font: %w", err)
	}
	return &Renderer{
		width:     options.Width,
		height:    options.Height,
		labelFace: newFace(parsedFont, 11),
		titleFace: newFace(parsedFont, 16),
	}, nil
}

func newFace(parsedFont *truetype.Font, size float64) font.Face {
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

type plotArea struct {
	left, top, right, bottom float64
	yMin, yMax               float64
}

func (area plotArea) y(value float64) float64 {
	if area.yMax == area.yMin {
		return area.bottom
	}
	return area.bottom - (value-area.yMin)/(area.yMax-area.yMin)*(area.bottom-area.top)
}

func (renderer *Renderer) frame(title string, yLabel string, yMin float64, yMax float64) (*gg.Context, plotArea) {
	dc := gg.NewContext(renderer.width, renderer.height)
	dc.SetColor(backgroundColor)
	dc.Clear()

	area := plotArea{
		left:   marginLeft,
		top:    marginTop,
		right:  float64(renderer.width) - marginRight,
		bottom: float64(renderer.height) - marginBottom,
		yMin:   yMin,
		yMax:   yMax,
	}

	dc.SetFontFace(renderer.titleFace)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(renderer.width)/2, marginTop/2, 0.5, 0.5)

	dc.SetFontFace(renderer.labelFace)
	dc.SetLineWidth(1)
	for index := 0; index <= gridLines; index++ {
		value := yMin + (yMax-yMin)*float64(index)/gridLines
		y := area.y(value)
		dc.SetColor(gridColor)
		dc.DrawLine(area.left, y, area.right, y)
		dc.Stroke()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(formatTick(value), area.left-8, y, 1, 0.5)
	}

	if yLabel != "" {
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), 14, (area.top+area.bottom)/2)
		dc.DrawStringAnchored(yLabel, 14, (area.top+area.bottom)/2, 0.5, 0.5)
		dc.Pop()
	}

	dc.SetColor(axisColor)
	dc.SetLineWidth(1.5)
	dc.DrawLine(area.left, area.top, area.left, area.bottom)
	dc.DrawLine(area.left, area.bottom, area.right, area.bottom)
	dc.Stroke()
	return dc, area
}

// RenderLine draws a line chart with point markers.
func (renderer *Renderer) RenderLine(chart LineChart) ([]byte, error) {
	if len(chart.Values) == 0 || len(chart.Values) != len(chart.Labels) {
		return nil, ErrNoData
	}
	yMin, yMax := chart.YMin, chart.YMax
	if yMax <= yMin {
		yMin, yMax = valueRange(chart.Values)
	}

	renderer.mu.Lock()
	defer renderer.mu.Unlock()

	dc, area := renderer.frame(chart.Title, chart.YLabel, yMin, yMax)
	step := 0.0
	if len(chart.Values) > 1 {
		step = (area.right - area.left - 20) / float64(len(chart.Values)-1)
	}
	x := func(index int) float64 {
		if len(chart.Values) == 1 {
			return (area.left + area.right) / 2
		}
		return area.left + 10 + step*float64(index)
	}

	dc.SetColor(seriesColor)
	dc.SetLineWidth(2)
	drawing := false
	for index, value := range chart.Values {
		if value == nil {
			if drawing {
				dc.Stroke()
			}
			drawing = false
			continue
		}
		if !drawing {
			dc.MoveTo(x(index), area.y(*value))
			drawing = true
			continue
		}
		dc.LineTo(x(index), area.y(*value))
	}
	if drawing {
		dc.Stroke()
	}
	for index, value := range chart.Values {
		if value == nil {
			continue
		}
		dc.DrawCircle(x(index), area.y(*value), 3)
		dc.Fill()
	}

	dc.SetColor(textColor)
	every := labelStride(len(chart.Labels), area.right-area.left)
	for index, label := range chart.Labels {
		if index%every != 0 {
			continue
		}
		drawSlantedLabel(dc, label, x(index), area.bottom+8)
	}
	return encode(dc)
}

// RenderBars draws one vertical bar per label.
func (renderer *Renderer) RenderBars(chart BarChart) ([]byte, error) {
	if len(chart.Values) == 0 || len(chart.Values) != len(chart.Labels) {
		return nil, ErrNoData
	}
	yMax := chart.YMax
	if yMax <= 0 {
		for _, value := range chart.Values {
			yMax = math.Max(yMax, value)
		}
		yMax = niceCeiling(yMax)
	}

	renderer.mu.Lock()
	defer renderer.mu.Unlock()

	dc, area := renderer.frame(chart.Title, chart.YLabel, 0, yMax)
	slot := (area.right - area.left) / float64(len(chart.Values))
	barWidth := slot * 0.6
	for index, value := range chart.Values {
		left := area.left + slot*float64(index) + (slot-barWidth)/2
		top := area.y(math.Min(value, yMax))
		dc.SetColor(seriesColor)
		dc.DrawRectangle(left, top, barWidth, area.bottom-top)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(formatTick(value), left+barWidth/2, top-6, 0.5, 0)
	}

	every := labelStride(len(chart.Labels), area.right-area.left)
	for index, label := range chart.Labels {
		if index%every != 0 {
			continue
		}
		center := area.left + slot*float64(index) + slot/2
		if len(chart.Labels) > 8 {
			drawSlantedLabel(dc, label, center, area.bottom+8)
			continue
		}
		dc.DrawStringAnchored(label, center, area.bottom+16, 0.5, 0.5)
	}
	return encode(dc)
}

func drawSlantedLabel(dc *gg.Context, label string, x float64, y float64) {
	dc.Push()
	dc.RotateAbout(gg.Radians(-35), x, y)
	dc.DrawStringAnchored(label, x, y, 1, 1)
	dc.Pop()
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode chart png: %w", err)
	}
	return buf.Bytes(), nil
}

func valueRange(values []*float64) (float64, float64) {
	low, high := math.Inf(1), math.Inf(-1)
	for _, value := range values {
		if value == nil {
			continue
		}
		low = math.Min(low, *value)
		high = math.Max(high, *value)
	}
	if math.IsInf(low, 1) {
		return 0, 1
	}
	if low == high {
		return math.Floor(low) - 1, math.Ceil(high) + 1
	}
	return math.Floor(low), math.Ceil(high)
}

func niceCeiling(value float64) float64 {
	if value <= 0 {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(value)))
	for _, factor := range []float64{1, 2, 2.5, 5, 10} {
		if candidate := factor * magnitude; candidate >= value {
			return candidate
		}
	}
	return 10 * magnitude
}

// labelStride keeps x labels roughly 40px apart.
func labelStride(count int, width float64) int {
	capacity := int(width / 40)
	if capacity < 1 || count <= capacity {
		return 1
	}
	return int(math.Ceil(float64(count) / float64(capacity)))
}

func formatTick(value float64) string {
	if value == math.Trunc(value) {
		return strconv.FormatFloat(value, 'f', 0, 64)
	}
	return strconv.FormatFloat(value, 'f', 1, 64)
}
