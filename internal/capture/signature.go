// Package capture holds the technician-facing update form state: status
// selection, comments, the freehand signature pad and the video toggle.
package capture

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
)

const penRadius = 2

// Point is a pad-local coordinate of a stroke sample.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SignaturePad accumulates freehand strokes and renders them to a PNG on
// save. One pad exists per form; clearing swaps in a fresh pad rather than
// mutating this one.
type SignaturePad struct {
	width   int
	height  int
	strokes [][]Point
	current []Point
	drawing bool
}

func NewSignaturePad(width, height int) *SignaturePad {
	return &SignaturePad{width: width, height: height}
}

// Begin starts a stroke at the given position.
func (p *SignaturePad) Begin(x, y float64) {
	p.drawing = true
	p.current = []Point{{X: x, Y: y}}
}

// Move extends the in-progress stroke. Ignored when no stroke is in progress.
func (p *SignaturePad) Move(x, y float64) {
	if !p.drawing {
		return
	}
	p.current = append(p.current, Point{X: x, Y: y})
}

// End finishes the in-progress stroke.
func (p *SignaturePad) End() {
	if !p.drawing {
		return
	}
	p.drawing = false
	if len(p.current) > 0 {
		p.strokes = append(p.strokes, p.current)
		p.current = nil
	}
}

func (p *SignaturePad) Drawing() bool {
	return p.drawing
}

func (p *SignaturePad) Empty() bool {
	return len(p.strokes) == 0 && len(p.current) == 0
}

// Save rasterizes the accumulated strokes to a PNG and returns it as a
// base64 data URI, the wire format of the signature field. An empty pad
// yields an empty string.
func (p *SignaturePad) Save() string {
	if p.Empty() {
		return ""
	}

	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	strokes := p.strokes
	if len(p.current) > 0 {
		strokes = append(strokes, p.current)
	}
	for _, stroke := range strokes {
		for i := 0; i < len(stroke); i++ {
			if i == 0 {
				p.stamp(img, stroke[i])
				continue
			}
			p.line(img, stroke[i-1], stroke[i])
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func (p *SignaturePad) line(img *image.RGBA, from, to Point) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p.stamp(img, Point{X: from.X + dx*t, Y: from.Y + dy*t})
	}
}

func (p *SignaturePad) stamp(img *image.RGBA, pt Point) {
	cx := int(math.Round(pt.X))
	cy := int(math.Round(pt.Y))
	for y := cy - penRadius; y <= cy+penRadius; y++ {
		for x := cx - penRadius; x <= cx+penRadius; x++ {
			if x < 0 || y < 0 || x >= p.width || y >= p.height {
				continue
			}
			img.Set(x, y, color.Black)
		}
	}
}
