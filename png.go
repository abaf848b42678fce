package main

import (
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"formedit/form"
)

const pngPadding = 20.0

// pngRenderer draws a form the way the target runtime lays it out: pixel
// coordinates, label colors, scaled font sizes and line spacing.
type pngRenderer struct {
	ttf   *truetype.Font
	faces map[int]font.Face
}

func newPNGRenderer() (*pngRenderer, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse font")
	}
	return &pngRenderer{ttf: ttf, faces: make(map[int]font.Face)}, nil
}

func (r *pngRenderer) face(size int) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(r.ttf, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[size] = f
	return f
}

type pngBox struct {
	x, y, w, h float64
}

// boxOf returns the rendered extent of e in form pixels.
func (r *pngRenderer) boxOf(dc *gg.Context, e form.Element, s form.Scale) pngBox {
	y := s.Y(e)
	switch e.Kind {
	case form.KindLabel:
		size := s.FontSize(e)
		dc.SetFontFace(r.face(size))
		w, _ := dc.MeasureString(e.Content)
		return pngBox{x: e.X, y: y, w: w, h: float64(size) * 1.2}
	case form.KindCheckbox:
		return pngBox{x: e.X, y: y, w: 13, h: 13}
	default:
		return pngBox{x: e.X, y: y, w: readonlyWidthPx, h: 20}
	}
}

// Render writes a PNG preview of f under s.
func (r *pngRenderer) Render(w io.Writer, f *form.Form, s form.Scale) error {
	if len(f.Elements) == 0 && f.Caption == "" {
		return errors.New("nothing to export")
	}

	measure := gg.NewContext(1, 1)
	minX, minY := 0.0, 0.0
	maxX, maxY := 200.0, 40.0
	boxes := make([]pngBox, len(f.Elements))
	for i, e := range f.Elements {
		b := r.boxOf(measure, e, s)
		boxes[i] = b
		minX = math.Min(minX, b.x)
		minY = math.Min(minY, b.y)
		maxX = math.Max(maxX, b.x+b.w)
		maxY = math.Max(maxY, b.y+b.h)
	}

	captionHeight := 0.0
	if f.Caption != "" {
		captionHeight = 24
	}
	width := int(maxX-minX+2*pngPadding) + 1
	height := int(maxY-minY+2*pngPadding+captionHeight) + 1
	offX := pngPadding - minX
	offY := pngPadding + captionHeight - minY

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	if f.Caption != "" {
		dc.SetFontFace(r.face(16))
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(f.Caption, pngPadding, pngPadding, 0, 0.8)
	}

	for i, e := range f.Elements {
		b := boxes[i]
		x, y := b.x+offX, b.y+offY
		switch e.Kind {
		case form.KindLabel:
			dc.SetFontFace(r.face(s.FontSize(e)))
			dc.SetColor(form.ParseColor(e.Color))
			// ypos is the top of the text box
			dc.DrawStringAnchored(e.Content, x, y, 0, 0.8)
		case form.KindCheckbox:
			dc.SetColor(color.Black)
			dc.SetLineWidth(1)
			dc.DrawRectangle(x+0.5, y+0.5, b.w, b.h)
			dc.Stroke()
		default:
			dc.SetHexColor("#f0f0f0")
			dc.DrawRectangle(x, y, b.w, b.h)
			dc.FillPreserve()
			dc.SetHexColor("#cccccc")
			dc.SetLineWidth(1)
			dc.Stroke()
			dc.SetFontFace(r.face(12))
			dc.SetHexColor("#757575")
			dc.DrawStringAnchored(e.Refvar, x+4, y+b.h/2, 0, 0.35)
		}
	}
	return errors.Wrap(dc.EncodePNG(w), "encode png")
}
