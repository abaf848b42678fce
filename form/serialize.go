package form

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultOutputName is the file name exported forms are saved under.
const DefaultOutputName = "updated_form.xml"

// Scale is the display transform applied at export and render time.
// It is never folded back into element data.
type Scale struct {
	Font float64
	Line float64
}

// Identity is the scale that leaves elements unchanged.
var Identity = Scale{Font: 1, Line: 1}

func (s Scale) normalize() Scale {
	if s.Font <= 0 || !finite(s.Font) {
		s.Font = 1
	}
	if s.Line <= 0 || !finite(s.Line) {
		s.Line = 1
	}
	return s
}

// FontSize returns the effective font size of e under s.
func (s Scale) FontSize(e Element) int {
	n := int(math.Round(float64(e.EffectiveFontSize()) * s.normalize().Font))
	if n < 1 {
		n = 1
	}
	return n
}

// Y returns the rendered y coordinate of e under s.
func (s Scale) Y(e Element) float64 {
	return e.Y * s.normalize().Line
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five XML special characters with entities.
func Escape(s string) string { return xmlEscaper.Replace(s) }

// Marshal returns the XML document for f under scale s.
func Marshal(f *Form, s Scale) []byte {
	var buf bytes.Buffer
	// bytes.Buffer never fails.
	_ = Encode(&buf, f, s)
	return buf.Bytes()
}

// Encode writes the XML document for f under scale s to w.
//
// Controls go to <init>, labels to <paint>; y is multiplied by the line
// scale and font sizes by the font scale.
func Encode(w io.Writer, f *Form, s Scale) error {
	s = s.normalize()
	bw := bufio.NewWriter(w)
	bw.WriteString("<?xml version=\"1.0\"?>\n<form>\n<init>\n<caption>")
	bw.WriteString(Escape(f.Caption))
	bw.WriteString("</caption>\n")
	for _, e := range f.Elements {
		if e.IsLabel() {
			continue
		}
		bw.WriteString(`<control name="` + Escape(e.ID) + `"`)
		bw.WriteString(` ypos="` + FormatNumber(s.exportY(e)) + `"`)
		bw.WriteString(` xpos="` + FormatNumber(e.X) + `"`)
		if e.Kind == KindReadonly {
			bw.WriteString(` fieldtype="readonly"`)
		}
		bw.WriteString(` refvar="` + Escape(e.Refvar) + `" hotlink="true"/>` + "\n")
	}
	bw.WriteString("</init>\n<paint>\n")
	for _, e := range f.Elements {
		if !e.IsLabel() {
			continue
		}
		color := e.Color
		if color == "" {
			color = DefaultColor
		}
		bw.WriteString(`<text xpos="` + FormatNumber(e.X) + `"`)
		bw.WriteString(` ypos="` + FormatNumber(s.exportY(e)) + `"`)
		bw.WriteString(` color="` + Escape(color) + `"`)
		bw.WriteString(` style="font-size:` + strconv.Itoa(s.FontSize(e)) + `px">`)
		bw.WriteString(Escape(e.Content))
		bw.WriteString("</text>\n")
	}
	bw.WriteString("</paint>\n</form>\n")
	return errors.Wrap(bw.Flush(), "write form")
}

// FormatNumber renders a coordinate at full precision without trailing
// zeros.
func FormatNumber(f float64) string {
	if !finite(f) || f == 0 {
		// also drops negative zero
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// exportY is the y written for e. Base values are written as stored; a
// scaled product is rounded to 6 decimals to drop float noise.
func (s Scale) exportY(e Element) float64 {
	if s.Line == 1 {
		return e.Y
	}
	return math.Round(s.Y(e)*1e6) / 1e6
}
