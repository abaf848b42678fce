package form

import (
	"bytes"
	"encoding/xml"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// ErrNoForm is returned when the document root is not a form element.
var ErrNoForm = errors.New("root element is not <form>")

var rFontSize = regexp.MustCompile(`font-size:\s*(\d+)px`)

// Parse reads a form document.
//
// Parsing is lenient: the returned Form is never nil and holds everything
// that could be read. A non-nil error describes why the document was not
// read completely, so callers can warn and still keep the partial result.
func Parse(data []byte) (*Form, error) {
	return Decode(bytes.NewReader(data))
}

// Decode is like Parse, but reads from r.
func Decode(r io.Reader) (*Form, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	p := parser{dec: dec}
	err := p.run()
	return p.form(), err
}

type parser struct {
	dec *xml.Decoder

	caption    string
	hasCaption bool
	labels     []Element
	controls   []rawControl
}

type rawControl struct {
	name string
	Element
}

func (p *parser) run() error {
	root, err := p.nextStart()
	if err != nil {
		if err == io.EOF {
			return errors.Wrap(ErrNoForm, "empty document")
		}
		return errors.Wrap(err, "parse form")
	}
	if root.Name.Local != "form" {
		return errors.Wrapf(ErrNoForm, "found <%s>", root.Name.Local)
	}
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return errors.Wrap(io.ErrUnexpectedEOF, "parse form")
			}
			return errors.Wrap(err, "parse form")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.element(t); err != nil {
				return err
			}
		case xml.EndElement:
			// Nested elements are consumed by element, so this closes the root.
			return nil
		}
	}
}

func (p *parser) nextStart() (xml.StartElement, error) {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

// element handles one start tag below the root and consumes everything up
// to and including its end tag.
func (p *parser) element(se xml.StartElement) error {
	switch se.Name.Local {
	case "caption":
		text, err := p.text()
		if err != nil {
			return err
		}
		if !p.hasCaption {
			p.caption, p.hasCaption = strings.TrimSpace(text), true
		}
		return nil

	case "text":
		style := attr(se, "style")
		fs := DefaultFontSize
		if m := rFontSize.FindStringSubmatch(style); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				fs = n
			}
		}
		color := attr(se, "color")
		if color == "" {
			color = DefaultColor
		}
		content, err := p.text()
		if err != nil {
			return err
		}
		p.labels = append(p.labels, Element{
			Kind:     KindLabel,
			X:        number(attr(se, "xpos")),
			Y:        number(attr(se, "ypos")),
			Content:  content,
			Color:    color,
			FontSize: fs,
		})
		return nil

	case "control":
		kind := KindCheckbox
		if attr(se, "fieldtype") == "readonly" {
			kind = KindReadonly
		}
		p.controls = append(p.controls, rawControl{
			name: attr(se, "name"),
			Element: Element{
				Kind:   kind,
				X:      number(attr(se, "xpos")),
				Y:      number(attr(se, "ypos")),
				Refvar: attr(se, "refvar"),
			},
		})
		// Controls may still contain captions or other controls.
		return p.children()
	}
	return p.children()
}

// children walks the content of the current element until its end tag.
func (p *parser) children() error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return p.wrapEOF(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.element(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// text collects all character data of the current element, nested
// elements included, and consumes its end tag.
func (p *parser) text() (string, error) {
	var buf strings.Builder
	depth := 0
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return "", p.wrapEOF(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return buf.String(), nil
			}
			depth--
		}
	}
}

func (p *parser) wrapEOF(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return errors.Wrap(err, "parse form")
}

func (p *parser) form() *Form {
	f := &Form{
		Caption:  p.caption,
		Elements: make([]Element, 0, len(p.labels)+len(p.controls)),
	}
	used := make(map[string]struct{}, cap(f.Elements))
	for i, l := range p.labels {
		l.ID = "label-" + strconv.Itoa(i)
		used[l.ID] = struct{}{}
		f.Elements = append(f.Elements, l)
	}
	for i, c := range p.controls {
		id := c.name
		if id == "" {
			id = "control-" + strconv.Itoa(i)
		}
		if _, ok := used[id]; ok {
			base := id
			for n := 2; ; n++ {
				id = base + "-" + strconv.Itoa(n)
				if _, ok := used[id]; !ok {
					break
				}
			}
		}
		used[id] = struct{}{}
		c.Element.ID = id
		f.Elements = append(f.Elements, c.Element)
	}
	return f
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// number reads a coordinate; anything unparsable or non-finite is 0.
func number(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
