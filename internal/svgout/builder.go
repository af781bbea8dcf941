package svgout

import "fmt"

// SvgBuilder assembles a complete SVG document out of elements, defs
// and styles added in a builder-pattern style.
type SvgBuilder struct {
	width, height uint32
	viewBox       *[4]float64
	background    *Color
	defs          []string
	elements      []string
	styles        []string
}

// NewSvgBuilder creates a builder for a document of the given pixel
// dimensions.
func NewSvgBuilder(width, height uint32) *SvgBuilder {
	return &SvgBuilder{width: width, height: height}
}

// ViewBox sets the document's viewBox, letting the rendered content
// scale independently of width/height.
func (b *SvgBuilder) ViewBox(x, y, width, height float64) *SvgBuilder {
	b.viewBox = &[4]float64{x, y, width, height}
	return b
}

func (b *SvgBuilder) Background(c Color) *SvgBuilder {
	b.background = &c
	return b
}

// AddDef appends a raw definition (marker, gradient, ...) to <defs>.
func (b *SvgBuilder) AddDef(def string) {
	b.defs = append(b.defs, def)
}

func (b *SvgBuilder) WithArrowMarker(id, color string) *SvgBuilder {
	b.defs = append(b.defs, ArrowMarker(id, color))
	return b
}

// WithDefaultArrows adds plceye's two standard markers: a neutral
// "arrow" and a highlighted "arrow-highlight" for flagged call edges.
func (b *SvgBuilder) WithDefaultArrows() *SvgBuilder {
	b.defs = append(b.defs, ArrowMarker("arrow", "#666"))
	b.defs = append(b.defs, ArrowMarker("arrow-highlight", Error.String()))
	return b
}

func (b *SvgBuilder) AddStyle(css string) {
	b.styles = append(b.styles, css)
}

// WithDefaultStyles adds the standard node/edge CSS: drop-shadowed
// node boxes, non-interactive labels, and a hover highlight on edges.
func (b *SvgBuilder) WithDefaultStyles() *SvgBuilder {
	b.styles = append(b.styles, `
            .node rect { filter: drop-shadow(2px 2px 3px rgba(0,0,0,0.2)); }
            .node text { pointer-events: none; }
            .edge { transition: stroke 0.2s; }
            .edge:hover { stroke: #e74c3c; stroke-width: 2.5; }
        `)
	return b
}

func (b *SvgBuilder) Add(element string) {
	b.elements = append(b.elements, element)
}

func (b *SvgBuilder) AddAll(elements []string) {
	b.elements = append(b.elements, elements...)
}

// Build renders the accumulated defs/styles/background/elements into a
// complete SVG document string.
func (b *SvgBuilder) Build() string {
	svg := ""

	viewBoxAttr := ""
	if b.viewBox != nil {
		v := b.viewBox
		viewBoxAttr = fmt.Sprintf(` viewBox="%v %v %v %v"`, v[0], v[1], v[2], v[3])
	}
	svg += fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\"%s>\n", b.width, b.height, viewBoxAttr)

	if len(b.styles) > 0 {
		svg += "<style>\n"
		for _, s := range b.styles {
			svg += s + "\n"
		}
		svg += "</style>\n"
	}

	if len(b.defs) > 0 {
		svg += "<defs>\n"
		for _, d := range b.defs {
			svg += d + "\n"
		}
		svg += "</defs>\n"
	}

	if b.background != nil {
		svg += fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`+"\n", *b.background)
	}

	for _, e := range b.elements {
		svg += e + "\n"
	}

	svg += "</svg>"
	return svg
}
