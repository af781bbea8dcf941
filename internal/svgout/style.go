// Package svgout is a dependency-free SVG document builder: composable
// element functions plus a Style/Color pair and a document-level
// SvgBuilder that assembles them. Ported from
// plcviz/src/output/{style,elements,builder}.rs, the one rendering path
// in plcviz actually re-exported from lib.rs (graph/renderer.rs, the
// other SVG backend in the pack, implements layout-rs's RenderBackend
// trait against an external Rust crate with no Go equivalent in this
// module's dependency set, so it isn't a usable reference beyond
// confirming the XML-escaping and arrow-marker conventions carried over
// here).
package svgout

import "fmt"

// Color is an SVG color value in one of its common textual forms.
type Color struct {
	value string
}

func Hex(s string) Color   { return Color{value: s} }
func Named(s string) Color { return Color{value: s} }
func RGB(r, g, b uint8) Color {
	return Color{value: fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)}
}
func RGBA(r, g, b uint8, a float64) Color {
	return Color{value: fmt.Sprintf("rgba(%d,%d,%d,%v)", r, g, b, a)}
}

var (
	White = Named("white")
	Black = Named("black")
	None  = Color{value: "none"}

	// Primary, Secondary, Accent, Warning and Error are plceye's fixed
	// diagram theme colors.
	Primary   = Hex("#1a5f7a")
	Secondary = Hex("#0d2d3a")
	Accent    = Hex("#2ecc71")
	Warning   = Hex("#f39c12")
	Error     = Hex("#e74c3c")
)

func (c Color) String() string { return c.value }

// Style holds the optional SVG presentation attributes one element may
// carry; zero-value fields are simply omitted from the rendered
// attribute list.
type Style struct {
	Fill        *Color
	Stroke      *Color
	StrokeWidth *float64
	Opacity     *float64
	FontFamily  string
	FontSize    *float64
	FontWeight  string
	TextAnchor  string
}

func NewStyle() Style { return Style{} }

func (s Style) WithFill(c Color) Style           { s.Fill = &c; return s }
func (s Style) WithStroke(c Color) Style         { s.Stroke = &c; return s }
func (s Style) WithStrokeWidth(w float64) Style  { s.StrokeWidth = &w; return s }
func (s Style) WithOpacity(o float64) Style      { s.Opacity = &o; return s }
func (s Style) WithFontFamily(f string) Style    { s.FontFamily = f; return s }
func (s Style) WithFontSize(sz float64) Style    { s.FontSize = &sz; return s }
func (s Style) WithFontWeight(w string) Style    { s.FontWeight = w; return s }
func (s Style) WithTextAnchor(a string) Style    { s.TextAnchor = a; return s }

// ToAttrs renders the style as a space-separated SVG attribute string.
func (s Style) ToAttrs() string {
	var attrs string
	add := func(format string, args ...interface{}) {
		if attrs != "" {
			attrs += " "
		}
		attrs += fmt.Sprintf(format, args...)
	}
	if s.Fill != nil {
		add(`fill="%s"`, *s.Fill)
	}
	if s.Stroke != nil {
		add(`stroke="%s"`, *s.Stroke)
	}
	if s.StrokeWidth != nil {
		add(`stroke-width="%v"`, *s.StrokeWidth)
	}
	if s.Opacity != nil {
		add(`opacity="%v"`, *s.Opacity)
	}
	if s.FontFamily != "" {
		add(`font-family="%s"`, s.FontFamily)
	}
	if s.FontSize != nil {
		add(`font-size="%v"`, *s.FontSize)
	}
	if s.FontWeight != "" {
		add(`font-weight="%s"`, s.FontWeight)
	}
	if s.TextAnchor != "" {
		add(`text-anchor="%s"`, s.TextAnchor)
	}
	return attrs
}

// NodeStyle is the fill/stroke used for graph node boxes.
func NodeStyle() Style {
	return NewStyle().WithFill(Primary).WithStroke(Secondary).WithStrokeWidth(1.5)
}

// NodeLabelStyle is the style used for text inside a node box.
func NodeLabelStyle() Style {
	return NewStyle().WithFill(White).WithFontFamily("sans-serif").WithFontSize(12).WithTextAnchor("middle")
}

// EdgeStyle is the stroke used for call/data-flow arrows.
func EdgeStyle() Style {
	return NewStyle().WithStroke(Hex("#666")).WithStrokeWidth(1.5).WithFill(None)
}

// HighlightedStyle marks an element needing visual emphasis.
func HighlightedStyle() Style {
	return NewStyle().WithStroke(Error).WithStrokeWidth(2.5)
}
