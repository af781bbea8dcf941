package svgout

import (
	"fmt"
	"strings"
)

// Rect renders a <rect> element.
func Rect(x, y, width, height float64, style Style) string {
	return fmt.Sprintf(`<rect x="%v" y="%v" width="%v" height="%v" %s/>`, x, y, width, height, style.ToAttrs())
}

// RectRounded renders a <rect> with rounded corners of radius rx.
func RectRounded(x, y, width, height, rx float64, style Style) string {
	return fmt.Sprintf(`<rect x="%v" y="%v" width="%v" height="%v" rx="%v" %s/>`, x, y, width, height, rx, style.ToAttrs())
}

func Circle(cx, cy, r float64, style Style) string {
	return fmt.Sprintf(`<circle cx="%v" cy="%v" r="%v" %s/>`, cx, cy, r, style.ToAttrs())
}

func Ellipse(cx, cy, rx, ry float64, style Style) string {
	return fmt.Sprintf(`<ellipse cx="%v" cy="%v" rx="%v" ry="%v" %s/>`, cx, cy, rx, ry, style.ToAttrs())
}

func Line(x1, y1, x2, y2 float64, style Style) string {
	return fmt.Sprintf(`<line x1="%v" y1="%v" x2="%v" y2="%v" %s/>`, x1, y1, x2, y2, style.ToAttrs())
}

// Polyline renders a <polyline> connecting the given points in order.
func Polyline(points [][2]float64, style Style) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%v,%v", p[0], p[1])
	}
	return fmt.Sprintf(`<polyline points="%s" %s/>`, strings.Join(parts, " "), style.ToAttrs())
}

// Path renders a <path> with raw path data d.
func Path(d string, style Style) string {
	return fmt.Sprintf(`<path d="%s" %s/>`, d, style.ToAttrs())
}

// Bezier renders a cubic bezier curve from (x1,y1) to (x2,y2) with the
// given two control points.
func Bezier(x1, y1, cx1, cy1, cx2, cy2, x2, y2 float64, style Style) string {
	d := fmt.Sprintf("M%v,%v C%v,%v %v,%v %v,%v", x1, y1, cx1, cy1, cx2, cy2, x2, y2)
	return Path(d, style)
}

// QuadBezier renders a quadratic bezier curve through a single control
// point.
func QuadBezier(x1, y1, cx, cy, x2, y2 float64, style Style) string {
	d := fmt.Sprintf("M%v,%v Q%v,%v %v,%v", x1, y1, cx, cy, x2, y2)
	return Path(d, style)
}

func Text(x, y float64, content string, style Style) string {
	return fmt.Sprintf(`<text x="%v" y="%v" %s>%s</text>`, x, y, style.ToAttrs(), escapeXML(content))
}

// TextDy renders a <text> element with an explicit dy offset, useful for
// vertical centering within a node box.
func TextDy(x, y, dy float64, content string, style Style) string {
	return fmt.Sprintf(`<text x="%v" y="%v" dy="%v" %s>%s</text>`, x, y, dy, style.ToAttrs(), escapeXML(content))
}

func Group(children []string) string {
	return fmt.Sprintf("<g>\n%s\n</g>", strings.Join(children, "\n"))
}

func GroupTransform(transform string, children []string) string {
	return fmt.Sprintf(`<g transform="%s">%s</g>`, transform, strings.Join(children, "\n"))
}

func GroupTranslate(x, y float64, children []string) string {
	return GroupTransform(fmt.Sprintf("translate(%v,%v)", x, y), children)
}

func GroupIDClass(id, class string, children []string) string {
	return fmt.Sprintf(`<g id="%s" class="%s">%s</g>`, id, class, strings.Join(children, "\n"))
}

// ArrowMarker renders a <marker> definition suitable for an SvgBuilder
// def, drawn as a solid triangle in the given color.
func ArrowMarker(id, color string) string {
	return fmt.Sprintf(`<marker id="%s" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse">
  <path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/>
</marker>`, id, color)
}

func Title(content string) string {
	return fmt.Sprintf("<title>%s</title>", escapeXML(content))
}

func Link(href string, children []string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, href, strings.Join(children, "\n"))
}

// NodeBox renders a graph node as a rounded rectangle with its label
// centered inside, the shape main.rs's run_example/generate_from_l5x
// call as node_box(x, y, width, height, label) — the function itself
// is absent from the retrieval pack (see DESIGN.md), so this
// composition of Rect/Text under NodeStyle/NodeLabelStyle is designed
// to match that call site rather than ported line-for-line.
func NodeBox(x, y, width, height float64, label string) string {
	box := RectRounded(x, y, width, height, 4, NodeStyle())
	tx := x + width/2
	ty := y + height/2
	lbl := TextDy(tx, ty, 4, label, NodeLabelStyle())
	return Group([]string{box, lbl})
}

// ArrowEdge renders a straight line from (x1,y1) to (x2,y2) with an
// arrowhead at its end, referencing the <marker> with the given id.
func ArrowEdge(x1, y1, x2, y2 float64, markerID string) string {
	style := EdgeStyle()
	attrs := fmt.Sprintf(`%s marker-end="url(#%s)"`, style.ToAttrs(), markerID)
	return fmt.Sprintf(`<line x1="%v" y1="%v" x2="%v" y2="%v" %s/>`, x1, y1, x2, y2, attrs)
}

// ArrowEdgeCurved renders a cubic bezier from (x1,y1) to (x2,y2), bowed
// vertically between the two endpoints, with an arrowhead at its end
// referencing the <marker> with the given id — the curved counterpart
// main.rs calls as arrow_edge_curved(x1, y1, x2, y2, "arrow") to route
// call edges between stacked node boxes without overlapping siblings.
// Like NodeBox, the function itself is absent from the pack; the curve
// shape (vertical midpoint control points) is designed to fit that
// call site.
func ArrowEdgeCurved(x1, y1, x2, y2 float64, markerID string) string {
	midY := (y1 + y2) / 2
	d := fmt.Sprintf("M%v,%v C%v,%v %v,%v %v,%v", x1, y1, x1, midY, x2, midY, x2, y2)
	style := EdgeStyle()
	attrs := fmt.Sprintf(`%s marker-end="url(#%s)"`, style.ToAttrs(), markerID)
	return fmt.Sprintf(`<path d="%s" %s/>`, d, attrs)
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
