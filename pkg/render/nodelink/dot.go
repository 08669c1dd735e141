package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pathclip/pkg/pathway"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds element IDs, types and properties to labels.
	// When false, only the text label (or the ID if there is none) is shown.
	Detailed bool
}

// ToDOT converts a pathway model to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Groups become clusters, anchors become points on their line, and line ends
// that are not attached to anything get a point of their own. Metadata is
// shown as the graph label.
func ToDOT(m *pathway.Model, opts Options) string {
	w := &writer{m: m, opts: opts, children: map[string][]pathway.Element{}}
	return w.write()
}

type writer struct {
	m        *pathway.Model
	opts     Options
	buf      bytes.Buffer
	children map[string][]pathway.Element // group ID -> direct members in model order
}

func (w *writer) write() string {
	buf := &w.buf
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	if title := w.title(); title != "" {
		fmt.Fprintf(buf, "  label=%q;\n  labelloc=t;\n", title)
	}
	buf.WriteString("\n")

	var top []pathway.Element
	for _, e := range w.m.Elements() {
		if !isNode(e) {
			continue
		}
		if gid := groupOf(e); gid != "" && w.m.Has(gid) {
			w.children[gid] = append(w.children[gid], e)
			continue
		}
		top = append(top, e)
	}
	for _, e := range top {
		w.node(e, "  ")
	}

	buf.WriteString("\n")
	for _, e := range w.m.Elements() {
		if l, ok := e.(*pathway.Line); ok {
			w.line(l)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func (w *writer) title() string {
	for _, info := range w.m.Infos() {
		if !info.IsSynthetic() && info.Title != "" {
			return info.Title
		}
	}
	return ""
}

func (w *writer) node(e pathway.Element, indent string) {
	buf := &w.buf
	if g, ok := e.(*pathway.Group); ok {
		fmt.Fprintf(buf, "%ssubgraph %q {\n", indent, clusterID(g.ID))
		fmt.Fprintf(buf, "%s  label=%q;\n", indent, w.label(g.ID, g.TextLabel, string(g.Type), g.Properties))
		fmt.Fprintf(buf, "%s  style=%q;\n", indent, groupStyle(g.Type))
		// Edges attached to the group itself point here.
		fmt.Fprintf(buf, "%s  %q [shape=point, style=invis];\n", indent, g.ID)
		for _, c := range w.children[g.ID] {
			w.node(c, indent+"  ")
		}
		fmt.Fprintf(buf, "%s}\n", indent)
		return
	}

	var attrs []string
	switch n := e.(type) {
	case *pathway.DataNode:
		attrs = append(attrs, fmt.Sprintf("label=%q", w.label(n.ID, n.TextLabel, string(n.Type), n.Properties)))
		if n.IsAlias() {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
	case *pathway.Label:
		attrs = append(attrs, fmt.Sprintf("label=%q", w.label(n.ID, n.TextLabel, "", n.Properties)), "shape=plaintext", "style=\"\"")
	case *pathway.Shape:
		attrs = append(attrs, fmt.Sprintf("label=%q", w.label(n.ID, n.TextLabel, n.ShapeType, n.Properties)), "shape="+shapeOf(n.ShapeType))
	}
	fmt.Fprintf(buf, "%s%q [%s];\n", indent, e.ElementID(), strings.Join(attrs, ", "))
}

func (w *writer) line(l *pathway.Line) {
	buf := &w.buf
	for _, a := range l.Anchors {
		fmt.Fprintf(buf, "  %q [shape=point, width=0.08];\n", a.ID)
	}
	from := w.endpoint(l.ID, "start", l.StartRef())
	to := w.endpoint(l.ID, "end", l.EndRef())

	// Anchors split the line so other lines can attach along it.
	points := []string{from}
	anchors := slices.Clone(l.Anchors)
	slices.SortStableFunc(anchors, func(a, b *pathway.Anchor) int {
		switch {
		case a.Position < b.Position:
			return -1
		case a.Position > b.Position:
			return 1
		}
		return 0
	})
	for _, a := range anchors {
		points = append(points, a.ID)
	}
	points = append(points, to)

	style := "solid"
	if l.Graphical {
		style = "dashed"
	}
	for i := 0; i+1 < len(points); i++ {
		attrs := []string{"style=" + style}
		last := i+2 == len(points)
		if !last || l.End.ArrowHead == "" {
			attrs = append(attrs, "arrowhead=none")
		} else {
			attrs = append(attrs, "arrowhead="+arrowOf(l.End.ArrowHead))
		}
		if i == 0 {
			attrs = append(attrs, w.clusterAttr("ltail", l.StartRef())...)
		}
		if last {
			attrs = append(attrs, w.clusterAttr("lhead", l.EndRef())...)
		}
		fmt.Fprintf(buf, "  %q -> %q [%s];\n", points[i], points[i+1], strings.Join(attrs, ", "))
	}
}

// endpoint returns the DOT node a line end attaches to, declaring a free
// point if the end is not attached to anything in the model.
func (w *writer) endpoint(lineID, side, ref string) string {
	if ref != "" && w.m.Has(ref) {
		return ref
	}
	id := lineID + "." + side
	fmt.Fprintf(&w.buf, "  %q [shape=point, width=0.05];\n", id)
	return id
}

func (w *writer) clusterAttr(key, ref string) []string {
	if e, ok := w.m.Element(ref); ok && e.Kind() == pathway.KindGroup {
		return []string{fmt.Sprintf("%s=%q", key, clusterID(ref))}
	}
	return nil
}

func (w *writer) label(id, text, typ string, props map[string]string) string {
	if text == "" {
		text = id
	}
	if !w.opts.Detailed {
		return text
	}
	parts := []string{"id: " + id}
	if typ != "" {
		parts = append(parts, "type: "+typ)
	}
	for _, k := range slices.Sorted(maps.Keys(props)) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, props[k]))
	}
	return text + "\n" + strings.Join(parts, "\n")
}

func isNode(e pathway.Element) bool {
	switch e.Kind() {
	case pathway.KindDataNode, pathway.KindLabel, pathway.KindShape, pathway.KindGroup:
		return true
	}
	return false
}

func groupOf(e pathway.Element) string {
	if g, ok := e.(pathway.Groupable); ok {
		return g.GroupID()
	}
	return ""
}

func clusterID(groupID string) string { return "cluster_" + groupID }

func groupStyle(t pathway.GroupType) string {
	switch t {
	case pathway.GroupComplex:
		return "rounded,filled"
	case pathway.GroupTransparent:
		return "invis"
	}
	return "dashed"
}

func shapeOf(shapeType string) string {
	switch strings.ToLower(shapeType) {
	case "oval", "ellipse":
		return "ellipse"
	case "triangle":
		return "triangle"
	case "hexagon":
		return "hexagon"
	case "octagon":
		return "octagon"
	case "roundedrectangle":
		return "box"
	}
	return "rect"
}

func arrowOf(head string) string {
	switch head {
	case "mim-inhibition", "TBar":
		return "tee"
	case "mim-catalysis":
		return "odot"
	case "mim-binding":
		return "diamond"
	}
	return "normal"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
