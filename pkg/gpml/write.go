package gpml

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/beevik/etree"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/pathway"
)

const (
	// Namespace is the XML namespace of pathway documents.
	Namespace = "http://pathclip.dev/gpml/2021"
	// SchemaVersion is the highest schema version this package reads and the
	// version it writes.
	SchemaVersion = 1
)

var kindToTag = map[pathway.Kind]string{
	pathway.KindDataNode:      "DataNode",
	pathway.KindLabel:         "Label",
	pathway.KindShape:         "Shape",
	pathway.KindInteraction:   "Interaction",
	pathway.KindGraphicalLine: "GraphicalLine",
	pathway.KindGroup:         "Group",
	pathway.KindInfo:          "Info",
}

// Write encodes m as a standalone pathway document and writes it to w.
// Elements are written in model order; the output can be read back with
// [Read] or opened as a regular document.
func Write(m *pathway.Model, w io.Writer) error {
	doc, err := encode(m)
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Marshal returns the encoding of m. On error no bytes are returned.
func Marshal(m *pathway.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes m to a document file at path.
// This is a convenience wrapper around [Write] for file-based output.
func WriteFile(m *pathway.Model, path string) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func encode(m *pathway.Model) (*etree.Document, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to encode")
	}
	doc := etree.NewDocument()
	// Labels may span lines; canonical attribute escaping keeps the newlines.
	doc.WriteSettings.CanonicalAttrVal = true
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("Pathway")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("schemaVersion", strconv.Itoa(SchemaVersion))

	for _, e := range m.Elements() {
		tag, ok := kindToTag[e.Kind()]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnsupported, "%s %s cannot be encoded", e.Kind(), e.ElementID())
		}
		el := root.CreateElement(tag)
		el.CreateAttr("elementId", e.ElementID())
		switch e := e.(type) {
		case *pathway.DataNode:
			encodeDataNode(el, e)
		case *pathway.Label:
			setAttr(el, "textLabel", e.TextLabel)
			setAttr(el, "href", e.Href)
			encodeRect(el, e.Graphics)
			encodeCommon(el, &e.Common)
		case *pathway.Shape:
			setAttr(el, "textLabel", e.TextLabel)
			setAttr(el, "shapeType", e.ShapeType)
			setFloat(el, "rotation", e.Rotation)
			encodeRect(el, e.Graphics)
			encodeCommon(el, &e.Common)
		case *pathway.Line:
			encodeLine(el, e)
		case *pathway.Group:
			setAttr(el, "textLabel", e.TextLabel)
			setAttr(el, "type", string(e.Type))
			for _, id := range e.Members {
				el.CreateElement("Member").CreateAttr("elementRef", id)
			}
			encodeCommon(el, &e.Common)
		case *pathway.Info:
			setAttr(el, "title", e.Title)
			setAttr(el, "organism", e.Organism)
			setAttr(el, "source", e.Source)
			setAttr(el, "version", e.Version)
			setAttr(el, "license", e.License)
			if e.Description != "" {
				el.CreateElement("Description").SetText(e.Description)
			}
			encodeCommon(el, &e.Common)
		}
	}
	indent := etree.NewIndentSettings()
	indent.Spaces = 2
	indent.PreserveLeafWhitespace = true
	doc.IndentWithSettings(indent)
	return doc, nil
}

func encodeDataNode(el *etree.Element, n *pathway.DataNode) {
	setAttr(el, "textLabel", n.TextLabel)
	setAttr(el, "type", string(n.Type))
	setAttr(el, "aliasRef", n.AliasRef)
	if !n.Xref.IsZero() {
		x := el.CreateElement("Xref")
		x.CreateAttr("identifier", n.Xref.Identifier)
		x.CreateAttr("dataSource", n.Xref.DataSource)
	}
	encodeRect(el, n.Graphics)
	encodeCommon(el, &n.Common)
}

func encodeLine(el *etree.Element, l *pathway.Line) {
	setAttr(el, "connectorType", l.ConnectorType)
	encodePoint(el.CreateElement("Start"), l.Start)
	for _, p := range l.Waypoints {
		wp := el.CreateElement("Waypoint")
		setFloat(wp, "x", p.X)
		setFloat(wp, "y", p.Y)
	}
	encodePoint(el.CreateElement("End"), l.End)
	for _, a := range l.Anchors {
		ae := el.CreateElement("Anchor")
		ae.CreateAttr("elementId", a.ID)
		setFloat(ae, "position", a.Position)
		setAttr(ae, "shapeType", a.Shape)
		encodeCommon(ae, &a.Common)
	}
	encodeCommon(el, &l.Common)
}

func encodePoint(el *etree.Element, p pathway.LinePoint) {
	setFloat(el, "x", p.X)
	setFloat(el, "y", p.Y)
	setAttr(el, "elementRef", p.ElementRef)
	setFloat(el, "relX", p.RelX)
	setFloat(el, "relY", p.RelY)
	setAttr(el, "arrowHead", p.ArrowHead)
}

func encodeRect(el *etree.Element, r pathway.Rect) {
	g := el.CreateElement("Graphics")
	setFloat(g, "centerX", r.CenterX)
	setFloat(g, "centerY", r.CenterY)
	setFloat(g, "width", r.Width)
	setFloat(g, "height", r.Height)
}

func encodeCommon(el *etree.Element, c *pathway.Common) {
	for _, text := range c.Comments {
		el.CreateElement("Comment").SetText(text)
	}
	keys := make([]string, 0, len(c.Properties))
	for k := range c.Properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		p := el.CreateElement("Property")
		p.CreateAttr("key", k)
		p.CreateAttr("value", c.Properties[k])
	}
}

func setAttr(el *etree.Element, key, value string) {
	if value != "" {
		el.CreateAttr(key, value)
	}
}

func setFloat(el *etree.Element, key string, v float64) {
	if v != 0 {
		el.CreateAttr(key, strconv.FormatFloat(v, 'g', -1, 64))
	}
}
