package gpml

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/beevik/etree"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/pathway"
)

// Read decodes a pathway document from r into a new model with a fresh
// document ID. Element IDs and references are taken from the text.
//
// Empty or whitespace-only input is not an error: Read returns a nil model
// and a nil error, meaning there is nothing to paste.
//
// Read returns an [errors.ErrCodeInvalidPayload] error if:
//   - The XML is malformed or truncated
//   - The root is not a Pathway of a supported schema version
//   - An element has a missing, invalid or duplicate ID
//   - A line endpoint or group member references an ID absent from the text
//
// Alias references to absent IDs are kept; they point at groups of the
// document the payload was copied from. On error no model is returned.
// Read does not close r.
func Read(r io.Reader) (*pathway.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "read payload")
	}
	return Unmarshal(data)
}

// Unmarshal decodes data like [Read].
func Unmarshal(data []byte) (*pathway.Model, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	// ValidateInput rejects anything after the root element, including the
	// newline Write ends with.
	doc := etree.NewDocument()
	doc.ReadSettings.ValidateInput = true
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "malformed document")
	}
	return decode(doc)
}

// ReadFile reads a document file from path.
// This is a convenience wrapper around [Unmarshal] for file-based input.
func ReadFile(path string) (*pathway.Model, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}

func decode(doc *etree.Document) (*pathway.Model, error) {
	root := doc.Root()
	if root == nil || root.Tag != "Pathway" {
		return nil, errors.New(errors.ErrCodeInvalidPayload, "not a pathway document")
	}
	if ns := root.SelectAttrValue("xmlns", ""); ns != Namespace {
		return nil, errors.New(errors.ErrCodeInvalidPayload, "unexpected namespace %q", ns)
	}
	version, err := strconv.Atoi(root.SelectAttrValue("schemaVersion", ""))
	if err != nil || version < 1 {
		return nil, errors.New(errors.ErrCodeInvalidPayload, "missing or invalid schema version")
	}
	if version > SchemaVersion {
		return nil, errors.New(errors.ErrCodeInvalidPayload, "schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	m := pathway.New()
	var groups []*pathway.Group
	for _, el := range root.ChildElements() {
		d := &decoder{}
		e := d.element(el)
		if d.err != nil {
			return nil, d.err
		}
		if err := m.Add(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "%s %s", el.Tag, e.ElementID())
		}
		if g, ok := e.(*pathway.Group); ok {
			groups = append(groups, g)
		}
	}

	if err := linkMembers(m, groups); err != nil {
		return nil, err
	}
	if err := m.Validate(pathway.AllowExternalAliases()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "unresolved reference")
	}
	return m, nil
}

// linkMembers derives each member's group reference from the member lists.
func linkMembers(m *pathway.Model, groups []*pathway.Group) error {
	for _, g := range groups {
		seen := make(map[string]bool, len(g.Members))
		for _, id := range g.Members {
			if seen[id] {
				return errors.New(errors.ErrCodeInvalidPayload, "group %s lists member %s twice", g.ID, id)
			}
			seen[id] = true
			e, ok := m.Element(id)
			if !ok {
				return errors.New(errors.ErrCodeInvalidPayload, "group %s: unknown member %s", g.ID, id)
			}
			member, ok := e.(pathway.Groupable)
			if !ok {
				return errors.New(errors.ErrCodeInvalidPayload, "group %s: %s %s cannot be a member", g.ID, e.Kind(), id)
			}
			if cur := member.GroupID(); cur != "" && cur != g.ID {
				return errors.New(errors.ErrCodeInvalidPayload, "%s is a member of both %s and %s", id, cur, g.ID)
			}
			member.SetGroupID(g.ID)
		}
	}
	return nil
}

// decoder keeps the first attribute error of one element.
type decoder struct {
	err error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = errors.New(errors.ErrCodeInvalidPayload, format, args...)
	}
}

func (d *decoder) id(el *etree.Element) string {
	id := el.SelectAttrValue("elementId", "")
	if err := errors.ValidateElementID(id); err != nil {
		d.fail("<%s>: %s", el.Tag, errors.UserMessage(err))
	}
	return id
}

func (d *decoder) float(el *etree.Element, key string) float64 {
	raw := el.SelectAttrValue(key, "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		d.fail("<%s> %s: invalid number %q", el.Tag, key, raw)
	}
	return v
}

func (d *decoder) element(el *etree.Element) pathway.Element {
	common := pathway.Common{ID: d.id(el)}
	d.common(el, &common)
	attr := func(key string) string { return el.SelectAttrValue(key, "") }

	switch el.Tag {
	case "DataNode":
		n := &pathway.DataNode{
			Common:    common,
			TextLabel: attr("textLabel"),
			Type:      pathway.DataNodeType(attr("type")),
			AliasRef:  attr("aliasRef"),
			Graphics:  d.rect(el),
		}
		if x := el.SelectElement("Xref"); x != nil {
			n.Xref = pathway.Xref{
				Identifier: x.SelectAttrValue("identifier", ""),
				DataSource: x.SelectAttrValue("dataSource", ""),
			}
		}
		return n
	case "Label":
		return &pathway.Label{
			Common:    common,
			TextLabel: attr("textLabel"),
			Href:      attr("href"),
			Graphics:  d.rect(el),
		}
	case "Shape":
		return &pathway.Shape{
			Common:    common,
			TextLabel: attr("textLabel"),
			ShapeType: attr("shapeType"),
			Rotation:  d.float(el, "rotation"),
			Graphics:  d.rect(el),
		}
	case "Interaction", "GraphicalLine":
		return d.line(el, common)
	case "Group":
		g := &pathway.Group{
			Common:    common,
			TextLabel: attr("textLabel"),
			Type:      pathway.GroupType(attr("type")),
		}
		for _, mem := range el.SelectElements("Member") {
			ref := mem.SelectAttrValue("elementRef", "")
			if ref == "" {
				d.fail("group %s: member without elementRef", common.ID)
			}
			g.Members = append(g.Members, ref)
		}
		return g
	case "Info":
		info := &pathway.Info{
			Common:   common,
			Title:    attr("title"),
			Organism: attr("organism"),
			Source:   attr("source"),
			Version:  attr("version"),
			License:  attr("license"),
		}
		if desc := el.SelectElement("Description"); desc != nil {
			info.Description = desc.Text()
		}
		return info
	}
	d.fail("unknown element <%s>", el.Tag)
	return &pathway.Info{Common: common}
}

func (d *decoder) line(el *etree.Element, common pathway.Common) *pathway.Line {
	l := &pathway.Line{
		Common:        common,
		Graphical:     el.Tag == "GraphicalLine",
		ConnectorType: el.SelectAttrValue("connectorType", ""),
	}
	if s := el.SelectElement("Start"); s != nil {
		l.Start = d.point(s)
	}
	if e := el.SelectElement("End"); e != nil {
		l.End = d.point(e)
	}
	for _, wp := range el.SelectElements("Waypoint") {
		l.Waypoints = append(l.Waypoints, pathway.Point{X: d.float(wp, "x"), Y: d.float(wp, "y")})
	}
	for _, ae := range el.SelectElements("Anchor") {
		a, err := l.AddAnchor(d.id(ae), d.float(ae, "position"))
		if err != nil {
			d.fail("line %s: anchor: %v", common.ID, err)
			continue
		}
		a.Shape = ae.SelectAttrValue("shapeType", "")
		d.common(ae, &a.Common)
	}
	return l
}

func (d *decoder) point(el *etree.Element) pathway.LinePoint {
	return pathway.LinePoint{
		Point:      pathway.Point{X: d.float(el, "x"), Y: d.float(el, "y")},
		ElementRef: el.SelectAttrValue("elementRef", ""),
		RelX:       d.float(el, "relX"),
		RelY:       d.float(el, "relY"),
		ArrowHead:  el.SelectAttrValue("arrowHead", ""),
	}
}

func (d *decoder) rect(el *etree.Element) pathway.Rect {
	g := el.SelectElement("Graphics")
	if g == nil {
		return pathway.Rect{}
	}
	return pathway.Rect{
		CenterX: d.float(g, "centerX"),
		CenterY: d.float(g, "centerY"),
		Width:   d.float(g, "width"),
		Height:  d.float(g, "height"),
	}
}

func (d *decoder) common(el *etree.Element, c *pathway.Common) {
	for _, ce := range el.SelectElements("Comment") {
		c.Comments = append(c.Comments, ce.Text())
	}
	for _, pe := range el.SelectElements("Property") {
		key := pe.SelectAttrValue("key", "")
		if key == "" {
			d.fail("%s: property without key", c.ID)
			continue
		}
		c.SetProperty(key, pe.SelectAttrValue("value", ""))
	}
}
