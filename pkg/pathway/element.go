package pathway

import (
	"maps"
	"slices"
)

// CopiedSource is the Info.Source value of metadata synthesized by a copy
// operation. Consumers recognize it on paste and may discard the element.
const CopiedSource = "COPIED"

// Kind discriminates the closed set of element variants.
type Kind int

const (
	// KindDataNode is a biological entity box (gene product, metabolite, alias, ...).
	KindDataNode Kind = iota
	// KindLabel is a free text box.
	KindLabel
	// KindShape is a purely graphical shape.
	KindShape
	// KindInteraction is a connector carrying biological meaning.
	KindInteraction
	// KindGraphicalLine is a connector without biological meaning.
	KindGraphicalLine
	// KindGroup is a set of member elements.
	KindGroup
	// KindAnchor is a connection point owned by a line.
	KindAnchor
	// KindInfo is document metadata.
	KindInfo
)

var kindNames = map[Kind]string{
	KindDataNode:      "DataNode",
	KindLabel:         "Label",
	KindShape:         "Shape",
	KindInteraction:   "Interaction",
	KindGraphicalLine: "GraphicalLine",
	KindGroup:         "Group",
	KindAnchor:        "Anchor",
	KindInfo:          "Info",
}

// String returns the element name used in documents and log output.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Element is a single addressable unit of a pathway document.
//
// The set of implementations is closed: *DataNode, *Label, *Shape, *Line,
// *Group, *Anchor and *Info. Code that needs kind-specific behavior uses a
// type switch over those types.
type Element interface {
	ElementID() string
	Kind() Kind
	// Owner returns the model the element belongs to, or nil while detached.
	Owner() *Model
	common() *Common
}

// Groupable is implemented by elements that may be members of a group.
type Groupable interface {
	Element
	GroupID() string
	SetGroupID(id string)
}

// Bounded is implemented by elements that occupy an area on the canvas.
type Bounded interface {
	Element
	Bounds() Rect
	translate(dx, dy float64)
}

// Common holds the fields shared by every element.
type Common struct {
	ID         string
	Comments   []string
	Properties map[string]string // dynamic key/value properties

	owner *Model
}

// ElementID returns the document-unique identifier.
func (c *Common) ElementID() string { return c.ID }

// Owner returns the owning model, or nil if the element is detached.
func (c *Common) Owner() *Model { return c.owner }

func (c *Common) common() *Common { return c }

// Property returns a dynamic property value.
func (c *Common) Property(key string) (string, bool) {
	v, ok := c.Properties[key]
	return v, ok
}

// SetProperty sets a dynamic property, initializing the map if needed.
func (c *Common) SetProperty(key, value string) {
	if c.Properties == nil {
		c.Properties = make(map[string]string)
	}
	c.Properties[key] = value
}

func (c Common) detachedCopy() Common {
	return Common{
		ID:         c.ID,
		Comments:   slices.Clone(c.Comments),
		Properties: maps.Clone(c.Properties),
	}
}

// Grouped holds the membership back-reference of a groupable element.
type Grouped struct {
	GroupRef string
}

// GroupID returns the ID of the enclosing group, or "" if ungrouped.
func (g *Grouped) GroupID() string { return g.GroupRef }

// SetGroupID sets the enclosing group reference.
func (g *Grouped) SetGroupID(id string) { g.GroupRef = id }

// DataNodeType is the biological type of a data node.
type DataNodeType string

// Data node types.
const (
	DataNodeUndefined   DataNodeType = "Undefined"
	DataNodeGeneProduct DataNodeType = "GeneProduct"
	DataNodeDNA         DataNodeType = "DNA"
	DataNodeRNA         DataNodeType = "RNA"
	DataNodeProtein     DataNodeType = "Protein"
	DataNodeMetabolite  DataNodeType = "Metabolite"
	DataNodeComplex     DataNodeType = "Complex"
	DataNodePathway     DataNodeType = "Pathway"
	DataNodeDisease     DataNodeType = "Disease"
	DataNodePhenotype   DataNodeType = "Phenotype"
	DataNodeEvent       DataNodeType = "Event"
	DataNodeCellNode    DataNodeType = "CellNode"
	DataNodeOrgan       DataNodeType = "Organ"
	// DataNodeAlias marks a node that stands in for a group elsewhere in the
	// document. Only alias nodes carry an AliasRef.
	DataNodeAlias DataNodeType = "Alias"
)

// Xref is an external database reference.
type Xref struct {
	Identifier string
	DataSource string
}

// IsZero reports whether the reference is empty.
func (x Xref) IsZero() bool { return x.Identifier == "" && x.DataSource == "" }

// DataNode is a biological entity.
type DataNode struct {
	Common
	Grouped
	TextLabel string
	Type      DataNodeType
	Xref      Xref
	Graphics  Rect
	AliasRef  string // group mirrored by an alias node
}

func (n *DataNode) Kind() Kind   { return KindDataNode }
func (n *DataNode) Bounds() Rect { return n.Graphics }

func (n *DataNode) translate(dx, dy float64) { n.Graphics = n.Graphics.Offset(dx, dy) }

// IsAlias reports whether the node is an alias for a group.
func (n *DataNode) IsAlias() bool { return n.Type == DataNodeAlias }

// Copy returns a detached copy with the same ID and references.
func (n *DataNode) Copy() *DataNode {
	c := *n
	c.Common = n.Common.detachedCopy()
	return &c
}

// Label is a free text box.
type Label struct {
	Common
	Grouped
	TextLabel string
	Href      string
	Graphics  Rect
}

func (l *Label) Kind() Kind   { return KindLabel }
func (l *Label) Bounds() Rect { return l.Graphics }

func (l *Label) translate(dx, dy float64) { l.Graphics = l.Graphics.Offset(dx, dy) }

// Copy returns a detached copy with the same ID and references.
func (l *Label) Copy() *Label {
	c := *l
	c.Common = l.Common.detachedCopy()
	return &c
}

// Shape is a graphical shape.
type Shape struct {
	Common
	Grouped
	TextLabel string
	ShapeType string
	Rotation  float64
	Graphics  Rect
}

func (s *Shape) Kind() Kind   { return KindShape }
func (s *Shape) Bounds() Rect { return s.Graphics }

func (s *Shape) translate(dx, dy float64) { s.Graphics = s.Graphics.Offset(dx, dy) }

// Copy returns a detached copy with the same ID and references.
func (s *Shape) Copy() *Shape {
	c := *s
	c.Common = s.Common.detachedCopy()
	return &c
}

// GroupType is the semantic type of a group.
type GroupType string

// Group types.
const (
	GroupPlain       GroupType = "Group"
	GroupTransparent GroupType = "Transparent"
	GroupComplex     GroupType = "Complex"
	GroupPathway     GroupType = "Pathway"
	GroupAnalog      GroupType = "Analog"
	GroupParalog     GroupType = "Paralog"
)

// Group is an ordered set of member elements. Groups may themselves be
// members of an enclosing group.
type Group struct {
	Common
	Grouped
	TextLabel string
	Type      GroupType
	Members   []string // member IDs in declaration order
}

func (g *Group) Kind() Kind { return KindGroup }

// HasMember reports whether id is a member of the group.
func (g *Group) HasMember(id string) bool { return slices.Contains(g.Members, id) }

// AddMember appends m to the member list and points m back at the group.
// Adding an existing member only refreshes the back-reference.
func (g *Group) AddMember(m Groupable) {
	if !g.HasMember(m.ElementID()) {
		g.Members = append(g.Members, m.ElementID())
	}
	m.SetGroupID(g.ID)
}

// RemoveMember drops id from the member list.
func (g *Group) RemoveMember(id string) {
	g.Members = slices.DeleteFunc(g.Members, func(m string) bool { return m == id })
}

// Copy returns a detached copy with the same ID and references.
func (g *Group) Copy() *Group {
	c := *g
	c.Common = g.Common.detachedCopy()
	c.Members = slices.Clone(g.Members)
	return &c
}

// LinePoint is a line endpoint, optionally attached to a target element.
type LinePoint struct {
	Point
	ElementRef string // attached node, label, shape, group or anchor
	RelX, RelY float64
	ArrowHead  string
}

// Line is a connector: an interaction, or a graphical line when Graphical is set.
type Line struct {
	Common
	Grouped
	Graphical     bool
	Start, End    LinePoint
	Waypoints     []Point
	ConnectorType string
	Anchors       []*Anchor
}

// Kind returns KindGraphicalLine for graphical lines, KindInteraction otherwise.
func (l *Line) Kind() Kind {
	if l.Graphical {
		return KindGraphicalLine
	}
	return KindInteraction
}

// StartRef returns the element the start point is attached to.
func (l *Line) StartRef() string { return l.Start.ElementRef }

// SetStartRef attaches the start point to id, or detaches it when id is "".
func (l *Line) SetStartRef(id string) { l.Start.ElementRef = id }

// EndRef returns the element the end point is attached to.
func (l *Line) EndRef() string { return l.End.ElementRef }

// SetEndRef attaches the end point to id, or detaches it when id is "".
func (l *Line) SetEndRef(id string) { l.End.ElementRef = id }

// Bounds returns the rectangle spanned by the endpoints and waypoints.
func (l *Line) Bounds() Rect {
	pts := append([]Point{l.Start.Point, l.End.Point}, l.Waypoints...)
	return RectFromPoints(pts...)
}

func (l *Line) translate(dx, dy float64) {
	l.Start.Point = l.Start.Point.Offset(dx, dy)
	l.End.Point = l.End.Point.Offset(dx, dy)
	for i := range l.Waypoints {
		l.Waypoints[i] = l.Waypoints[i].Offset(dx, dy)
	}
}

// AddAnchor creates an anchor at position (0..1 along the line) owned by l.
// If l already belongs to a model the anchor is registered there as well.
func (l *Line) AddAnchor(id string, position float64) (*Anchor, error) {
	if id == "" {
		return nil, ErrInvalidElementID
	}
	a := &Anchor{Common: Common{ID: id}, Position: position, line: l}
	if m := l.owner; m != nil {
		if _, exists := m.index[id]; exists {
			return nil, ErrDuplicateElementID
		}
		a.owner = m
		m.index[id] = a
	}
	l.Anchors = append(l.Anchors, a)
	return a, nil
}

// Anchor returns the anchor with the given ID.
func (l *Line) Anchor(id string) (*Anchor, bool) {
	for _, a := range l.Anchors {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Copy returns a detached copy with the same IDs and references. Anchors are
// copied in declaration order and owned by the new line.
func (l *Line) Copy() *Line {
	c := *l
	c.Common = l.Common.detachedCopy()
	c.Waypoints = slices.Clone(l.Waypoints)
	c.Anchors = make([]*Anchor, len(l.Anchors))
	for i, a := range l.Anchors {
		ac := *a
		ac.Common = a.Common.detachedCopy()
		ac.line = &c
		c.Anchors[i] = &ac
	}
	return &c
}

// Anchor is a connection point on a line. Anchors cannot exist without their
// line; they are created with Line.AddAnchor.
type Anchor struct {
	Common
	Position float64
	Shape    string

	line *Line
}

func (a *Anchor) Kind() Kind { return KindAnchor }

// Line returns the owning line.
func (a *Anchor) Line() *Line { return a.line }

// Info is document metadata.
type Info struct {
	Common
	Title       string
	Organism    string
	Source      string
	Version     string
	License     string
	Description string
}

func (i *Info) Kind() Kind { return KindInfo }

// IsSynthetic reports whether the info was synthesized by a copy operation.
func (i *Info) IsSynthetic() bool { return i.Source == CopiedSource }

// Copy returns a detached copy with the same ID.
func (i *Info) Copy() *Info {
	c := *i
	c.Common = i.Common.detachedCopy()
	return &c
}

// Copy returns a detached copy of e with the same IDs and references.
// Anchors cannot be copied on their own; Copy returns nil for them.
func Copy(e Element) Element {
	switch e := e.(type) {
	case *DataNode:
		return e.Copy()
	case *Label:
		return e.Copy()
	case *Shape:
		return e.Copy()
	case *Line:
		return e.Copy()
	case *Group:
		return e.Copy()
	case *Info:
		return e.Copy()
	case *Anchor:
		return nil
	}
	return nil
}

// SetID changes the identifier of a detached element.
// It returns ErrAlreadyOwned if the element belongs to a model.
func SetID(e Element, id string) error {
	c := e.common()
	if c.owner != nil {
		return ErrAlreadyOwned
	}
	if id == "" {
		return ErrInvalidElementID
	}
	c.ID = id
	return nil
}
