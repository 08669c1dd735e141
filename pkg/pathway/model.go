package pathway

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidElementID is returned by [Model.Add] and [Line.AddAnchor] when
	// the element ID is empty. All elements must have non-empty identifiers.
	ErrInvalidElementID = errors.New("element ID must not be empty")

	// ErrDuplicateElementID is returned by [Model.Add] and [Line.AddAnchor]
	// when an element (or anchor) with the same ID already exists in the model.
	ErrDuplicateElementID = errors.New("duplicate element ID")

	// ErrAlreadyOwned is returned by [Model.Add] when the element belongs to
	// another model. Detach it with [Model.Remove] or add a [Copy] instead.
	ErrAlreadyOwned = errors.New("element already belongs to a model")

	// ErrUnknownElement is returned by [Model.Remove] when the ID is not found.
	ErrUnknownElement = errors.New("unknown element")

	// ErrDanglingReference is returned by [Model.Validate] when a reference
	// points at an element that is not part of the model.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrAnchorDetached is returned by [Model.Add] for a bare anchor, and by
	// [Model.Validate] when an anchor's line is not part of the model.
	ErrAnchorDetached = errors.New("anchor is not owned by a line in the model")
)

// Model is a pathway document: an ordered set of top-level elements plus an
// index of every addressable element, anchors included.
//
// The zero value is not usable - use New to create a model.
// Model is not safe for concurrent use without external synchronization.
type Model struct {
	id    string
	order []Element          // top-level elements in insertion order
	index map[string]Element // every element by ID, anchors included
}

// New creates an empty model with a fresh document ID.
func New() *Model {
	return &Model{
		id:    uuid.NewString(),
		index: make(map[string]Element),
	}
}

// ID returns the document identity. It is unrelated to element IDs.
func (m *Model) ID() string { return m.id }

// Add attaches a detached element to the model. Anchors of a line are
// registered along with it; a bare anchor is rejected with ErrAnchorDetached.
func (m *Model) Add(e Element) error {
	if _, ok := e.(*Anchor); ok {
		return ErrAnchorDetached
	}
	c := e.common()
	if c.ID == "" {
		return ErrInvalidElementID
	}
	if c.owner != nil {
		return fmt.Errorf("%s %s: %w", e.Kind(), c.ID, ErrAlreadyOwned)
	}
	ids := []string{c.ID}
	if l, ok := e.(*Line); ok {
		for _, a := range l.Anchors {
			if a.ID == "" {
				return fmt.Errorf("anchor of line %s: %w", c.ID, ErrInvalidElementID)
			}
			ids = append(ids, a.ID)
		}
	}
	for i, id := range ids {
		if _, exists := m.index[id]; exists || slices.Contains(ids[:i], id) {
			return fmt.Errorf("%s: %w", id, ErrDuplicateElementID)
		}
	}
	m.attach(e)
	return nil
}

func (m *Model) attach(e Element) {
	c := e.common()
	c.owner = m
	m.index[c.ID] = e
	m.order = append(m.order, e)
	if l, ok := e.(*Line); ok {
		for _, a := range l.Anchors {
			a.owner = m
			a.line = l
			m.index[a.ID] = a
		}
	}
}

// Remove detaches the element with the given ID. Removing a line removes its
// anchors; removing an anchor only detaches it from its line. References to
// removed elements held by the rest of the model are cleared.
func (m *Model) Remove(id string) error {
	e, ok := m.index[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownElement)
	}
	gone := map[string]bool{id: true}
	switch e := e.(type) {
	case *Anchor:
		l := e.line
		l.Anchors = slices.DeleteFunc(l.Anchors, func(a *Anchor) bool { return a == e })
		e.line = nil
	case *Line:
		for _, a := range e.Anchors {
			gone[a.ID] = true
			delete(m.index, a.ID)
			a.owner = nil
		}
		m.order = slices.DeleteFunc(m.order, func(o Element) bool { return o == Element(e) })
	default:
		m.order = slices.DeleteFunc(m.order, func(o Element) bool { return o == e })
	}
	delete(m.index, id)
	e.common().owner = nil

	for _, o := range m.order {
		rewriteRefs(o, func(_ RefKind, target string) string {
			if gone[target] {
				return ""
			}
			return target
		})
	}
	return nil
}

// Element returns the element with the given ID, anchors included.
func (m *Model) Element(id string) (Element, bool) {
	e, ok := m.index[id]
	return e, ok
}

// Has reports whether an element (or anchor) with the given ID exists.
func (m *Model) Has(id string) bool {
	_, ok := m.index[id]
	return ok
}

// Elements returns the top-level elements in insertion order. Anchors are
// reachable through their lines.
func (m *Model) Elements() []Element { return slices.Clone(m.order) }

// Len returns the number of top-level elements.
func (m *Model) Len() int { return len(m.order) }

// Infos returns the metadata elements in insertion order.
func (m *Model) Infos() []*Info {
	var out []*Info
	for _, e := range m.order {
		if i, ok := e.(*Info); ok {
			out = append(out, i)
		}
	}
	return out
}

// NewID returns an element ID that is not used in the model.
func (m *Model) NewID() string {
	for {
		id := "id" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		if !m.Has(id) {
			return id
		}
	}
}

// Clone returns a deep copy of the model with the same document ID and
// element IDs. It is used to roll back a failed paste.
func (m *Model) Clone() *Model {
	c := &Model{id: m.id, index: make(map[string]Element, len(m.index))}
	for _, e := range m.order {
		c.attach(Copy(e))
	}
	return c
}

// Translate moves every bounded element by (dx, dy).
func (m *Model) Translate(dx, dy float64) {
	for _, e := range m.order {
		if b, ok := e.(Bounded); ok {
			b.translate(dx, dy)
		}
	}
}

// Bounds returns the bounding rectangle of all bounded elements.
func (m *Model) Bounds() Rect { return BoundsOf(m.order) }

// BoundsOf returns the bounding rectangle of the bounded elements in es.
func BoundsOf(es []Element) Rect {
	var r Rect
	for _, e := range es {
		if b, ok := e.(Bounded); ok {
			r = r.Union(b.Bounds())
		}
	}
	return r
}

// ValidateOption configures [Model.Validate].
type ValidateOption func(*validateConfig)

type validateConfig struct {
	externalAliases bool
}

// AllowExternalAliases accepts alias references to groups that are not part
// of the model. Pasted fragments may carry such references.
func AllowExternalAliases() ValidateOption {
	return func(c *validateConfig) { c.externalAliases = true }
}

// Validate checks reference soundness: every non-empty reference resolves to
// an element of a suitable kind inside the model, group membership agrees in
// both directions, and every anchor is owned by a line of the model.
func (m *Model) Validate(opts ...ValidateOption) error {
	var cfg validateConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, e := range m.index {
		if a, ok := e.(*Anchor); ok {
			if a.line == nil || a.line.owner != m {
				return fmt.Errorf("anchor %s: %w", a.ID, ErrAnchorDetached)
			}
			continue
		}
		for _, ref := range References(e) {
			if err := m.checkRef(e, ref, cfg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Model) checkRef(e Element, ref Ref, cfg validateConfig) error {
	target, ok := m.index[ref.Target]
	if !ok {
		if ref.Kind == RefAlias && cfg.externalAliases {
			return nil
		}
		return fmt.Errorf("%s %s: %s %s: %w", e.Kind(), e.ElementID(), ref.Kind, ref.Target, ErrDanglingReference)
	}
	bad := func() error {
		return fmt.Errorf("%s %s: %s %s is a %s: %w", e.Kind(), e.ElementID(), ref.Kind, ref.Target, target.Kind(), ErrDanglingReference)
	}
	switch ref.Kind {
	case RefStart, RefEnd:
		switch target.Kind() {
		case KindInfo, KindInteraction, KindGraphicalLine:
			return bad()
		}
	case RefMember:
		g, ok := target.(Groupable)
		if !ok || g.GroupID() != e.ElementID() {
			return bad()
		}
	case RefGroup, RefAlias:
		g, ok := target.(*Group)
		if !ok {
			return bad()
		}
		if ref.Kind == RefGroup && !g.HasMember(e.ElementID()) {
			return bad()
		}
	}
	return nil
}
