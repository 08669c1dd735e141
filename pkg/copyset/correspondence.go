package copyset

import "github.com/matzehuels/pathclip/pkg/pathway"

// pair links an original top-level element to its duplicate.
type pair struct {
	orig pathway.Element
	dup  pathway.Element
}

// Correspondence maps original IDs to duplicates for one copy operation.
// Top-level elements and anchors live in separate tables so an anchor can
// never be mistaken for a box and vice versa.
type Correspondence struct {
	pairs    []pair
	elements map[string]pathway.Element
	anchors  map[string]*pathway.Anchor
}

func newCorrespondence() *Correspondence {
	return &Correspondence{
		elements: make(map[string]pathway.Element),
		anchors:  make(map[string]*pathway.Anchor),
	}
}

func (c *Correspondence) addElement(orig, dup pathway.Element) {
	c.pairs = append(c.pairs, pair{orig, dup})
	c.elements[orig.ElementID()] = dup
}

func (c *Correspondence) addAnchor(orig, dup *pathway.Anchor) {
	c.anchors[orig.ID] = dup
}

// Element returns the duplicate of the original top-level element id.
func (c *Correspondence) Element(id string) (pathway.Element, bool) {
	e, ok := c.elements[id]
	return e, ok
}

// Anchor returns the duplicate of the original anchor id.
func (c *Correspondence) Anchor(id string) (*pathway.Anchor, bool) {
	a, ok := c.anchors[id]
	return a, ok
}

// Resolve returns the duplicate ID for an original ID, looking in both
// tables. It reports false when the target was not copied.
func (c *Correspondence) Resolve(id string) (string, bool) {
	if e, ok := c.elements[id]; ok {
		return e.ElementID(), true
	}
	if a, ok := c.anchors[id]; ok {
		return a.ID, true
	}
	return "", false
}

// Len returns the number of top-level pairs.
func (c *Correspondence) Len() int { return len(c.pairs) }

// Copied reports whether the original element or anchor id was copied.
func (c *Correspondence) Copied(id string) bool {
	_, ok := c.Resolve(id)
	return ok
}
