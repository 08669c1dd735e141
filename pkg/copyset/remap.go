package copyset

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/pathway"
)

// Lookup finds elements of the live destination document. *pathway.Model
// implements it.
type Lookup interface {
	Element(id string) (pathway.Element, bool)
}

// Drop is a reference that could not be carried into the copy.
type Drop struct {
	Ref     pathway.RefKind
	Element string // duplicate that held the reference
	Target  string // original target ID
}

// ExternalRef is an alias reference kept pointing at a group of the live
// document because the group itself was not copied.
type ExternalRef struct {
	Element string // duplicate alias node
	Group   string
}

// Report lists the references Remap degraded. Neither list is an error:
// partial selections are expected to lose references.
type Report struct {
	Dropped  []Drop
	External []ExternalRef
}

// DroppedOf returns the drops of the given reference kind.
func (r *Report) DroppedOf(kind pathway.RefKind) []Drop {
	var out []Drop
	for _, d := range r.Dropped {
		if d.Ref == kind {
			out = append(out, d)
		}
	}
	return out
}

// Remap rewires the references of every duplicate from the originals'
// targets to their duplicates. Targets that were not copied are cleared,
// except alias targets still present in live, which are kept as external
// references. live may be nil.
//
// Every lookup reads the original element, never another duplicate, so the
// result does not depend on selection order. Remap fails only on a broken
// correspondence, which is reported as an internal error.
func (s *Set) Remap(live Lookup, logger *log.Logger) (*Report, error) {
	if s.remapped {
		return nil, errors.Internal("copy set already remapped")
	}
	if logger == nil {
		logger = s.logger
	}
	r := &remapper{set: s, live: live, logger: logger, report: &Report{}}
	for _, p := range s.corr.pairs {
		if err := r.remap(p.orig, p.dup); err != nil {
			return nil, err
		}
	}
	s.remapped = true
	return r.report, nil
}

type remapper struct {
	set    *Set
	live   Lookup
	logger *log.Logger
	report *Report
}

func (r *remapper) remap(orig, dup pathway.Element) error {
	if orig.Kind() != dup.Kind() {
		return errors.Internal("duplicate %s of %s %s has kind %s", dup.ElementID(), orig.Kind(), orig.ElementID(), dup.Kind())
	}
	switch d := dup.(type) {
	case *pathway.DataNode:
		o := orig.(*pathway.DataNode)
		r.groupRef(d, o.GroupRef)
		r.alias(d, o)
	case *pathway.Label:
		r.groupRef(d, orig.(*pathway.Label).GroupRef)
	case *pathway.Shape:
		r.groupRef(d, orig.(*pathway.Shape).GroupRef)
	case *pathway.Line:
		o := orig.(*pathway.Line)
		if err := r.checkAnchors(o, d); err != nil {
			return err
		}
		r.groupRef(d, o.GroupRef)
		d.SetStartRef(r.endpoint(d.ID, pathway.RefStart, o.StartRef()))
		d.SetEndRef(r.endpoint(d.ID, pathway.RefEnd, o.EndRef()))
	case *pathway.Group:
		o := orig.(*pathway.Group)
		r.groupRef(d, o.GroupRef)
		r.members(d, o)
	case *pathway.Info:
	case *pathway.Anchor:
		return errors.Internal("anchor %s registered as a top-level duplicate", d.ID)
	default:
		return errors.Internal("unhandled element kind %s", dup.Kind())
	}
	return nil
}

func (r *remapper) drop(kind pathway.RefKind, elem, target string) {
	r.report.Dropped = append(r.report.Dropped, Drop{Ref: kind, Element: elem, Target: target})
}

// endpoint resolves a line endpoint. Anchors resolve through their own table.
func (r *remapper) endpoint(elem string, kind pathway.RefKind, target string) string {
	if target == "" {
		return ""
	}
	if id, ok := r.set.corr.Resolve(target); ok {
		return id
	}
	r.logger.Debug("endpoint target not copied", "line", elem, "end", kind, "target", target)
	r.drop(kind, elem, target)
	return ""
}

func (r *remapper) groupRef(dup pathway.Groupable, target string) {
	if target == "" {
		dup.SetGroupID("")
		return
	}
	if g, ok := r.set.corr.Element(target); ok {
		dup.SetGroupID(g.ElementID())
		return
	}
	r.logger.Debug("enclosing group not copied", "element", dup.ElementID(), "group", target)
	r.drop(pathway.RefGroup, dup.ElementID(), target)
	dup.SetGroupID("")
}

// members keeps the copied members of the original group in their original
// order. No completeness check is made: a partly copied group stays partial.
func (r *remapper) members(dup, orig *pathway.Group) {
	var members []string
	for _, id := range orig.Members {
		if m, ok := r.set.corr.Element(id); ok {
			members = append(members, m.ElementID())
			continue
		}
		r.logger.Warn("group member not copied", "group", dup.ID, "member", id)
		r.drop(pathway.RefMember, dup.ID, id)
	}
	dup.Members = members
}

func (r *remapper) alias(dup, orig *pathway.DataNode) {
	target := orig.AliasRef
	if target == "" {
		dup.AliasRef = ""
		return
	}
	if g, ok := r.set.corr.Element(target); ok {
		dup.AliasRef = g.ElementID()
		return
	}
	if r.live != nil {
		if e, ok := r.live.Element(target); ok && e.Kind() == pathway.KindGroup {
			dup.AliasRef = target
			r.report.External = append(r.report.External, ExternalRef{Element: dup.ID, Group: target})
			return
		}
	}
	r.logger.Warn("alias target not available", "alias", dup.ID, "group", target)
	r.drop(pathway.RefAlias, dup.ID, target)
	dup.AliasRef = ""
}

// checkAnchors verifies that anchors were paired in declaration order and
// that every duplicate anchor is owned by the duplicate line.
func (r *remapper) checkAnchors(orig, dup *pathway.Line) error {
	if len(orig.Anchors) != len(dup.Anchors) {
		return errors.Internal("line %s: %d anchors, duplicate has %d", orig.ID, len(orig.Anchors), len(dup.Anchors))
	}
	for i, a := range orig.Anchors {
		da, ok := r.set.corr.Anchor(a.ID)
		if !ok {
			return errors.Internal("anchor %s of line %s has no duplicate", a.ID, orig.ID)
		}
		if da != dup.Anchors[i] || da.Line() != dup {
			return errors.Internal("duplicate of anchor %s is not owned by duplicate line %s", a.ID, dup.ID)
		}
	}
	return nil
}

// Fragment assembles the remapped duplicates into a new model with a fresh
// document ID. It may be called once, after Remap.
func (s *Set) Fragment() (*pathway.Model, error) {
	if !s.remapped {
		return nil, errors.Internal("copy set not remapped")
	}
	if s.taken {
		return nil, errors.Internal("copy set fragment already taken")
	}
	m := pathway.New()
	for _, e := range s.Elements() {
		if err := m.Add(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "assemble fragment")
		}
	}
	s.taken = true
	return m, nil
}
