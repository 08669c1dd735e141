package copyset

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/pathway"
)

// Set is the duplicate side of one copy operation: detached duplicates of the
// selected elements plus the correspondence back to their originals.
//
// A Set is used once: Build, then Remap, then Fragment.
type Set struct {
	src       *pathway.Model
	corr      *Correspondence
	synthetic *pathway.Info
	logger    *log.Logger
	ids       map[string]bool // IDs handed out by this operation
	remapped  bool
	taken     bool
}

// Option configures Build.
type Option func(*options)

type options struct {
	synthetic bool
	logger    *log.Logger
}

// WithoutSyntheticInfo disables the placeholder metadata element normally
// added when the selection contains no Info.
func WithoutSyntheticInfo() Option {
	return func(o *options) { o.synthetic = false }
}

// WithLogger sets the logger for diagnostics during building.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Build duplicates the selected elements of src. Each duplicate gets a fresh
// ID that is unused in src; its references still hold the IDs of the
// originals until [Set.Remap] runs.
//
// Anchors are duplicated with their line only. An anchor selected without its
// line is skipped, and one selected with it is deduplicated. Elements that do
// not belong to src are rejected. The source document is not modified.
func Build(src *pathway.Model, selection []pathway.Element, opts ...Option) (*Set, error) {
	if src == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no source document")
	}
	o := options{synthetic: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}

	s := &Set{
		src:    src,
		corr:   newCorrespondence(),
		logger: o.logger,
		ids:    make(map[string]bool),
	}

	selected := make(map[string]bool, len(selection))
	for _, e := range selection {
		if e == nil {
			continue
		}
		if e.Owner() != src {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s %s is not part of the source document", e.Kind(), e.ElementID())
		}
		selected[e.ElementID()] = true
	}

	hasInfo := false
	for _, e := range selection {
		if e == nil {
			continue
		}
		if _, seen := s.corr.elements[e.ElementID()]; seen {
			continue
		}
		switch e := e.(type) {
		case *pathway.Anchor:
			if l := e.Line(); l != nil && selected[l.ID] {
				s.logger.Debug("anchor copied with its line", "anchor", e.ID, "line", l.ID)
			} else {
				s.logger.Debug("skipping anchor selected without its line", "anchor", e.ID)
			}
			continue
		case *pathway.Info:
			hasInfo = true
		}
		if err := s.duplicate(e); err != nil {
			return nil, err
		}
	}

	if !hasInfo && o.synthetic {
		s.synthetic = &pathway.Info{
			Common: pathway.Common{ID: s.freshID()},
			Source: pathway.CopiedSource,
		}
	}
	return s, nil
}

func (s *Set) duplicate(orig pathway.Element) error {
	dup := pathway.Copy(orig)
	if dup == nil {
		return errors.Internal("cannot duplicate %s %s", orig.Kind(), orig.ElementID())
	}
	if err := pathway.SetID(dup, s.freshID()); err != nil {
		return errors.Internal("rename duplicate of %s: %v", orig.ElementID(), err)
	}
	if l, ok := orig.(*pathway.Line); ok {
		dl := dup.(*pathway.Line)
		if len(dl.Anchors) != len(l.Anchors) {
			return errors.Internal("line %s: duplicated %d of %d anchors", l.ID, len(dl.Anchors), len(l.Anchors))
		}
		for i, a := range l.Anchors {
			da := dl.Anchors[i]
			if err := pathway.SetID(da, s.freshID()); err != nil {
				return errors.Internal("rename anchor duplicate of %s: %v", a.ID, err)
			}
			s.corr.addAnchor(a, da)
		}
	}
	s.corr.addElement(orig, dup)
	return nil
}

func (s *Set) freshID() string {
	for {
		id := s.src.NewID()
		if !s.ids[id] {
			s.ids[id] = true
			return id
		}
	}
}

// Source returns the document the set was copied from.
func (s *Set) Source() *pathway.Model { return s.src }

// Correspondence returns the original-to-duplicate tables.
func (s *Set) Correspondence() *Correspondence { return s.corr }

// Synthetic returns the placeholder metadata element, or nil if the
// selection carried its own Info or the placeholder was disabled.
func (s *Set) Synthetic() *pathway.Info { return s.synthetic }

// Elements returns the duplicates in selection order, followed by the
// synthetic Info if there is one.
func (s *Set) Elements() []pathway.Element {
	out := make([]pathway.Element, 0, len(s.corr.pairs)+1)
	for _, p := range s.corr.pairs {
		out = append(out, p.dup)
	}
	if s.synthetic != nil {
		out = append(out, s.synthetic)
	}
	return out
}

// Len returns the number of duplicates, the synthetic Info included.
func (s *Set) Len() int {
	n := len(s.corr.pairs)
	if s.synthetic != nil {
		n++
	}
	return n
}
