package transfer

import (
	"context"
	"time"

	"github.com/matzehuels/pathclip/pkg/gpml"
	"github.com/matzehuels/pathclip/pkg/observability"
	"github.com/matzehuels/pathclip/pkg/pathway"
)

// CursorShift returns the offset that moves the top-left corner of the
// elements' bounding box onto cursor. Elements without an area, such as
// metadata and groups, do not contribute.
func CursorShift(elements []pathway.Element, cursor pathway.Point) (dx, dy float64) {
	var bounds pathway.Rect
	found := false
	for _, e := range elements {
		b, ok := e.(pathway.Bounded)
		if !ok {
			continue
		}
		if !found {
			bounds, found = b.Bounds(), true
			continue
		}
		bounds = bounds.Union(b.Bounds())
	}
	if !found {
		return 0, 0
	}
	tl := bounds.TopLeft()
	return cursor.X - tl.X, cursor.Y - tl.Y
}

// PasteElements prepares a decoded fragment for insertion into target by
// removing its placeholder metadata when target has metadata of its own.
// It returns frag for chaining.
func PasteElements(frag, target *pathway.Model) *pathway.Model {
	if frag == nil || target == nil || len(target.Infos()) == 0 {
		return frag
	}
	if info, ok := gpml.SyntheticInfo(frag); ok {
		_ = frag.Remove(info.ID)
	}
	return frag
}

// Paste moves frag by (dx, dy) and inserts it into target. It returns the
// inserted elements; frag is left empty.
func Paste(ctx context.Context, target, frag *pathway.Model, dx, dy float64) []pathway.Element {
	start := time.Now()
	PasteElements(frag, target)
	frag.Translate(dx, dy)
	inserted := target.Insert(frag)
	observability.Transfer().OnPaste(ctx, len(inserted), time.Since(start), nil)
	return inserted
}
