// Package pathway provides the element model of pathway diagrams: data
// nodes, labels, shapes, interactions, graphical lines, groups, anchors and
// document metadata, plus the [Model] that owns them.
//
// # Overview
//
// A pathway diagram is a graph of boxes and connectors. Connectors attach to
// boxes, groups or anchors (connection points sitting on other connectors),
// groups list their members, and alias nodes stand in for a group elsewhere
// on the canvas. All of these links are stored as element IDs and resolve
// through the owning [Model]:
//
//	m := pathway.New()
//	_ = m.Add(&pathway.DataNode{Common: pathway.Common{ID: "a"}, TextLabel: "TP53"})
//	_ = m.Add(&pathway.DataNode{Common: pathway.Common{ID: "b"}, TextLabel: "MDM2"})
//	_ = m.Add(&pathway.Line{
//	    Common: pathway.Common{ID: "i1"},
//	    Start:  pathway.LinePoint{ElementRef: "a"},
//	    End:    pathway.LinePoint{ElementRef: "b"},
//	})
//
// # Element Kinds
//
// [Element] is a closed interface. Its implementations are [*DataNode],
// [*Label], [*Shape], [*Line], [*Group], [*Anchor] and [*Info]; a [*Line]
// reports [KindInteraction] or [KindGraphicalLine] depending on its
// Graphical flag. Code that needs kind-specific behavior switches on the
// concrete type.
//
// Anchors are never top-level. They are created with [Line.AddAnchor] and
// are added to and removed from a model together with their line.
//
// # Reference Soundness
//
// [Model.Validate] checks that every non-empty reference resolves inside the
// model, that group membership agrees in both directions, and that anchors
// belong to lines of the model. Fragments produced by a copy may reference
// groups of the document they were copied from through alias nodes; validate
// those with [AllowExternalAliases].
//
// # Pasting
//
// [Model.Insert] moves a fragment into a document, renaming colliding IDs.
// [Model.Clone] gives callers a rollback point before they mutate a document.
//
// # Concurrency
//
// Models are not safe for concurrent use.
package pathway
