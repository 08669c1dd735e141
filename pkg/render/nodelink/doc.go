// Package nodelink renders pathway documents and fragments as node-link
// diagrams for previewing what a copy will carry.
//
// # Usage
//
// Convert a model to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(m, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Mapping
//
// The diagram follows the document's structure rather than its coordinates:
//
//   - Data nodes, labels and shapes are nodes; alias nodes are dashed
//   - Groups are clusters holding their members, nested as in the document
//   - Interactions are solid edges, graphical lines dashed
//   - Anchors are small points splitting their line, so lines attached to
//     an anchor meet it there
//   - Line ends attached to nothing end in a point of their own
//
// References to elements outside the model, as in a fragment copied without
// its partners, are drawn as unattached ends.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
