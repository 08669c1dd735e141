// Package render groups the visual outputs of pathclip.
//
// The [nodelink] subpackage draws a pathway model as a Graphviz diagram,
// used by `pathclip preview` to show a board fragment or a document before
// it is pasted.
//
//	dot := nodelink.ToDOT(m, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [nodelink]: github.com/matzehuels/pathclip/pkg/render/nodelink
package render
