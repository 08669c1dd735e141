// Package pkg provides the core libraries for pathclip, structured copy and
// paste of pathway diagram fragments.
//
// # Overview
//
// A pathway diagram is a set of elements that refer to each other by ID:
// lines attach to nodes and anchors, groups list their members, aliases point
// at groups. Copying part of a diagram has to keep the references inside the
// selection intact and cut the ones that leave it. The pkg directory is
// organized into these areas:
//
//  1. [pathway] - The element model (nodes, lines, anchors, groups, metadata)
//  2. [copyset] - Copy sets and reference remapping
//  3. [gpml] - The XML interchange format
//  4. [transfer] - Payloads, copy/paste flow and paste sessions
//  5. [board] - Shared storage for payloads (file, redis, HTTP)
//
// # Architecture
//
// The data flow of a copy and a later paste:
//
//	Source document + selection
//	         ↓
//	    [copyset] package (duplicate, remap references)
//	         ↓
//	    [gpml] package (serialize fragment)
//	         ↓
//	    [board] package (store payload)
//	         ↓
//	    [gpml] package (decode fragment)
//	         ↓
//	    [transfer] package (offset, insert into target)
//
// # Quick Start
//
// Copy two nodes and the line between them, then paste into another model:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/pathclip/pkg/gpml"
//	    "github.com/matzehuels/pathclip/pkg/transfer"
//	)
//
//	src, _ := gpml.ReadFile("glycolysis.gpml")
//	dst, _ := gpml.ReadFile("tca.gpml")
//
//	// 1. Copy the selection into a payload
//	a := transfer.NewAdapter()
//	copied, _ := a.Copy(ctx, src, selection)
//
//	// 2. Decode it on the other side
//	frag, _ := a.Load(ctx, copied.Payload)
//
//	// 3. Insert, offset from the original position
//	transfer.Paste(ctx, dst, frag, transfer.PasteOffset, transfer.PasteOffset)
//
// # Supporting Packages
//
// [errors] - Coded errors and input validation shared by all packages.
//
// [observability] - Hooks for copy, paste, board and HTTP events.
//
// [httputil] - Retries and request helpers for the HTTP board client.
//
// [render/nodelink] - Graphviz previews of fragments and documents.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/copyset/...     # Specific package
//	go test -run Example ./pkg/...
//
// [pathway]: https://pkg.go.dev/github.com/matzehuels/pathclip/pkg/pathway
// [copyset]: https://pkg.go.dev/github.com/matzehuels/pathclip/pkg/copyset
// [gpml]: https://pkg.go.dev/github.com/matzehuels/pathclip/pkg/gpml
// [transfer]: https://pkg.go.dev/github.com/matzehuels/pathclip/pkg/transfer
// [board]: https://pkg.go.dev/github.com/matzehuels/pathclip/pkg/board
// [errors]: https://pkg.go.dev/github.com/matzehuels/pathclip/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pathclip/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/pathclip/pkg/httputil
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/pathclip/pkg/render/nodelink
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pathclip/pkg/buildinfo
package pkg
