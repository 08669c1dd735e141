// Package copyset duplicates a selection of pathway elements and rewires the
// duplicates' references so the result is an independent document fragment.
//
// # Overview
//
// Copying a subgraph out of a diagram is a two phase operation:
//
//  1. [Build] creates one detached duplicate per selected element, with a
//     fresh ID, and records the original-to-duplicate correspondence. Lines
//     bring their anchors along, paired in declaration order.
//  2. [Set.Remap] resolves every reference of every duplicate by looking up
//     the original's target in the correspondence. Targets that were copied
//     are replaced by their duplicates. Targets that were not are cleared:
//     lines float, groups become partial, enclosing groups are forgotten.
//
// Alias nodes are the one exception. An alias whose group was not copied
// keeps pointing at the group if it still exists in the live document passed
// to Remap, and is reported in [Report.External].
//
//	set, err := copyset.Build(doc, selection)
//	if err != nil {
//	    return err
//	}
//	report, err := set.Remap(doc, logger)
//	if err != nil {
//	    return err // internal error, never a partial selection
//	}
//	frag, err := set.Fragment()
//
// Degraded references are never errors. They are listed in the [Report] and
// logged: alias and member drops at warn level, everything else at debug.
//
// # Metadata
//
// When the selection holds no [pathway.Info], Build adds a placeholder whose
// Source is [pathway.CopiedSource]. Paste consumers use it to recognize and
// discard copy-generated metadata. [WithoutSyntheticInfo] turns this off.
package copyset
