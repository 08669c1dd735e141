// Package gpml reads and writes pathway documents as XML.
//
// # Overview
//
// The same format serves as the on-disk document and as the clipboard
// payload, so a copied fragment can be pasted into a document or opened on
// its own. A payload is self-describing: every reference is an element ID
// that resolves inside the payload, except alias references, which may name
// a group of the document the fragment was copied from.
//
// # Format
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<Pathway xmlns="http://pathclip.dev/gpml/2021" schemaVersion="1">
//	  <Info elementId="id3f9c0a1b" source="COPIED"/>
//	  <DataNode elementId="a" textLabel="TP53" type="Protein">
//	    <Xref identifier="P04637" dataSource="Uniprot-TrEMBL"/>
//	    <Graphics centerX="120" centerY="80" width="90" height="25"/>
//	  </DataNode>
//	  <Interaction elementId="i1">
//	    <Start x="165" y="80" elementRef="a"/>
//	    <End x="300" y="80" arrowHead="mim-conversion"/>
//	    <Anchor elementId="anc1" position="0.5"/>
//	  </Interaction>
//	  <Group elementId="g" type="Complex">
//	    <Member elementRef="a"/>
//	  </Group>
//	</Pathway>
//
// Elements appear in model order directly under the root. Groups list their
// members in order; the members' own group references are derived from
// those lists when reading. Zero numbers and empty strings are omitted.
//
// # Reading
//
// [Read], [Unmarshal] and [ReadFile] are all-or-nothing: malformed input
// fails with an [errors.ErrCodeInvalidPayload] error and no model. Empty
// input is a normal "nothing to paste" outcome and returns (nil, nil).
// [Inspect] answers quick questions about a payload through XPath without
// decoding it.
//
// # Synthetic Metadata
//
// Fragments copied without document metadata carry a placeholder Info whose
// source is "COPIED". [SyntheticInfo] finds it so consumers can drop it when
// pasting into a document that already has metadata. The codec itself never
// drops it.
//
// [errors.ErrCodeInvalidPayload]: github.com/matzehuels/pathclip/pkg/errors
package gpml
