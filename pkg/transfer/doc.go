// Package transfer connects copied fragments to a flat-text transport such
// as a system clipboard or a board.
//
// # Payloads
//
// A [Payload] holds the same content in one or more flavors. Fragments travel
// as [FlavorText]; file managers offer [FlavorFileList], and some platforms
// put locators, or plain text by mistake, under [FlavorURIList].
// [ExtractText] and [ExtractFileLocation] pick the usable flavor.
//
// # Copy and Load
//
// [Adapter.Copy] runs the whole copy direction: it duplicates the selection
// with package copyset, serializes the fragment with package gpml and offers
// it as a text payload. Serialization failures are logged and produce an
// empty payload rather than partial text.
//
// [Adapter.Load] is the paste direction: text is decoded as a fragment, a
// file locator is handed to the [DocumentLoader], and anything else yields
// nothing. Empty text is not an error.
//
// # Paste Sessions
//
// Pasting the same content repeatedly offsets each copy by [PasteOffset]
// more than the last so pastes do not stack. A [Session] counts pastes for
// content it owns, identified by its [Fingerprint], and stops shifting once
// the board holds someone else's content. [SessionStore] keeps sessions on
// disk between invocations. Pasting at a cursor uses [CursorShift] instead.
package transfer
