// Package board stores copied payloads in named slots so they can be pasted
// from another process or another machine.
//
// # Backends
//
// Every backend implements [Board]:
//
//   - [FileBoard]: JSON files under a local directory, for the CLI
//   - [RedisBoard]: Redis keys, for sharing between machines
//   - [HTTPBoard]: a client for a remote [Server]
//   - [NullBoard]: stores nothing
//
// [Open] picks a backend by name and wraps it with [Observe] so board hits,
// misses and writes reach the observability hooks.
//
// # Entries
//
// An [Entry] carries the payload together with its fingerprint, which paste
// sessions use to tell their own content from a copy made elsewhere. Entries
// may expire; an expired entry reads as an empty board.
//
// # Serving
//
// [Server] exposes any board over HTTP with a chi router. `pathclip serve`
// runs it in front of a file or Redis board.
package board
