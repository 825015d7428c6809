// Package reader decodes framed entities lazily on the host side.
//
// Decode validates the framing once and returns a view. Each accessor
// decodes its field on first use and keeps the result. Views read straight
// from the shared arena, so they go stale as soon as the engine writes the
// next event: a stale view still answers from fields it already decoded,
// but touching a new field panics with ErrStale. Detach copies the bytes
// out and returns a view that never goes stale.
package reader
