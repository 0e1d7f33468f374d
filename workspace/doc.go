// Package workspace isolates the secondary entity store used during
// route-group discovery and reconciles it into the primary store by
// full replay when the discovery view closes.
package workspace
