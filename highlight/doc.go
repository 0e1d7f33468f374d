// Package highlight drives the selection/highlight state machine:
// exactly one overlay set is active at a time, released in full before
// any new selection draws, so the rendering surface never shows stale
// visuals.
package highlight
