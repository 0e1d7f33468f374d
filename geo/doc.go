// Package geo holds the consumed geometry boundaries of the core:
// the visible-bounds provider with its point-containment predicate,
// and the external geometry-conversion hook.
package geo
