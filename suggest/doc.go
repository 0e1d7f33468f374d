// Package suggest computes route-group suggestions: routes sharing a
// reference code that lack an existing parent grouping, each scored
// with a partial-coverage trust signal.
package suggest
