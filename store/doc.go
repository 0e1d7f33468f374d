// Package store owns the entity graph of the transit network: a
// deduplicated (type, id) -> entity map, the ordered categorical views
// derived at ingestion, and the incrementally maintained stop -> route
// membership index.
//
// Ingestion is idempotent: batches overlap and the same entity may be
// re-downloaded at any time, so re-ingesting a known element is a
// no-op for identity. First-seen tags are authoritative; later batches
// only add flags (HasMaster, fully-downloaded). Two store instances
// exist per session (primary and workspace) and are merged only by
// replaying the workspace's responses through the primary's ingestion
// path.
package store
