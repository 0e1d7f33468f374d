package suggest

import (
	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
)

// ComputeCoverage scores each candidate relation by what fraction of
// its members are fully known: among node-type members present in
// knownNodes, those also in fullyDownloaded count toward the score,
// against the relation's total member count.
//
// Relations with zero members are excluded from the result entirely:
// their coverage is undefined, not zero, so tiny relations never show
// up as false negatives.
//
// The score is a trust signal only. It never blocks inclusion; it is
// surfaced so a user can judge confidence before accepting a grouping
// suggestion. It is recomputed per request, never cached across
// ingestion events.
func ComputeCoverage(candidates []*osm.Entity, knownNodes, fullyDownloaded map[int64]struct{}) map[int64]float64 {
	out := make(map[int64]float64, len(candidates))
	for _, rel := range candidates {
		total := len(rel.Members)
		if total == 0 {
			continue
		}
		fully := 0
		for _, m := range rel.Members {
			if m.Type != osm.TypeNode {
				continue
			}
			if _, known := knownNodes[m.Ref]; !known {
				continue
			}
			if _, ok := fullyDownloaded[m.Ref]; ok {
				fully++
			}
		}
		out[rel.ID] = 100 * float64(fully) / float64(total)
	}
	return out
}
