// Package transition holds the legal status graphs for status-bearing
// records. The old dashboard let any status reach any other through the edit
// dialog and trusted the backend to object; here illegal edits are rejected
// before a request is ever made.
package transition

// Graph maps a status to the statuses it may move to. Absent statuses are
// terminal (or unknown, which is the same thing to the caller).
type Graph map[string][]string

// Can reports whether from -> to is a legal edge. Self-transitions and
// unknown statuses are never legal.
func (g Graph) Can(from, to string) bool {
	if from == to {
		return false
	}
	for _, next := range g[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Next returns the statuses reachable from the given one, for building the
// edit dialog's option list.
func (g Graph) Next(from string) []string {
	out := make([]string, len(g[from]))
	copy(out, g[from])
	return out
}

var Campaign = Graph{
	"ACTIVE":    {"PAUSED", "SUCCESS", "COMPLETED", "CANCELLED"},
	"PAUSED":    {"ACTIVE", "CANCELLED"},
	"SUCCESS":   {"COMPLETED"},
	"COMPLETED": nil,
	"CANCELLED": nil,
}

var Donation = Graph{
	"PENDING":   {"COMPLETED", "FAILED"},
	"COMPLETED": {"VERIFIED", "REFUNDED"},
	"VERIFIED":  {"REFUNDED"},
	"FAILED":    {"PENDING"},
	"REFUNDED":  nil,
}

// Material approval is one-way: once collected or rejected a material
// donation never moves again.
var Material = Graph{
	"PENDING":   {"COLLECTED", "REJECTED"},
	"COLLECTED": nil,
	"REJECTED":  nil,
}

var Compliance = Graph{
	"PENDING_REVIEW": {"COMPLIANT", "NON_COMPLIANT"},
	"NON_COMPLIANT":  {"PENDING_REVIEW"},
	"COMPLIANT":      {"PENDING_REVIEW"},
}

// ForEntity returns the graph for a status-bearing entity name, or nil when
// the entity has no client-enforced graph.
func ForEntity(entity string) Graph {
	switch entity {
	case "campaign":
		return Campaign
	case "donation":
		return Donation
	case "material":
		return Material
	case "compliance":
		return Compliance
	}
	return nil
}
