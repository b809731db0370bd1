package domain

import "time"

// PhaseNames are the construction phases a site may be planned with, in build order.
var PhaseNames = []string{
	"Foundation",
	"Plinth",
	"Superstructure",
	"Brickwork",
	"Plumbing",
	"Electrical",
	"Plastering",
	"Flooring",
	"Painting",
	"Finishing",
}

// IsPhaseName reports whether name is one of PhaseNames.
func IsPhaseName(name string) bool {
	for _, n := range PhaseNames {
		if n == name {
			return true
		}
	}
	return false
}

// Phase is a site phase; completion goes through the approval workflow.
type Phase struct {
	PhaseID        string      `json:"phaseID"`
	SiteID         string      `json:"siteID"`
	Name           string      `json:"name"`
	Position       int         `json:"position"`
	Status         EventStatus `json:"status"`
	RequestedBy    string      `json:"requestedBy,omitempty"`
	RequestedAt    *time.Time  `json:"requestedAt,omitempty"`
	ResolvedBy     string      `json:"resolvedBy,omitempty"`
	CompletionDate *time.Time  `json:"completionDate,omitempty"`
	AuditFields
}
