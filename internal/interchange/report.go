// Package interchange implements bulk export and import of inventory data.
//
// Export reads the full dataset through a gateway, projects it into four CSV
// documents, and packs them into a zip archive. Import unpacks such an
// archive and reconciles it against the destination dataset: rows matching
// an existing entity by natural key (location name, tote name, user email)
// are reused, everything else is created, and foreign keys are rewritten
// from archive identities to destination identities as the phases run.
//
// Import is deliberately tolerant: only a corrupt archive or an unreachable
// data store before the first write aborts a run. Every other problem --
// a missing member document, a malformed row, an unresolvable foreign key,
// a create call the store rejects -- degrades to "skip and note", because a
// partial import is more useful to the operator than an all-or-nothing
// failure on one bad row.
package interchange

import "fmt"

// Options controls import behavior.
type Options struct {
	// IncludeUsers enables the user-provisioning phase. It is off by default
	// because creating accounts is privileged and the created users get
	// random placeholder passwords.
	IncludeUsers bool `json:"includeUsers"`
}

// Report summarizes one import run. Counters reflect successful creations
// only; everything that was skipped or rejected is described in Notes.
type Report struct {
	LocationsCreated int      `json:"locationsCreated"`
	TotesCreated     int      `json:"totesCreated"`
	ItemsCreated     int      `json:"itemsCreated"`
	UsersCreated     int      `json:"usersCreated"`
	Notes            []string `json:"notes"`
}

func newReport() *Report {
	return &Report{Notes: []string{}}
}

// note records a non-fatal warning with enough context to identify the
// offending row.
func (r *Report) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}
