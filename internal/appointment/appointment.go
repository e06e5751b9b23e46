package appointment

import "time"

// NoPreference is the default preferred artist when the client leaves the
// field blank.
const NoPreference = "No preference"

// Request is a single appointment request submitted through the public site.
// ID and SubmittedAt are assigned by the store on append. Summary, when
// present, is produced once at submission time and never recomputed.
type Request struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"fullName"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	PreferredArtist    string    `json:"preferredArtist"`
	TattooStyle        string    `json:"tattooStyle,omitempty"`
	Placement          string    `json:"placement,omitempty"`
	ApproximateSize    string    `json:"approximateSize,omitempty"`
	TattooDescription  string    `json:"tattooDescription"`
	BudgetRange        string    `json:"budgetRange,omitempty"`
	PreferredTimeframe string    `json:"preferredTimeframe,omitempty"`
	SubmittedAt        time.Time `json:"submittedAt"`
	Summary            string    `json:"summary,omitempty"`
}
