package corpus

import "time"

// RejectReason classifies why a document was excluded from the corpus.
type RejectReason string

const (
	// ReasonResolved marks issues whose status is "resolved",
	// case-insensitively. Closed issues are not duplicate candidates.
	ReasonResolved RejectReason = "resolved"
	// ReasonMissingFields marks documents lacking one of title,
	// description, category, address.
	ReasonMissingFields RejectReason = "missing_fields"
	// ReasonNoPincode marks documents whose address contains no
	// extractable 6-digit postal code.
	ReasonNoPincode RejectReason = "no_pincode"
)

// Rejection records one excluded document and why.
type Rejection struct {
	IssueID string       `json:"issueId"`
	Reason  RejectReason `json:"reason"`
	Detail  string       `json:"detail,omitempty"`
}

// Report is the outcome of one load cycle: how many documents made it
// into the corpus and exactly which were dropped. Keeping this explicit
// makes the load-time filtering observable without parsing logs.
type Report struct {
	CycleID    string      `json:"cycleId"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
	Model      string      `json:"model"`
	Accepted   int         `json:"accepted"`
	Rejections []Rejection `json:"rejections"`
}

// Rejected returns the number of excluded documents.
func (r *Report) Rejected() int {
	return len(r.Rejections)
}

// CountByReason tallies rejections per reason.
func (r *Report) CountByReason() map[RejectReason]int {
	counts := make(map[RejectReason]int)
	for _, rej := range r.Rejections {
		counts[rej.Reason]++
	}
	return counts
}
