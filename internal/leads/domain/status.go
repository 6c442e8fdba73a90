// Package domain holds the pure lead domain types shared across the
// leads bounded context.
package domain

// Status is the pipeline state of a lead.
type Status string

const (
	StatusNew           Status = "new"
	StatusContacted     Status = "contacted"
	StatusCallback      Status = "callback"
	StatusWantsCallback Status = "wants_callback"
	StatusSentNumber    Status = "sent_number"
	StatusReceptionist  Status = "receptionist"
	StatusNeedClosing   Status = "need_closing"
	StatusClosedWon     Status = "closed_won"
	StatusClosedLost    Status = "closed_lost"
	StatusNotInterested Status = "not_interested"
)

// AllStatuses lists every valid lead status.
func AllStatuses() []Status {
	return []Status{
		StatusNew, StatusContacted, StatusCallback, StatusWantsCallback,
		StatusSentNumber, StatusReceptionist, StatusNeedClosing,
		StatusClosedWon, StatusClosedLost, StatusNotInterested,
	}
}

// IsValid reports whether s is a known lead status.
func (s Status) IsValid() bool {
	for _, status := range AllStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
