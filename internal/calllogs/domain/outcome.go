// Package domain holds the pure call-outcome domain logic: the closed
// outcome vocabulary and the outcome-to-status mapping applied after
// every logged dial.
package domain

// Outcome is the result of a single dial attempt.
type Outcome string

const (
	OutcomeNotYet            Outcome = "not_yet"
	OutcomeAnswered          Outcome = "answered"
	OutcomeVoicemail         Outcome = "voicemail"
	OutcomeNoAnswer          Outcome = "no_answer"
	OutcomeBusy              Outcome = "busy"
	OutcomeCallbackScheduled Outcome = "callback_scheduled"
	OutcomeWantsCallback     Outcome = "wants_callback"
	OutcomeSentNumber        Outcome = "sent_number"
	OutcomeReceptionist      Outcome = "receptionist"
	OutcomeNeedClosing       Outcome = "need_closing"
	OutcomeClosedWon         Outcome = "closed_won"
	OutcomeClosedLost        Outcome = "closed_lost"
	OutcomeNotInterested     Outcome = "not_interested"
	OutcomeWrongNumber       Outcome = "wrong_number"
	OutcomeDoNotCall         Outcome = "do_not_call"
)

// AllOutcomes lists every valid call outcome.
func AllOutcomes() []Outcome {
	return []Outcome{
		OutcomeNotYet, OutcomeAnswered, OutcomeVoicemail, OutcomeNoAnswer,
		OutcomeBusy, OutcomeCallbackScheduled, OutcomeWantsCallback,
		OutcomeSentNumber, OutcomeReceptionist, OutcomeNeedClosing,
		OutcomeClosedWon, OutcomeClosedLost, OutcomeNotInterested,
		OutcomeWrongNumber, OutcomeDoNotCall,
	}
}

// IsValid reports whether o is a known call outcome.
func (o Outcome) IsValid() bool {
	for _, outcome := range AllOutcomes() {
		if o == outcome {
			return true
		}
	}
	return false
}

// statusByOutcome maps outcomes that move the lead's pipeline state.
// Outcomes absent from the table leave the status untouched.
var statusByOutcome = map[Outcome]string{
	OutcomeCallbackScheduled: "callback",
	OutcomeSentNumber:        "sent_number",
	OutcomeWantsCallback:     "wants_callback",
	OutcomeReceptionist:      "receptionist",
	OutcomeNeedClosing:       "need_closing",
	OutcomeClosedWon:         "closed_won",
	OutcomeClosedLost:        "closed_lost",
	OutcomeNotInterested:     "not_interested",
	OutcomeWrongNumber:       "not_interested",
	OutcomeDoNotCall:         "not_interested",
}

// MapToStatus returns the lead status implied by the outcome and whether
// the outcome changes the status at all. Logging a call always stamps
// last_called_at on the lead; the status change is a separate, conditional
// effect driven by this table.
func MapToStatus(outcome Outcome) (string, bool) {
	status, ok := statusByOutcome[outcome]
	return status, ok
}
