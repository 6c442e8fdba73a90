package domain

import "testing"

func TestMapToStatus(t *testing.T) {
	tests := []struct {
		outcome    Outcome
		wantStatus string
		wantChange bool
	}{
		{OutcomeCallbackScheduled, "callback", true},
		{OutcomeSentNumber, "sent_number", true},
		{OutcomeWantsCallback, "wants_callback", true},
		{OutcomeReceptionist, "receptionist", true},
		{OutcomeNeedClosing, "need_closing", true},
		{OutcomeClosedWon, "closed_won", true},
		{OutcomeClosedLost, "closed_lost", true},
		{OutcomeNotInterested, "not_interested", true},
		{OutcomeWrongNumber, "not_interested", true},
		{OutcomeDoNotCall, "not_interested", true},
		{OutcomeNotYet, "", false},
		{OutcomeAnswered, "", false},
		{OutcomeVoicemail, "", false},
		{OutcomeNoAnswer, "", false},
		{OutcomeBusy, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			status, changed := MapToStatus(tt.outcome)
			if changed != tt.wantChange {
				t.Fatalf("MapToStatus(%s) changed = %v, want %v", tt.outcome, changed, tt.wantChange)
			}
			if status != tt.wantStatus {
				t.Errorf("MapToStatus(%s) = %q, want %q", tt.outcome, status, tt.wantStatus)
			}
		})
	}
}

func TestMapToStatusCoversEveryOutcome(t *testing.T) {
	// Every valid outcome must either map to a status or be an explicit no-op.
	noChange := map[Outcome]bool{
		OutcomeNotYet:    true,
		OutcomeAnswered:  true,
		OutcomeVoicemail: true,
		OutcomeNoAnswer:  true,
		OutcomeBusy:      true,
	}

	for _, outcome := range AllOutcomes() {
		_, changed := MapToStatus(outcome)
		if changed == noChange[outcome] {
			t.Errorf("outcome %s: changed = %v, expected the opposite", outcome, changed)
		}
	}
}

func TestMapToStatusDeterminism(t *testing.T) {
	first, _ := MapToStatus(OutcomeWrongNumber)
	for i := 0; i < 5; i++ {
		again, _ := MapToStatus(OutcomeWrongNumber)
		if again != first {
			t.Fatalf("mapping is not deterministic: %q vs %q", first, again)
		}
	}
}

func TestOutcomeIsValid(t *testing.T) {
	if !OutcomeClosedWon.IsValid() {
		t.Error("closed_won should be valid")
	}
	if Outcome("escalated").IsValid() {
		t.Error("unknown outcome accepted")
	}
	if Outcome("").IsValid() {
		t.Error("empty outcome accepted")
	}
}
