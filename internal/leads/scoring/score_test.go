package scoring

import (
	"os"
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestScoreWorkedScenarios(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		name         string
		input        Input
		wantScore    int
		wantBand     string
		wantPositive []string
		wantNegative []string
	}{
		{
			name: "sole trader plumber",
			input: Input{
				BusinessName: "John Smith Plumbing",
				PhoneNumber:  "07777 123456",
				Rating:       floatPtr(4.8),
				TotalRatings: intPtr(127),
				Address:      "12 High Street, London W1A 1AA",
			},
			wantScore: 80,
			wantBand:  "Call first",
			wantPositive: []string{
				"Mobile number detected — likely owner/decision-maker",
				"High Google rating (4.8★)",
				"Strong review count (127 reviews)",
				"Urban/dense location",
			},
			wantNegative: []string{},
		},
		{
			name: "corporate chain with call centre",
			input: Input{
				BusinessName: "FastFix Group Holdings PLC",
				PhoneNumber:  "0800 123 4567",
				Rating:       floatPtr(3.2),
				TotalRatings: intPtr(892),
				Address:      "100 Corporate Park, Milton Keynes MK9 2AA",
				WebsiteText:  "Contact our reception team during office hours",
			},
			wantScore: 15,
			wantBand:  "Low priority",
			wantPositive: []string{
				"Strong review count (892 reviews)",
			},
			wantNegative: []string{
				"Freephone number — may have gatekeepers",
				"Large chain or franchise detected",
				"Website mentions reception/call centre",
			},
		},
		{
			name: "family firm open around the clock",
			input: Input{
				BusinessName: "Local Family Electricians",
				PhoneNumber:  "07890 654321",
				Rating:       floatPtr(4.9),
				TotalRatings: intPtr(45),
				Address:      "5 Village Road, Manchester M1 1AA",
				OpeningHours: "Open 24/7",
			},
			wantScore: 100,
			wantBand:  "Call first",
			wantPositive: []string{
				"Mobile number detected — likely owner/decision-maker",
				"High Google rating (4.9★)",
				"Small/family business indicators",
				"Urban/dense location",
				"Extended/24-hour availability",
			},
			wantNegative: []string{},
		},
		{
			name: "young business with few reviews",
			input: Input{
				BusinessName: "Budget Builders Ltd",
				PhoneNumber:  "01onal 789012",
				Rating:       floatPtr(4.0),
				TotalRatings: intPtr(8),
				Address:      "99 Industrial Estate, Leeds LS1 4AA",
			},
			wantScore: 50,
			wantBand:  "Medium",
			wantPositive: []string{
				"Urban/dense location",
			},
			wantNegative: []string{
				"Low review count (8 reviews)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Score(tt.input)
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d\n%s", got.Score, tt.wantScore, got.Explanation)
			}
			if got.Band != tt.wantBand {
				t.Errorf("band = %q, want %q", got.Band, tt.wantBand)
			}
			assertReasons(t, "positive", got.Breakdown.Positive, tt.wantPositive)
			assertReasons(t, "negative", got.Breakdown.Negative, tt.wantNegative)
		})
	}
}

func assertReasons(t *testing.T, label string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s reasons = %v, want %v", label, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s reason[%d] = %q, want %q", label, i, got[i], want[i])
		}
	}
}

func TestScoreDeterminism(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	input := Input{
		BusinessName: "Local Family Electricians",
		PhoneNumber:  "07890 654321",
		Rating:       floatPtr(4.9),
		TotalRatings: intPtr(45),
		Address:      "5 Village Road, Manchester M1 1AA",
		OpeningHours: "Open 24/7",
	}

	first := engine.Score(input)
	for i := 0; i < 10; i++ {
		again := engine.Score(input)
		if again.Score != first.Score || again.Explanation != first.Explanation {
			t.Fatalf("scoring is not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestScoreEmptyInput(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	got := engine.Score(Input{})

	if got.Score != 50 {
		t.Errorf("empty input score = %d, want base 50", got.Score)
	}
	if got.Band != "Medium" {
		t.Errorf("empty input band = %q, want Medium", got.Band)
	}
	if len(got.Reasons) != 0 {
		t.Errorf("empty input produced reasons: %v", got.Reasons)
	}
	if !strings.Contains(got.Explanation, "(No specific signals detected)") {
		t.Errorf("explanation missing no-signal marker:\n%s", got.Explanation)
	}
}

func TestScoreClampedToRange(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Every negative signal at once still cannot go below zero.
	worst := engine.Score(Input{
		BusinessName: "National Franchise Group",
		PhoneNumber:  "0800 000 000",
		TotalRatings: intPtr(2),
		WebsiteText:  "our switchboard and reception team",
	})
	if worst.Score < 0 || worst.Score > 100 {
		t.Fatalf("score out of range: %d", worst.Score)
	}

	// Every positive signal at once is capped at 100.
	best := engine.Score(Input{
		BusinessName: "Local Family Plumbing",
		PhoneNumber:  "07911123456",
		Rating:       floatPtr(5),
		TotalRatings: intPtr(500),
		Address:      "1 Market Street, London EC1A 1AA",
		OpeningHours: "24 hours",
	})
	if best.Score != 100 {
		t.Fatalf("best-case score = %d, want 100", best.Score)
	}
}

func TestScoreBandBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Call first"},
		{80, "Call first"},
		{79, "High potential"},
		{60, "High potential"},
		{59, "Medium"},
		{40, "Medium"},
		{39, "Low priority"},
		{0, "Low priority"},
	}

	for _, tt := range tests {
		if got := bandFor(tt.score); got != tt.want {
			t.Errorf("bandFor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoreReasonsMatchDirection(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	got := engine.Score(Input{
		BusinessName: "FastFix Group Holdings PLC",
		PhoneNumber:  "0800 123 4567",
		Rating:       floatPtr(3.2),
		TotalRatings: intPtr(892),
		WebsiteText:  "Contact our reception team",
	})

	if len(got.Reasons) != len(got.Breakdown.Positive)+len(got.Breakdown.Negative) {
		t.Fatalf("reasons length mismatch: %d vs %d + %d",
			len(got.Reasons), len(got.Breakdown.Positive), len(got.Breakdown.Negative))
	}
	for i, reason := range got.Breakdown.Positive {
		if got.Reasons[i] != reason {
			t.Errorf("reasons[%d] = %q, want positive %q", i, got.Reasons[i], reason)
		}
	}
	offset := len(got.Breakdown.Positive)
	for i, reason := range got.Breakdown.Negative {
		if got.Reasons[offset+i] != reason {
			t.Errorf("reasons[%d] = %q, want negative %q", offset+i, got.Reasons[offset+i], reason)
		}
	}
}

func TestScoreStrongReviewCountIsNoteOnly(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	with := engine.Score(Input{TotalRatings: intPtr(120)})
	without := engine.Score(Input{TotalRatings: intPtr(30)})

	if with.Score != without.Score {
		t.Errorf("strong review count moved the score: %d vs %d", with.Score, without.Score)
	}
	if len(with.Breakdown.Positive) != 1 {
		t.Errorf("expected a single note-only reason, got %v", with.Breakdown.Positive)
	}
}

func TestScoreExplanationFormat(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	got := engine.Score(Input{
		PhoneNumber: "07777 123456",
		WebsiteText: "speak to our receptionist",
	})

	lines := strings.Split(got.Explanation, "\n")
	if lines[0] != "Score: 55" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "  + Mobile number detected — likely owner/decision-maker" {
		t.Errorf("positive line = %q", lines[1])
	}
	if lines[2] != "  − Website mentions reception/call centre" {
		t.Errorf("negative line = %q", lines[2])
	}
	if strings.HasSuffix(got.Explanation, "\n") {
		t.Error("explanation should be trimmed")
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/scoring.yaml"
	overlay := []byte("urban_postcodes: [\"10\", \"11\"]\nmobile_number_bonus: 20\n")
	if err := os.WriteFile(path, overlay, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MobileNumberBonus != 20 {
		t.Errorf("mobile bonus = %v, want 20", cfg.MobileNumberBonus)
	}
	if len(cfg.UrbanPostcodes) != 2 {
		t.Errorf("urban postcodes = %v", cfg.UrbanPostcodes)
	}
	// Untouched values keep their defaults.
	if cfg.BaseScore != 50 {
		t.Errorf("base score = %v, want 50", cfg.BaseScore)
	}
}

func TestLoadConfigEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseScore != 50 || cfg.MobileNumberBonus != 15 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
