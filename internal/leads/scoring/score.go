package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Input carries the lead metadata the engine scores on. Every field is
// optional; pointer fields distinguish "absent" from zero.
type Input struct {
	PhoneNumber  string
	BusinessName string
	Address      string
	OpeningHours string
	WebsiteText  string
	Rating       *float64
	TotalRatings *int
}

// Breakdown separates contributing factors by direction.
type Breakdown struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// Result is the outcome of scoring a single lead.
type Result struct {
	Score       int       `json:"score"`
	Band        string    `json:"band"`
	Reasons     []string  `json:"reasons"`
	Explanation string    `json:"explanation"`
	Breakdown   Breakdown `json:"breakdown"`
}

// Engine scores leads against an immutable configuration.
type Engine struct {
	cfg Config
}

// NewEngine creates a scoring engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score rates a lead from 0-100. Identical input always yields an
// identical result; there is no error path.
func (e *Engine) Score(in Input) Result {
	cfg := e.cfg
	score := cfg.BaseScore
	positive := []string{}
	negative := []string{}

	// 1. Phone number analysis
	phone := stripWhitespace(in.PhoneNumber)
	if phone != "" && isMobileNumber(phone) {
		score += cfg.MobileNumberBonus
		positive = append(positive, "Mobile number detected — likely owner/decision-maker")
	}
	if phone != "" && isFreephoneNumber(phone) {
		score += cfg.FreephonePenalty
		negative = append(negative, "Freephone number — may have gatekeepers")
	}

	// 2. Google rating analysis
	if in.Rating != nil && *in.Rating >= cfg.HighRatingThreshold {
		score += cfg.HighRatingBonus
		positive = append(positive, fmt.Sprintf("High Google rating (%s★)", formatRating(*in.Rating)))
	}
	if in.TotalRatings != nil && *in.TotalRatings < cfg.LowReviewCountThreshold {
		score += cfg.LowReviewsPenalty
		negative = append(negative, fmt.Sprintf("Low review count (%d reviews)", *in.TotalRatings))
	} else if in.TotalRatings != nil && *in.TotalRatings >= cfg.HighReviewCountThreshold {
		// Noted as an insight only; does not move the score.
		positive = append(positive, fmt.Sprintf("Strong review count (%d reviews)", *in.TotalRatings))
	}

	// 3. Business name analysis
	businessName := strings.ToLower(in.BusinessName)
	if cfg.hasCorporateIndicators(businessName) {
		score += cfg.LargeChainPenalty
		negative = append(negative, "Large chain or franchise detected")
	}
	if cfg.hasSmallOperatorIndicators(businessName) {
		score += cfg.SmallOperatorBonus
		positive = append(positive, "Small/family business indicators")
	}

	// 4. Location analysis
	if postcode := extractPostcode(in.Address); cfg.isUrbanPostcode(postcode) {
		score += cfg.UrbanPostcodeBonus
		positive = append(positive, "Urban/dense location")
	}

	// 5. Opening hours analysis
	if cfg.hasExtendedHours(strings.ToLower(in.OpeningHours)) {
		score += cfg.ExtendedHoursBonus
		positive = append(positive, "Extended/24-hour availability")
	}

	// 6. Website text analysis
	if cfg.hasReceptionistSignals(strings.ToLower(in.WebsiteText)) {
		score += cfg.ReceptionistSignalPenalty
		negative = append(negative, "Website mentions reception/call centre")
	}

	final := int(math.Round(clamp(score, cfg.MinScore, cfg.MaxScore)))

	reasons := make([]string, 0, len(positive)+len(negative))
	reasons = append(reasons, positive...)
	reasons = append(reasons, negative...)

	return Result{
		Score:       final,
		Band:        bandFor(final),
		Reasons:     reasons,
		Explanation: buildExplanation(final, positive, negative),
		Breakdown:   Breakdown{Positive: positive, Negative: negative},
	}
}

func bandFor(score int) string {
	switch {
	case score >= 80:
		return "Call first"
	case score >= 60:
		return "High potential"
	case score >= 40:
		return "Medium"
	default:
		return "Low priority"
	}
}

// buildExplanation renders the multi-line summary. Negative lines use the
// typographic minus (U+2212) to match the plus sign visually.
func buildExplanation(score int, positive, negative []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d\n", score)
	for _, reason := range positive {
		fmt.Fprintf(&b, "  + %s\n", reason)
	}
	for _, reason := range negative {
		fmt.Fprintf(&b, "  − %s\n", reason)
	}
	if len(positive) == 0 && len(negative) == 0 {
		b.WriteString("  (No specific signals detected)\n")
	}
	return strings.TrimSpace(b.String())
}

// formatRating prints a rating without trailing zeros (4.8 → "4.8", 4 → "4").
func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
