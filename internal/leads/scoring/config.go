// Package scoring implements the deterministic lead scoring engine.
// Scoring never fails: missing input simply contributes no signal.
package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the scoring weights, thresholds and keyword tables.
// DefaultConfig reproduces the production values; a YAML overlay can
// swap keyword lists and postcode prefixes for other geographies.
type Config struct {
	BaseScore float64 `yaml:"base_score"`
	MinScore  float64 `yaml:"min_score"`
	MaxScore  float64 `yaml:"max_score"`

	// Positive signals (add points)
	MobileNumberBonus  float64 `yaml:"mobile_number_bonus"`
	HighRatingBonus    float64 `yaml:"high_rating_bonus"`
	SmallOperatorBonus float64 `yaml:"small_operator_bonus"`
	ExtendedHoursBonus float64 `yaml:"extended_hours_bonus"`
	UrbanPostcodeBonus float64 `yaml:"urban_postcode_bonus"`

	// Negative signals (subtract points)
	FreephonePenalty          float64 `yaml:"freephone_penalty"`
	LargeChainPenalty         float64 `yaml:"large_chain_penalty"`
	ReceptionistSignalPenalty float64 `yaml:"receptionist_signal_penalty"`
	LowReviewsPenalty         float64 `yaml:"low_reviews_penalty"`

	// Thresholds
	HighRatingThreshold      float64 `yaml:"high_rating_threshold"`
	LowReviewCountThreshold  int     `yaml:"low_review_count_threshold"`
	HighReviewCountThreshold int     `yaml:"high_review_count_threshold"`

	// Keyword tables, matched case-insensitively as substrings
	CorporateIndicators     []string `yaml:"corporate_indicators"`
	SmallOperatorIndicators []string `yaml:"small_operator_indicators"`
	ReceptionistSignals     []string `yaml:"receptionist_signals"`
	ExtendedHoursIndicators []string `yaml:"extended_hours_indicators"`

	// Urban/dense postcode prefixes (first 2-3 characters)
	UrbanPostcodes []string `yaml:"urban_postcodes"`
}

// DefaultConfig returns the standard UK scoring configuration.
func DefaultConfig() Config {
	return Config{
		BaseScore: 50,
		MinScore:  0,
		MaxScore:  100,

		MobileNumberBonus:  15,
		HighRatingBonus:    10,
		SmallOperatorBonus: 10,
		ExtendedHoursBonus: 10,
		UrbanPostcodeBonus: 5,

		FreephonePenalty:          -15,
		LargeChainPenalty:         -10,
		ReceptionistSignalPenalty: -10,
		LowReviewsPenalty:         -5,

		HighRatingThreshold:      4.5,
		LowReviewCountThreshold:  10,
		HighReviewCountThreshold: 50,

		CorporateIndicators: []string{
			"group", "holdings", "plc", "corporation", "corp",
			"international", "global", "national", "franchise",
			"mcdonald", "costa", "starbucks", "subway", "kfc",
			"tesco", "sainsbury", "asda", "morrisons",
		},
		SmallOperatorIndicators: []string{
			"local", "family", "independent", "est.", "since",
			"son", "sons", "brothers", "sisters", "& son",
		},
		ReceptionistSignals: []string{
			"reception", "receptionist", "office team",
			"call centre", "call center", "switchboard",
			"main office", "head office", "customer service team",
		},
		ExtendedHoursIndicators: []string{
			"24", "24/7", "24 hour", "all day", "always open",
		},
		UrbanPostcodes: []string{
			"E1", "E2", "E3", "E4", "E5", "E6", "E7", "E8", "E9",
			"EC", "WC", "W1", "W2", "W3", "W4", "W5", "W6", "W7", "W8", "W9", "W10", "W11", "W12",
			"SW", "SE", "N1", "N2", "N3", "N4", "N5", "N6", "N7", "N8", "N9", "N10", "N11",
			"NW", "M1", "M2", "M3", "M4", "B1", "B2", "B3", "B4", "B5",
			"L1", "L2", "L3", "L4", "L5", "G1", "G2", "G3", "G4",
			"EH1", "EH2", "EH3", "CF1", "CF2", "CF10", "LS1", "LS2",
		},
	}
}

// LoadConfig returns the default configuration overlaid with values from the
// YAML file at path. An empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scoring config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scoring config: %w", err)
	}
	return cfg, nil
}
