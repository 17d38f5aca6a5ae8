package models

import "fmt"

// RiskLevel is a user's classified risk tolerance. It is computed from the
// assessment questionnaire and stamped onto both profiles and content.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ParseRiskLevel converts a raw string into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskLevel(s), nil
	}
	return "", fmt.Errorf("unknown risk level %q", s)
}

// Valid reports whether the level belongs to the enumeration.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}
