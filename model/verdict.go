package model

import "time"

// LicenseFlag is the license determination for a version/vendor pair.
type LicenseFlag string

// License flags. Unknown is a legitimate terminal answer produced by the
// mandatory catch-all rule, not an error.
const (
	LicenseCommercial LicenseFlag = "Commercial"
	LicenseFree       LicenseFlag = "Free"
	LicenseUnknown    LicenseFlag = "Unknown"
)

// ParseConfidence reflects whether vendor resolution or lifecycle lookup
// had to fall back to a reduced-confidence path.
type ParseConfidence string

// Confidence levels attached to a Verdict.
const (
	ConfidenceHigh    ParseConfidence = "high"
	ConfidenceReduced ParseConfidence = "reduced"
)

// LicenseDecision is the rule engine output: the flag of the first
// matching rule plus its rendered explanation naming the concrete
// version, vendor, and dates that triggered it.
type LicenseDecision struct {
	Flag        LicenseFlag `json:"flag"`
	Explanation string      `json:"explanation"`
	PolicyRef   string      `json:"policy_ref"`
	RuleName    string      `json:"rule_name"`
}

// Verdict is the assembled analysis result. Either all three sub-results
// (license, risk, confidence) are present or the request failed with a
// ParseFailure; there is no partial verdict.
type Verdict struct {
	Key         string          `json:"_key,omitempty"`
	ObjType     string          `json:"objtype,omitempty"`
	Identity    VersionIdentity `json:"version_identity"`
	License     LicenseDecision `json:"license"`
	Risk        RiskAssessment  `json:"risk"`
	Confidence  ParseConfidence `json:"parse_confidence"`
	RuntimePURL string          `json:"runtime_purl,omitempty"`
	AnalyzedAt  time.Time       `json:"analyzed_at"`
}
