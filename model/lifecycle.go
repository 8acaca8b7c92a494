package model

import "time"

// RiskCategory is the operational risk classification of a runtime
// version at a given evaluation date.
type RiskCategory string

// Risk categories, ordered roughly by urgency. Unsupported means the
// (vendor, major) pair was never tracked, which is distinct from
// EndOfLife (tracked and expired).
const (
	RiskCurrent        RiskCategory = "Current"
	RiskMaintenanceLTS RiskCategory = "MaintenanceLTS"
	RiskApproachingEOL RiskCategory = "ApproachingEOL"
	RiskEndOfLife      RiskCategory = "EndOfLife"
	RiskUnsupported    RiskCategory = "Unsupported"
)

// LifecycleRecord is static reference data describing vendor support for
// one Java major version. A record with an empty Vendor is the
// vendor-neutral fallback row for that major. Read-only after load.
type LifecycleRecord struct {
	Vendor               VendorID  `json:"vendor" yaml:"vendor"`
	Major                int       `json:"major" yaml:"major"`
	LTS                  bool      `json:"lts" yaml:"lts"`
	EOLDate              time.Time `json:"eol_date" yaml:"-"`
	SecuritySupportUntil time.Time `json:"security_support_until" yaml:"-"`
}

// RiskAssessment is the classifier output: the category plus the record
// that produced it and whether a reduced-confidence fallback was taken.
type RiskAssessment struct {
	Category          RiskCategory     `json:"category"`
	Record            *LifecycleRecord `json:"record,omitempty"`
	ReducedConfidence bool             `json:"reduced_confidence"`
}
