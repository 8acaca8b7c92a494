// Package risk classifies a canonical version identity against static
// lifecycle reference data (EOL dates, LTS flags). Classification is a
// pure function of the identity, the table, and a caller-supplied
// evaluation date; there is no hidden clock.
package risk

import (
	"time"

	"github.com/jdkaudit/jdkaudit-backend/model"
)

// DefaultWarningWindow is the placeholder ApproachingEOL window used
// when the bundle does not configure one.
const DefaultWarningWindow = 180 * 24 * time.Hour

type tableKey struct {
	vendor model.VendorID
	major  int
}

// Classifier holds the immutable lifecycle table. Safe for concurrent
// use; the table is never mutated after construction.
type Classifier struct {
	records map[tableKey]model.LifecycleRecord
	window  time.Duration
}

// NewClassifier indexes the reference records by (vendor, major).
// Records with an empty vendor form the vendor-neutral fallback table.
// A non-positive window selects DefaultWarningWindow.
func NewClassifier(records []model.LifecycleRecord, window time.Duration) *Classifier {
	if window <= 0 {
		window = DefaultWarningWindow
	}
	indexed := make(map[tableKey]model.LifecycleRecord, len(records))
	for _, rec := range records {
		indexed[tableKey{vendor: rec.Vendor, major: rec.Major}] = rec
	}
	return &Classifier{records: indexed, window: window}
}

// Classify maps the identity to a risk category as of the given date.
// An unknown vendor, or a vendor with no entry for the major, falls
// back to the vendor-neutral row and marks the assessment reduced
// confidence. No row at all means Unsupported: never tracked, which is
// distinct from tracked-and-expired.
func (c *Classifier) Classify(id model.VersionIdentity, asOf time.Time) model.RiskAssessment {
	rec, ok, fellBack := c.lookup(id.Vendor.ID, id.Major)
	if !ok {
		return model.RiskAssessment{Category: model.RiskUnsupported, ReducedConfidence: true}
	}

	return model.RiskAssessment{
		Category:          categorize(rec, asOf, c.window),
		Record:            &rec,
		ReducedConfidence: fellBack,
	}
}

func (c *Classifier) lookup(vendor model.VendorID, major int) (model.LifecycleRecord, bool, bool) {
	if vendor != model.VendorUnknown && vendor != "" {
		if rec, ok := c.records[tableKey{vendor: vendor, major: major}]; ok {
			return rec, true, false
		}
	}
	rec, ok := c.records[tableKey{vendor: "", major: major}]
	return rec, ok, true
}

// categorize applies the transition thresholds. The ordering makes the
// result monotonic in asOf: once past the EOL date a version can only
// be EndOfLife, never an earlier category again.
func categorize(rec model.LifecycleRecord, asOf time.Time, window time.Duration) model.RiskCategory {
	switch {
	case asOf.After(rec.EOLDate):
		return model.RiskEndOfLife
	case asOf.After(rec.EOLDate.Add(-window)):
		return model.RiskApproachingEOL
	case rec.LTS:
		return model.RiskMaintenanceLTS
	default:
		return model.RiskCurrent
	}
}

// Records returns the table contents in unspecified order, for the
// reference-data read surfaces.
func (c *Classifier) Records() []model.LifecycleRecord {
	out := make([]model.LifecycleRecord, 0, len(c.records))
	for _, rec := range c.records {
		out = append(out, rec)
	}
	return out
}
