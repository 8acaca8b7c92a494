package parser

import (
	"strings"

	"github.com/jdkaudit/jdkaudit-backend/model"
)

// Signature maps evidence substrings to a distribution. Signatures are
// configuration data: the built-in set can be extended or reordered from
// the policy bundle without touching the resolver.
type Signature struct {
	Vendor   model.VendorID `yaml:"vendor"`
	Patterns []string       `yaml:"patterns"`
}

// DefaultSignatures is the built-in vendor signature table. Order is
// load-bearing: distribution-specific markers come before the generic
// openjdk/oracle markers because OpenJDK-derived builds routinely report
// "Oracle Corporation" as their vendor.
func DefaultSignatures() []Signature {
	return []Signature{
		{Vendor: model.VendorTemurin, Patterns: []string{"temurin", "adoptium", "eclipse"}},
		{Vendor: model.VendorZulu, Patterns: []string{"zulu", "azul"}},
		{Vendor: model.VendorCorretto, Patterns: []string{"corretto", "amazon"}},
		{Vendor: model.VendorMicrosoft, Patterns: []string{"microsoft"}},
		{Vendor: model.VendorGraalVM, Patterns: []string{"graalvm", "graal"}},
		{Vendor: model.VendorSun, Patterns: []string{"sun microsystems"}},
		{Vendor: model.VendorOpenJDK, Patterns: []string{"openjdk"}},
		{Vendor: model.VendorOracleJDK, Patterns: []string{"oracle", "java(tm)", "java hotspot(tm)"}},
	}
}

// Resolver infers the distribution from raw string evidence and an
// optional out-of-band hint. No match yields VendorUnknown, which is a
// valid result rather than a failure.
type Resolver struct {
	sigs []Signature
}

// NewResolver builds a Resolver; a nil or empty signature slice selects
// the built-in table.
func NewResolver(sigs []Signature) *Resolver {
	if len(sigs) == 0 {
		sigs = DefaultSignatures()
	}
	return &Resolver{sigs: sigs}
}

// Resolve scans the hint first, then the raw evidence, against the
// signature table in declaration order. The returned VendorInfo records
// the pattern that matched as its evidence string.
func (r *Resolver) Resolve(raw, hint string) model.VendorInfo {
	if hint != "" {
		if info, ok := r.match(strings.ToLower(hint)); ok {
			info.Evidence = "hint:" + info.Evidence
			return info
		}
	}
	if info, ok := r.match(strings.ToLower(raw)); ok {
		return info
	}
	return model.VendorInfo{ID: model.VendorUnknown}
}

func (r *Resolver) match(haystack string) (model.VendorInfo, bool) {
	for _, sig := range r.sigs {
		for _, pattern := range sig.Patterns {
			if strings.Contains(haystack, pattern) {
				return model.VendorInfo{ID: sig.Vendor, Evidence: pattern}, true
			}
		}
	}
	return model.VendorInfo{}, false
}
