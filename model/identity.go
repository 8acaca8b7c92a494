// Package model defines the canonical data types shared by the parser,
// license rule engine, risk classifier, and orchestrator.
package model

import (
	"fmt"
	"strings"
)

// NotApplicable marks a version component that does not exist in the
// source format. Legacy strings like "1.8" carry no security component;
// normalizing the gap to 0 would make "1.8" compare equal to "8.0.0",
// which is exactly the false equality the sentinel avoids.
const NotApplicable = -1

// FormatEra identifies which historical Java version grammar produced
// an identity. Pre-JEP-223 strings ("1.8.0_301") are legacy; single
// leading-integer strings ("17.0.2", "9+100") are modern.
type FormatEra string

// Recognized format eras.
const (
	EraLegacy FormatEra = "legacy"
	EraModern FormatEra = "modern"
)

// VersionIdentity is the canonical, totally ordered representation of a
// Java runtime version. Major is always the Java family number: the
// legacy "1.8" family normalizes to major 8 so that legacy and modern
// strings of the same release order and compare as equals.
type VersionIdentity struct {
	Major    int        `json:"major"`
	Minor    int        `json:"minor"`
	Security int        `json:"security"`
	Build    string     `json:"build,omitempty"`
	Raw      string     `json:"raw"`
	Vendor   VendorInfo `json:"vendor"`
	Era      FormatEra  `json:"format_era"`
}

// cmpComponent orders two version components where either side may be
// NotApplicable. An absent component sorts before an explicit zero.
func cmpComponent(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Compare returns -1, 0, or 1 ordering v against other. The order is
// total once both identities carry a resolved era: major, then minor,
// then security, with NotApplicable sorting before any present value.
// Build metadata and vendor do not participate in ordering.
func (v VersionIdentity) Compare(other VersionIdentity) int {
	if c := cmpComponent(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmpComponent(v.Minor, other.Minor); c != 0 {
		return c
	}
	return cmpComponent(v.Security, other.Security)
}

// String renders the canonical version token. It is the token the
// parser resolved, so re-parsing the output reproduces the identity.
func (v VersionIdentity) String() string {
	if v.Raw != "" {
		return v.Raw
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d", v.Major)
	if v.Minor != NotApplicable {
		fmt.Fprintf(&b, ".%d", v.Minor)
	}
	if v.Security != NotApplicable {
		fmt.Fprintf(&b, ".%d", v.Security)
	}
	return b.String()
}
