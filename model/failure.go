package model

import "fmt"

// FailureReason classifies why a raw version string was rejected.
type FailureReason string

// Parse failure reason codes. These are expected outcomes of untrusted
// input, surfaced as typed failures rather than best-guess identities.
const (
	// ReasonMalformed - the input matches no recognized version grammar.
	ReasonMalformed FailureReason = "Malformed"
	// ReasonAmbiguousKeys - version keys in the same input disagree on
	// the canonical major version.
	ReasonAmbiguousKeys FailureReason = "AmbiguousKeys"
	// ReasonUnknownEra - the input is version-shaped but belongs to no
	// known format era (e.g. "1.22.0" or a pre-Java-5 major).
	ReasonUnknownEra FailureReason = "UnknownEra"
)

// ParseFailure is the typed rejection returned for unparseable input.
// It carries the offending token and a human-readable detail, never a
// fabricated identity.
type ParseFailure struct {
	Reason FailureReason `json:"reason"`
	Input  string        `json:"input"`
	Detail string        `json:"detail,omitempty"`
}

func (f *ParseFailure) Error() string {
	if f.Detail == "" {
		return fmt.Sprintf("parse failure (%s): %q", f.Reason, f.Input)
	}
	return fmt.Sprintf("parse failure (%s): %q: %s", f.Reason, f.Input, f.Detail)
}
