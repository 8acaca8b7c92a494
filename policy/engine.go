// Package policy implements the ordered, first-match license rule
// engine. Rules are static configuration validated once at startup; the
// engine itself is a pure function over a VersionIdentity and an
// evaluation date.
package policy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jdkaudit/jdkaudit-backend/model"
)

// Rule is one ordered predicate/result pair. Zero-valued constraint
// fields are unconstrained; a rule with no constraints at all is a
// catch-all. Evaluation order is semantically load-bearing (first match
// wins), so rules live in a slice, never a map.
type Rule struct {
	Name        string
	Flag        model.LicenseFlag
	Vendors     []model.VendorID
	MinMajor    int
	MaxMajor    int
	After       time.Time
	Explanation string
	PolicyRef   string
}

// constrained reports whether the rule has any predicate at all.
func (r Rule) constrained() bool {
	return len(r.Vendors) > 0 || r.MinMajor > 0 || r.MaxMajor > 0 || !r.After.IsZero()
}

// matches evaluates the rule predicate. Version-threshold comparisons
// use the canonical major, so legacy and modern strings of the same
// family hit the same rules.
func (r Rule) matches(id model.VersionIdentity, asOf time.Time) bool {
	if len(r.Vendors) > 0 {
		found := false
		for _, v := range r.Vendors {
			if v == id.Vendor.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if r.MinMajor > 0 && id.Major < r.MinMajor {
		return false
	}
	if r.MaxMajor > 0 && id.Major > r.MaxMajor {
		return false
	}
	if !r.After.IsZero() && !asOf.After(r.After) {
		return false
	}
	return true
}

// constraintKey canonicalizes the predicate for duplicate detection.
func (r Rule) constraintKey() string {
	vendors := make([]string, len(r.Vendors))
	for i, v := range r.Vendors {
		vendors[i] = string(v)
	}
	// vendor order is irrelevant to the predicate
	sort.Strings(vendors)
	return fmt.Sprintf("v=%s min=%d max=%d after=%s",
		strings.Join(vendors, ","), r.MinMajor, r.MaxMajor, r.After.Format("2006-01-02"))
}

// render substitutes the identity's concrete values into the rule's
// explanation template so the explanation always names the specific
// version, vendor, and cutoff that triggered it.
func (r Rule) render(id model.VersionIdentity) string {
	cutoff := ""
	if !r.After.IsZero() {
		cutoff = r.After.Format("2006-01-02")
	}
	return strings.NewReplacer(
		"{vendor}", id.Vendor.ID.DisplayName(),
		"{version}", id.String(),
		"{major}", strconv.Itoa(id.Major),
		"{cutoff}", cutoff,
	).Replace(r.Explanation)
}

// ConfigError reports a rule set that failed the startup integrity
// check. It is fatal by design: serving with an incomplete license rule
// set could silently misclassify commercial obligations.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return "license rule configuration invalid: " + strings.Join(e.Problems, "; ")
}

// Engine evaluates the ordered rule set. Immutable after construction.
type Engine struct {
	rules []Rule
}

// NewEngine validates the rule set and returns a ready engine. The set
// must end with an unconstrained catch-all yielding Unknown, contain no
// unreachable rules shadowed by an earlier catch-all, and contain no
// two rules with identical predicates but different flags.
func NewEngine(rules []Rule) (*Engine, error) {
	var problems []string

	if len(rules) == 0 {
		problems = append(problems, "rule set is empty")
	} else {
		last := rules[len(rules)-1]
		if last.constrained() {
			problems = append(problems, fmt.Sprintf("final rule %q is not an unconstrained catch-all", last.Name))
		} else if last.Flag != model.LicenseUnknown {
			problems = append(problems, fmt.Sprintf("catch-all rule %q must yield the Unknown flag", last.Name))
		}
		for i, r := range rules[:len(rules)-1] {
			if !r.constrained() {
				problems = append(problems, fmt.Sprintf("rule %q (position %d) is unconstrained and shadows every later rule", r.Name, i))
			}
		}
		seen := make(map[string]Rule)
		for _, r := range rules {
			key := r.constraintKey()
			if prev, dup := seen[key]; dup && prev.Flag != r.Flag {
				problems = append(problems, fmt.Sprintf("rules %q and %q share a predicate but disagree on flag", prev.Name, r.Name))
			}
			seen[key] = r
		}
	}

	if len(problems) > 0 {
		return nil, &ConfigError{Problems: problems}
	}

	out := make([]Rule, len(rules))
	copy(out, rules)
	return &Engine{rules: out}, nil
}

// Evaluate returns the first matching rule's decision. The mandatory
// catch-all makes this total: it never fails for a valid identity.
func (e *Engine) Evaluate(id model.VersionIdentity, asOf time.Time) model.LicenseDecision {
	for _, r := range e.rules {
		if r.matches(id, asOf) {
			return model.LicenseDecision{
				Flag:        r.Flag,
				Explanation: r.render(id),
				PolicyRef:   r.PolicyRef,
				RuleName:    r.Name,
			}
		}
	}
	// unreachable once NewEngine has accepted the set
	return model.LicenseDecision{Flag: model.LicenseUnknown, Explanation: "no rule matched", RuleName: "fallback"}
}

// Rules returns a copy of the ordered rule set, for introspection
// surfaces and tests.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}
