// Package config loads the static policy bundle: license rules,
// lifecycle reference records, vendor signatures, and policy parameters.
// The bundle is read once at process start and treated as read-only for
// the process lifetime.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/jdkaudit/jdkaudit-backend/model"
	"github.com/jdkaudit/jdkaudit-backend/parser"
	"github.com/jdkaudit/jdkaudit-backend/policy"
	"github.com/jdkaudit/jdkaudit-backend/util"
)

const dateLayout = "2006-01-02"

// RuleSpec is the YAML form of one license rule. Dates are plain
// YYYY-MM-DD strings parsed during compilation so malformed policy
// files fail at startup, not per request.
type RuleSpec struct {
	Name        string   `yaml:"name"`
	Flag        string   `yaml:"flag"`
	Vendors     []string `yaml:"vendors,omitempty"`
	MinMajor    int      `yaml:"min_major,omitempty"`
	MaxMajor    int      `yaml:"max_major,omitempty"`
	After       string   `yaml:"after,omitempty"`
	Explanation string   `yaml:"explanation"`
	PolicyRef   string   `yaml:"policy_ref"`
}

// LifecycleSpec is the YAML form of one lifecycle reference record. An
// empty vendor is the vendor-neutral fallback row for that major.
type LifecycleSpec struct {
	Vendor               string `yaml:"vendor,omitempty"`
	Major                int    `yaml:"major"`
	LTS                  bool   `yaml:"lts,omitempty"`
	EOL                  string `yaml:"eol"`
	SecuritySupportUntil string `yaml:"security_support_until,omitempty"`
}

// Bundle is the complete policy configuration.
type Bundle struct {
	WarningWindowDays int                `yaml:"warning_window_days,omitempty"`
	VendorSignatures  []parser.Signature `yaml:"vendor_signatures,omitempty"`
	LicenseRules      []RuleSpec         `yaml:"license_rules"`
	Lifecycle         []LifecycleSpec    `yaml:"lifecycle"`
}

// Load reads a bundle from the YAML file at path. An empty path returns
// the built-in default bundle.
func Load(path string) (*Bundle, error) {
	if path == "" {
		return Default(), nil
	}
	if !util.FileExists(path) {
		return nil, fmt.Errorf("policy bundle %s not found", path)
	}
	content, err := os.ReadFile(path) // #nosec G304 - operator-supplied policy path
	if err != nil {
		return nil, fmt.Errorf("read policy bundle %s: %w", path, err)
	}
	var b Bundle
	if err := yaml.Unmarshal(content, &b); err != nil {
		return nil, fmt.Errorf("parse policy bundle %s: %w", path, err)
	}
	return &b, nil
}

// Rules compiles the rule specs into the engine's ordered rule list.
func (b *Bundle) Rules() ([]policy.Rule, error) {
	rules := make([]policy.Rule, 0, len(b.LicenseRules))
	for _, spec := range b.LicenseRules {
		rule := policy.Rule{
			Name:        spec.Name,
			MinMajor:    spec.MinMajor,
			MaxMajor:    spec.MaxMajor,
			Explanation: spec.Explanation,
			PolicyRef:   spec.PolicyRef,
		}
		switch spec.Flag {
		case string(model.LicenseCommercial), string(model.LicenseFree), string(model.LicenseUnknown):
			rule.Flag = model.LicenseFlag(spec.Flag)
		default:
			return nil, fmt.Errorf("rule %q: unknown license flag %q", spec.Name, spec.Flag)
		}
		for _, v := range spec.Vendors {
			rule.Vendors = append(rule.Vendors, model.VendorID(v))
		}
		if spec.After != "" {
			after, err := time.Parse(dateLayout, spec.After)
			if err != nil {
				return nil, fmt.Errorf("rule %q: bad cutoff date %q: %w", spec.Name, spec.After, err)
			}
			rule.After = after
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// LifecycleRecords compiles the lifecycle specs into reference records.
func (b *Bundle) LifecycleRecords() ([]model.LifecycleRecord, error) {
	records := make([]model.LifecycleRecord, 0, len(b.Lifecycle))
	for _, spec := range b.Lifecycle {
		eol, err := time.Parse(dateLayout, spec.EOL)
		if err != nil {
			return nil, fmt.Errorf("lifecycle (%s, %d): bad EOL date %q: %w", spec.Vendor, spec.Major, spec.EOL, err)
		}
		security := eol
		if spec.SecuritySupportUntil != "" {
			security, err = time.Parse(dateLayout, spec.SecuritySupportUntil)
			if err != nil {
				return nil, fmt.Errorf("lifecycle (%s, %d): bad security support date %q: %w", spec.Vendor, spec.Major, spec.SecuritySupportUntil, err)
			}
		}
		records = append(records, model.LifecycleRecord{
			Vendor:               model.VendorID(spec.Vendor),
			Major:                spec.Major,
			LTS:                  spec.LTS,
			EOLDate:              eol,
			SecuritySupportUntil: security,
		})
	}
	return records, nil
}

// WarningWindow returns the configured ApproachingEOL window, or zero
// to let the classifier apply its documented default.
func (b *Bundle) WarningWindow() time.Duration {
	if b.WarningWindowDays <= 0 {
		return 0
	}
	return time.Duration(b.WarningWindowDays) * 24 * time.Hour
}

// Signatures returns the configured vendor signature table, or nil to
// select the parser's built-in set.
func (b *Bundle) Signatures() []parser.Signature {
	return b.VendorSignatures
}
