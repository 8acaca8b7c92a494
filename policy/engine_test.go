package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdkaudit/jdkaudit-backend/model"
	"github.com/jdkaudit/jdkaudit-backend/parser"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func catchAll() Rule {
	return Rule{
		Name:        "catch-all",
		Flag:        model.LicenseUnknown,
		Explanation: "no policy covers {vendor} {version}",
	}
}

func oracleIdentity(major, minor, security int, raw string) model.VersionIdentity {
	return model.VersionIdentity{
		Major:    major,
		Minor:    minor,
		Security: security,
		Raw:      raw,
		Vendor:   model.VendorInfo{ID: model.VendorOracleJDK},
		Era:      model.EraModern,
	}
}

func TestNewEngineIntegrity(t *testing.T) {
	tests := []struct {
		name    string
		rules   []Rule
		problem string
	}{
		{
			name:    "empty set",
			rules:   nil,
			problem: "rule set is empty",
		},
		{
			name: "final rule constrained",
			rules: []Rule{
				{Name: "oracle", Flag: model.LicenseCommercial, Vendors: []model.VendorID{model.VendorOracleJDK}},
			},
			problem: "not an unconstrained catch-all",
		},
		{
			name: "catch-all with wrong flag",
			rules: []Rule{
				{Name: "free-everything", Flag: model.LicenseFree},
			},
			problem: "must yield the Unknown flag",
		},
		{
			name: "early catch-all shadows later rules",
			rules: []Rule{
				catchAll(),
				{Name: "oracle", Flag: model.LicenseCommercial, Vendors: []model.VendorID{model.VendorOracleJDK}},
				catchAll(),
			},
			problem: "shadows every later rule",
		},
		{
			name: "duplicate predicates with different flags",
			rules: []Rule{
				{Name: "a", Flag: model.LicenseCommercial, Vendors: []model.VendorID{model.VendorOracleJDK}, MinMajor: 8},
				{Name: "b", Flag: model.LicenseFree, Vendors: []model.VendorID{model.VendorOracleJDK}, MinMajor: 8},
				catchAll(),
			},
			problem: "share a predicate but disagree on flag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(tt.rules)
			require.Error(t, err)
			assert.Nil(t, engine)

			configErr, ok := err.(*ConfigError)
			require.True(t, ok)
			assert.Contains(t, configErr.Error(), tt.problem)
		})
	}
}

func TestNewEngineAcceptsValidSet(t *testing.T) {
	engine, err := NewEngine([]Rule{
		{Name: "oracle-otn", Flag: model.LicenseCommercial, Vendors: []model.VendorID{model.VendorOracleJDK}, MinMajor: 8, MaxMajor: 16},
		catchAll(),
	})
	require.NoError(t, err)
	require.NotNil(t, engine)
	assert.Len(t, engine.Rules(), 2)
}

func TestEvaluateFirstMatchWins(t *testing.T) {
	engine, err := NewEngine([]Rule{
		{
			Name:     "nftc-17-expired",
			Flag:     model.LicenseCommercial,
			Vendors:  []model.VendorID{model.VendorOracleJDK},
			MinMajor: 17,
			MaxMajor: 17,
			After:    date("2024-09-17"),
		},
		{
			Name:     "nftc-active",
			Flag:     model.LicenseFree,
			Vendors:  []model.VendorID{model.VendorOracleJDK},
			MinMajor: 17,
		},
		catchAll(),
	})
	require.NoError(t, err)

	id := oracleIdentity(17, 0, 2, "17.0.2")

	// before the cutoff the dated rule does not fire
	decision := engine.Evaluate(id, date("2024-01-01"))
	assert.Equal(t, model.LicenseFree, decision.Flag)
	assert.Equal(t, "nftc-active", decision.RuleName)

	// on the cutoff itself the version is still inside the free window
	decision = engine.Evaluate(id, date("2024-09-17"))
	assert.Equal(t, model.LicenseFree, decision.Flag)

	// past the cutoff the earlier rule wins
	decision = engine.Evaluate(id, date("2025-01-01"))
	assert.Equal(t, model.LicenseCommercial, decision.Flag)
	assert.Equal(t, "nftc-17-expired", decision.RuleName)
}

func TestEvaluateVendorAndMajorBounds(t *testing.T) {
	engine, err := NewEngine([]Rule{
		{
			Name:     "oracle-otn",
			Flag:     model.LicenseCommercial,
			Vendors:  []model.VendorID{model.VendorOracleJDK},
			MinMajor: 8,
			MaxMajor: 16,
		},
		catchAll(),
	})
	require.NoError(t, err)

	asOf := date("2026-01-01")

	decision := engine.Evaluate(oracleIdentity(8, 0, 301, "1.8.0_301"), asOf)
	assert.Equal(t, model.LicenseCommercial, decision.Flag)

	decision = engine.Evaluate(oracleIdentity(17, 0, 2, "17.0.2"), asOf)
	assert.Equal(t, model.LicenseUnknown, decision.Flag)

	temurin := model.VersionIdentity{
		Major:  11,
		Raw:    "11.0.9",
		Vendor: model.VendorInfo{ID: model.VendorTemurin},
		Era:    model.EraModern,
	}
	decision = engine.Evaluate(temurin, asOf)
	assert.Equal(t, model.LicenseUnknown, decision.Flag)
}

func TestEvaluateIsTotal(t *testing.T) {
	engine, err := NewEngine([]Rule{catchAll()})
	require.NoError(t, err)

	identities := []model.VersionIdentity{
		{Major: 8, Vendor: model.VendorInfo{ID: model.VendorUnknown}},
		{Major: 25, Vendor: model.VendorInfo{ID: model.VendorZulu}},
		{Major: 6, Minor: model.NotApplicable, Security: model.NotApplicable},
	}
	for _, id := range identities {
		decision := engine.Evaluate(id, date("2026-08-30"))
		assert.Equal(t, model.LicenseUnknown, decision.Flag)
		assert.NotEmpty(t, decision.Explanation)
	}
}

func TestExplanationRendersConcreteValues(t *testing.T) {
	engine, err := NewEngine([]Rule{
		{
			Name:        "dated",
			Flag:        model.LicenseCommercial,
			Vendors:     []model.VendorID{model.VendorOracleJDK},
			MinMajor:    17,
			MaxMajor:    17,
			After:       date("2024-09-17"),
			Explanation: "{vendor} {version} passed the cutoff of {cutoff} for major {major}",
		},
		catchAll(),
	})
	require.NoError(t, err)

	id := oracleIdentity(17, 0, 12, "17.0.12")
	decision := engine.Evaluate(id, date("2025-06-01"))
	assert.Equal(t, "OracleJDK 17.0.12 passed the cutoff of 2024-09-17 for major 17", decision.Explanation)

	// The rendered version and vendor must resolve back to the identity
	// that triggered the rule.
	assert.Contains(t, decision.Explanation, id.String())
	reparsed, perr := parser.New(nil).Parse(id.String(), id.Vendor.ID.DisplayName())
	require.NoError(t, perr)
	assert.Equal(t, id.Major, reparsed.Major)
	assert.Equal(t, id.Minor, reparsed.Minor)
	assert.Equal(t, id.Security, reparsed.Security)
	assert.Equal(t, id.Vendor.ID, reparsed.Vendor.ID)
}

func TestSameFlagDuplicatePredicateAllowed(t *testing.T) {
	_, err := NewEngine([]Rule{
		{Name: "a", Flag: model.LicenseFree, Vendors: []model.VendorID{model.VendorZulu, model.VendorTemurin}},
		{Name: "b", Flag: model.LicenseFree, Vendors: []model.VendorID{model.VendorTemurin, model.VendorZulu}},
		catchAll(),
	})
	assert.NoError(t, err)
}
