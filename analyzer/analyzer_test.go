package analyzer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdkaudit/jdkaudit-backend/config"
	"github.com/jdkaudit/jdkaudit-backend/model"
	"github.com/jdkaudit/jdkaudit-backend/policy"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(config.Default())
	require.NoError(t, err)
	return svc
}

func TestNewServiceRejectsBrokenRuleSet(t *testing.T) {
	bundle := config.Default()
	// drop the catch-all so the rule chain is no longer exhaustive
	bundle.LicenseRules = bundle.LicenseRules[:len(bundle.LicenseRules)-1]

	svc, err := NewService(bundle)
	assert.Nil(t, svc)
	require.Error(t, err)

	var configErr *policy.ConfigError
	assert.True(t, errors.As(err, &configErr))
}

func TestAnalyzeOracleLegacy(t *testing.T) {
	svc := newTestService(t)
	raw := `java version "1.8.0_301"
Java(TM) SE Runtime Environment (build 1.8.0_301-b09)
Java HotSpot(TM) 64-Bit Server VM (build 25.301-b09, mixed mode)`

	verdict, err := svc.Analyze(raw, date("2026-08-30"), "")
	require.NoError(t, err)

	assert.Equal(t, 8, verdict.Identity.Major)
	assert.Equal(t, model.VendorOracleJDK, verdict.Identity.Vendor.ID)
	assert.Equal(t, model.LicenseCommercial, verdict.License.Flag)
	assert.Equal(t, "oracle-otn-legacy", verdict.License.RuleName)
	assert.Equal(t, model.ConfidenceHigh, verdict.Confidence)
	assert.Equal(t, "pkg:generic/oraclejdk/jdk@1.8.0_301", verdict.RuntimePURL)
	assert.Equal(t, date("2026-08-30"), verdict.AnalyzedAt)
}

func TestAnalyzeOracle17CutoffFlip(t *testing.T) {
	svc := newTestService(t)
	raw := "java.version=17.0.2\njava.vendor=Oracle Corporation"

	before, err := svc.Analyze(raw, date("2024-01-01"), "")
	require.NoError(t, err)
	assert.Equal(t, model.LicenseFree, before.License.Flag)

	after, err := svc.Analyze(raw, date("2025-01-01"), "")
	require.NoError(t, err)
	assert.Equal(t, model.LicenseCommercial, after.License.Flag)
	assert.Contains(t, after.License.Explanation, "2024-09-17")
}

func TestAnalyzeTemurinLTS(t *testing.T) {
	svc := newTestService(t)
	raw := `openjdk version "17.0.5" 2022-10-18
OpenJDK Runtime Environment Temurin-17.0.5+8 (build 17.0.5+8)`

	verdict, err := svc.Analyze(raw, date("2026-08-30"), "")
	require.NoError(t, err)

	assert.Equal(t, model.VendorTemurin, verdict.Identity.Vendor.ID)
	assert.Equal(t, model.LicenseFree, verdict.License.Flag)
	assert.Equal(t, model.RiskMaintenanceLTS, verdict.Risk.Category)
	assert.Equal(t, model.ConfidenceHigh, verdict.Confidence)
}

func TestAnalyzeParseFailureShortCircuits(t *testing.T) {
	svc := newTestService(t)

	verdict, err := svc.Analyze("not-a-version", date("2026-08-30"), "")
	assert.Nil(t, verdict)
	require.Error(t, err)

	var failure *model.ParseFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, model.ReasonMalformed, failure.Reason)
}

func TestAnalyzeUnknownVendorReducesConfidence(t *testing.T) {
	svc := newTestService(t)

	verdict, err := svc.Analyze("17.0.2", date("2026-08-30"), "")
	require.NoError(t, err)

	assert.Equal(t, model.VendorUnknown, verdict.Identity.Vendor.ID)
	assert.Equal(t, model.ConfidenceReduced, verdict.Confidence)
	// no vendor namespace in the PURL
	assert.Equal(t, "pkg:generic/jdk@17.0.2", verdict.RuntimePURL)
}

func TestAnalyzeLifecycleFallbackReducesConfidence(t *testing.T) {
	svc := newTestService(t)

	// zulu is a known vendor but has no lifecycle row for 21, so the
	// neutral schedule answers and confidence drops
	verdict, err := svc.Analyze("21.0.4+7", date("2026-08-30"), "zulu")
	require.NoError(t, err)

	assert.Equal(t, model.VendorZulu, verdict.Identity.Vendor.ID)
	require.NotNil(t, verdict.Risk.Record)
	assert.True(t, verdict.Risk.ReducedConfidence)
	assert.Equal(t, model.ConfidenceReduced, verdict.Confidence)
}

func TestAnalyzeUnsupportedRuntime(t *testing.T) {
	svc := newTestService(t)

	verdict, err := svc.Analyze("1.6.0_45", date("2026-08-30"), "zulu")
	require.NoError(t, err)

	assert.Equal(t, 6, verdict.Identity.Major)
	assert.Equal(t, model.RiskUnsupported, verdict.Risk.Category)
	assert.Nil(t, verdict.Risk.Record)
	assert.Equal(t, model.ConfidenceReduced, verdict.Confidence)
}

func TestAnalyzeEndOfLifeNonLTS(t *testing.T) {
	svc := newTestService(t)

	verdict, err := svc.Analyze("22.0.1", date("2026-08-30"), "temurin")
	require.NoError(t, err)

	assert.Equal(t, model.RiskEndOfLife, verdict.Risk.Category)
	assert.Equal(t, model.LicenseFree, verdict.License.Flag)
}

func TestLifecycleRecords(t *testing.T) {
	svc := newTestService(t)

	records := svc.LifecycleRecords()
	assert.NotEmpty(t, records)

	found := false
	for _, rec := range records {
		if rec.Vendor == "" && rec.Major == 21 {
			found = true
			assert.True(t, rec.LTS)
		}
	}
	assert.True(t, found, "neutral row for major 21 missing")
}
