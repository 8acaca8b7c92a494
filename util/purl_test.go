package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRuntimePURL(t *testing.T) {
	tests := []struct {
		name    string
		vendor  string
		version string
		want    string
	}{
		{
			name:    "vendored runtime",
			vendor:  "temurin",
			version: "21.0.4",
			want:    "pkg:generic/temurin/jdk@21.0.4",
		},
		{
			name:    "legacy version",
			vendor:  "oraclejdk",
			version: "1.8.0_301",
			want:    "pkg:generic/oraclejdk/jdk@1.8.0_301",
		},
		{
			name:    "no vendor namespace",
			vendor:  "",
			version: "17.0.2",
			want:    "pkg:generic/jdk@17.0.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildRuntimePURL(tt.vendor, tt.version))
		})
	}
}

func TestCleanPURL(t *testing.T) {
	cleaned, err := CleanPURL("pkg:generic/temurin/jdk@21.0.4?arch=amd64&os=linux")
	require.NoError(t, err)
	assert.Equal(t, "pkg:generic/temurin/jdk@21.0.4", cleaned)

	// already clean input round-trips unchanged
	cleaned, err = CleanPURL("pkg:generic/temurin/jdk@21.0.4")
	require.NoError(t, err)
	assert.Equal(t, "pkg:generic/temurin/jdk@21.0.4", cleaned)

	_, err = CleanPURL("not-a-purl")
	assert.Error(t, err)
}

func TestBasePURL(t *testing.T) {
	base, err := BasePURL("pkg:generic/temurin/jdk@21.0.4?arch=amd64")
	require.NoError(t, err)
	assert.Equal(t, "pkg:generic/temurin/jdk", base)

	base, err = BasePURL("pkg:generic/jdk@17.0.2")
	require.NoError(t, err)
	assert.Equal(t, "pkg:generic/jdk", base)

	_, err = BasePURL("")
	assert.Error(t, err)
}

func TestBasePURLCollapsesVersions(t *testing.T) {
	a, err := BasePURL(BuildRuntimePURL("temurin", "17.0.5"))
	require.NoError(t, err)
	b, err := BasePURL(BuildRuntimePURL("temurin", "21.0.4"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
