package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdkaudit/jdkaudit-backend/database"
)

func TestGroupByBasePURL(t *testing.T) {
	counts := []database.RuntimeCount{
		{RuntimePURL: "pkg:generic/temurin/jdk@21.0.4", Count: 5},
		{RuntimePURL: "pkg:generic/temurin/jdk@17.0.5", Count: 3},
		{RuntimePURL: "pkg:generic/oraclejdk/jdk@1.8.0_301", Count: 4},
		{RuntimePURL: "pkg:generic/jdk@17.0.2", Count: 2},
	}

	summaries := groupByBasePURL(counts)
	require.Len(t, summaries, 3)

	// versions collapse per vendor, highest total first
	assert.Equal(t, RuntimeSummary{BasePURL: "pkg:generic/temurin/jdk", Count: 8}, summaries[0])
	assert.Equal(t, RuntimeSummary{BasePURL: "pkg:generic/oraclejdk/jdk", Count: 4}, summaries[1])
	assert.Equal(t, RuntimeSummary{BasePURL: "pkg:generic/jdk", Count: 2}, summaries[2])
}

func TestGroupByBasePURLTieOrder(t *testing.T) {
	counts := []database.RuntimeCount{
		{RuntimePURL: "pkg:generic/zulu/jdk@11.0.9", Count: 1},
		{RuntimePURL: "pkg:generic/corretto/jdk@17.0.5", Count: 1},
	}

	summaries := groupByBasePURL(counts)
	require.Len(t, summaries, 2)
	assert.Equal(t, "pkg:generic/corretto/jdk", summaries[0].BasePURL)
	assert.Equal(t, "pkg:generic/zulu/jdk", summaries[1].BasePURL)
}

func TestGroupByBasePURLKeepsUnparseable(t *testing.T) {
	counts := []database.RuntimeCount{
		{RuntimePURL: "not-a-purl", Count: 2},
	}

	summaries := groupByBasePURL(counts)
	require.Len(t, summaries, 1)
	assert.Equal(t, RuntimeSummary{BasePURL: "not-a-purl", Count: 2}, summaries[0])
}
