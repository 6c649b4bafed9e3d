package regions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Aliases(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"iso code", "us", "united states"},
		{"three letter code", "USA", "united states"},
		{"full name", "United States", "united states"},
		{"long form", "united states of america", "united states"},
		{"uk alias", "gb", "united kingdom"},
		{"uk abbreviation", "UK", "united kingdom"},
		{"germany code", "de", "germany"},
		{"whitespace", "  Germany  ", "germany"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_AllAliasesAgree(t *testing.T) {
	// Every alias of a canonical country must resolve to the same value.
	for alias, canonical := range countryAliases {
		assert.Equal(t, canonical, Normalize(alias), "alias %q", alias)
	}
}

func TestNormalize_UnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "wakanda", Normalize("Wakanda"))
	assert.Equal(t, "south korea", Normalize("  South Korea "))
	assert.Equal(t, "", Normalize("   "))
}

func TestIndexSuffix(t *testing.T) {
	suffix, ok := IndexSuffix("germany")
	require.True(t, ok)
	assert.Equal(t, "de", suffix)

	_, ok = IndexSuffix("wakanda")
	assert.False(t, ok)
}

func TestSupported_MatchesLookupTables(t *testing.T) {
	regions := Supported()
	require.Len(t, regions, len(indexSuffixes))

	seenID := make(map[string]bool)
	seenSuffix := make(map[string]bool)
	for _, r := range regions {
		assert.False(t, seenID[r.ID], "duplicate region id %q", r.ID)
		assert.False(t, seenSuffix[r.IndexSuffix], "duplicate suffix %q", r.IndexSuffix)
		seenID[r.ID] = true
		seenSuffix[r.IndexSuffix] = true

		// Region IDs must round-trip through normalization and suffix lookup.
		assert.Equal(t, r.ID, Normalize(r.ID))
		suffix, ok := IndexSuffix(r.ID)
		require.True(t, ok, "region %q has no suffix", r.ID)
		assert.Equal(t, r.IndexSuffix, suffix)
		assert.NotEmpty(t, r.Locale)
	}
}

func TestSupported_ReturnsCopy(t *testing.T) {
	first := Supported()
	first[0].ID = "mutated"
	assert.Equal(t, "united states", Supported()[0].ID)
}
