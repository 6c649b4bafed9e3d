package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-search/internal/common/config"
	"company-search/internal/common/logger"
	"company-search/internal/intent"
)

// stubAnnotator lets builder tests drive intent extraction without a model.
type stubAnnotator struct {
	annotation intent.Annotation
}

func (s stubAnnotator) Annotate(string) (intent.Annotation, error) {
	return s.annotation, nil
}

func testBuilder(indexPerCountry bool, ann intent.Annotator) *Builder {
	if ann == nil {
		ann = intent.NoopAnnotator{}
	}
	cfg := config.SearchConfig{
		DefaultIndex:     "company",
		IndexPerCountry:  indexPerCountry,
		IntentExtraction: true,
		EngineTimeout:    10000,
	}
	return NewBuilder(cfg, intent.NewExtractor(ann, logger.NewNoOpLogger()))
}

// mustClauses digs the must clause list out of a built body.
func mustClauses(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()
	query, ok := body["query"].(map[string]interface{})
	require.True(t, ok)
	boolQ, ok := query["bool"].(map[string]interface{})
	require.True(t, ok, "expected a bool query, got %v", query)
	must, ok := boolQ["must"].([]interface{})
	require.True(t, ok)
	return must
}

// filterClauses digs the filter clause list out of a built body.
func filterClauses(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()
	for _, clause := range mustClauses(t, body) {
		cm, ok := clause.(map[string]interface{})
		if !ok {
			continue
		}
		if boolC, ok := cm["bool"].(map[string]interface{}); ok {
			if filter, ok := boolC["filter"].([]interface{}); ok {
				return filter
			}
		}
	}
	return nil
}

// findTermFilter returns the value of a term filter on field, or nil.
func findTermFilter(t *testing.T, body map[string]interface{}, field string) interface{} {
	t.Helper()
	for _, clause := range filterClauses(t, body) {
		cm := clause.(map[string]interface{})
		if term, ok := cm["term"].(map[string]interface{}); ok {
			if v, ok := term[field]; ok {
				return v
			}
		}
	}
	return nil
}

func TestBuild_EmptyRequestIsMatchAll(t *testing.T) {
	b := testBuilder(false, nil)
	body := b.Build(Request{Page: 1, Size: 20})

	query := body["query"].(map[string]interface{})
	assert.Contains(t, query, "match_all")
	assert.Equal(t, 0, body["from"])
	assert.Equal(t, 20, body["size"])

	aggs := body["aggs"].(map[string]interface{})
	for _, name := range []string{"industries", "countries", "size_ranges", "year_range"} {
		assert.Contains(t, aggs, name)
	}
}

func TestBuild_Pagination(t *testing.T) {
	b := testBuilder(false, nil)

	assert.Equal(t, 40, b.Build(Request{Page: 3, Size: 20})["from"])
	assert.Equal(t, 0, b.Build(Request{Page: 1, Size: 100})["from"])
	assert.Equal(t, 10, b.Build(Request{Page: 2, Size: 10})["from"])
}

func TestBuild_TextClause(t *testing.T) {
	b := testBuilder(false, nil)
	body := b.Build(Request{Query: "  Acme Corp  ", Page: 1, Size: 20})

	must := mustClauses(t, body)
	require.NotEmpty(t, must)
	mm := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "Acme Corp", mm["query"])
	assert.Equal(t, []string{"name^2", "industry", "domain", "locality", "country"}, mm["fields"])
	assert.Equal(t, "best_fields", mm["type"])
	assert.Equal(t, "AUTO", mm["fuzziness"])
}

func TestBuild_ExplicitFilters(t *testing.T) {
	b := testBuilder(false, nil)
	yearMin, yearMax := 1990, 2010
	body := b.Build(Request{
		Page: 1, Size: 20,
		Filters: Filters{
			Industry:  []string{"computer software", "banking"},
			SizeRange: "51-200",
			Country:   "germany",
			Locality:  "berlin",
			YearMin:   &yearMin,
			YearMax:   &yearMax,
		},
	})

	filter := filterClauses(t, body)
	require.Len(t, filter, 6)

	terms := filter[0].(map[string]interface{})["terms"].(map[string]interface{})
	assert.Equal(t, []string{"computer software", "banking"}, terms["industry.keyword"])
	assert.Equal(t, "51-200", findTermFilter(t, body, "size_range"))
	assert.Equal(t, "germany", findTermFilter(t, body, "country"))
}

func TestBuild_Idempotent(t *testing.T) {
	b := testBuilder(false, nil)
	req := Request{
		Page: 2, Size: 50, Sort: SortYearDesc,
		Filters: Filters{Industry: []string{"retail"}, Country: "france"},
	}
	assert.Equal(t, b.Build(req), b.Build(req))
}

func TestBuild_ExplicitCountryBeatsScope(t *testing.T) {
	b := testBuilder(false, nil)
	body := b.Build(Request{
		Page: 1, Size: 20,
		Filters:      Filters{Country: "france"},
		CountryScope: "de",
	})
	assert.Equal(t, "france", findTermFilter(t, body, "country"))
}

func TestBuild_CountryScopeNormalized(t *testing.T) {
	b := testBuilder(false, nil)
	body := b.Build(Request{Page: 1, Size: 20, CountryScope: "DE"})
	assert.Equal(t, "germany", findTermFilter(t, body, "country"))
}

func TestBuild_IntentFillsUnsetDimensions(t *testing.T) {
	ann := stubAnnotator{annotation: intent.Annotation{
		Entities: []intent.Entity{{Text: "California", Label: "GPE"}},
	}}
	b := testBuilder(false, ann)
	body := b.Build(Request{Query: "tech companies in california", Page: 1, Size: 20})

	filter := filterClauses(t, body)
	require.Len(t, filter, 2)

	// Industry should-clause over the expanded keyword set.
	industryBool := filter[0].(map[string]interface{})["bool"].(map[string]interface{})
	should := industryBool["should"].([]interface{})
	assert.Equal(t, 1, industryBool["minimum_should_match"])
	var keywords []string
	for _, s := range should {
		match := s.(map[string]interface{})["match"].(map[string]interface{})
		keywords = append(keywords, match["industry"].(string))
	}
	assert.Contains(t, keywords, "technology")
	assert.Contains(t, keywords, "software")

	// Location should-clause matching locality or country.
	locationBool := filter[1].(map[string]interface{})["bool"].(map[string]interface{})
	locShould := locationBool["should"].([]interface{})
	require.Len(t, locShould, 2)
	locality := locShould[0].(map[string]interface{})["match"].(map[string]interface{})
	country := locShould[1].(map[string]interface{})["match"].(map[string]interface{})
	assert.Equal(t, "california", locality["locality"])
	assert.Equal(t, "california", country["country"])

	// No explicit-filter clauses beyond the two inferred ones.
	assert.Nil(t, findTermFilter(t, body, "country"))
	assert.Nil(t, findTermFilter(t, body, "size_range"))
}

func TestBuild_ExplicitIndustrySuppressesIntent(t *testing.T) {
	ann := stubAnnotator{annotation: intent.Annotation{}}
	b := testBuilder(false, ann)
	body := b.Build(Request{
		Query: "tech companies in california",
		Page:  1, Size: 20,
		Filters: Filters{Industry: []string{"banking"}},
	})

	filter := filterClauses(t, body)
	terms := filter[0].(map[string]interface{})["terms"].(map[string]interface{})
	assert.Equal(t, []string{"banking"}, terms["industry.keyword"])
	for _, clause := range filter {
		cm := clause.(map[string]interface{})
		if boolC, ok := cm["bool"].(map[string]interface{}); ok {
			should := boolC["should"].([]interface{})
			first := should[0].(map[string]interface{})["match"].(map[string]interface{})
			_, isIndustry := first["industry"]
			assert.False(t, isIndustry, "intent industry clause must be suppressed")
		}
	}
}

func TestBuild_ExplicitLocalitySuppressesIntentLocation(t *testing.T) {
	ann := stubAnnotator{annotation: intent.Annotation{
		Entities: []intent.Entity{{Text: "California", Label: "GPE"}},
	}}
	b := testBuilder(false, ann)
	body := b.Build(Request{
		Query: "tech companies in california",
		Page:  1, Size: 20,
		Filters: Filters{Locality: "san francisco"},
	})

	foundLocality := false
	for _, clause := range filterClauses(t, body) {
		cm := clause.(map[string]interface{})
		if match, ok := cm["match"].(map[string]interface{}); ok {
			if v, ok := match["locality"]; ok {
				foundLocality = true
				assert.Equal(t, "san francisco", v)
			}
		}
	}
	assert.True(t, foundLocality)
}

func TestBuild_SortModes(t *testing.T) {
	b := testBuilder(false, nil)
	tests := []struct {
		mode     string
		expected []interface{}
	}{
		{SortRelevance, []interface{}{"_score"}},
		{"", []interface{}{"_score"}},
		{SortNameAsc, []interface{}{map[string]interface{}{"name.keyword": "asc"}}},
		{SortNameDesc, []interface{}{map[string]interface{}{"name.keyword": "desc"}}},
		{SortSizeDesc, []interface{}{map[string]interface{}{"current_employee_estimate": "desc"}, "_score"}},
		{SortSizeAsc, []interface{}{map[string]interface{}{"current_employee_estimate": "asc"}, "_score"}},
		{SortYearDesc, []interface{}{map[string]interface{}{"year_founded": "desc"}, "_score"}},
		{SortYearAsc, []interface{}{map[string]interface{}{"year_founded": "asc"}, "_score"}},
	}
	for _, tt := range tests {
		body := b.Build(Request{Page: 1, Size: 20, Sort: tt.mode})
		assert.Equal(t, tt.expected, body["sort"], "sort mode %q", tt.mode)
	}
}

func TestResolveIndices(t *testing.T) {
	tests := []struct {
		name            string
		indexPerCountry bool
		req             Request
		expected        string
	}{
		{"default", false, Request{}, "company"},
		{"explicit list wins", true, Request{Indices: []string{"company_a", "company_b"}, CountryScope: "us"}, "company_a,company_b"},
		{"partition from scope", true, Request{CountryScope: "US"}, "company_us"},
		{"partition from full name", true, Request{CountryScope: "United Kingdom"}, "company_uk"},
		{"partitioning disabled", false, Request{CountryScope: "us"}, "company"},
		{"unknown scope falls back", true, Request{CountryScope: "wakanda"}, "company"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBuilder(tt.indexPerCountry, nil)
			assert.Equal(t, tt.expected, b.ResolveIndices(tt.req))
		})
	}
}

func TestRequestValidate(t *testing.T) {
	valid := Request{Page: 1, Size: 20, Sort: SortRelevance}
	assert.NoError(t, valid.Validate())

	assert.Error(t, Request{Page: 0, Size: 20}.Validate())
	assert.Error(t, Request{Page: 1, Size: 0}.Validate())
	assert.Error(t, Request{Page: 1, Size: 101}.Validate())
	assert.Error(t, Request{Page: 1, Size: 20, Sort: "alphabetical"}.Validate())
	assert.NoError(t, Request{Page: 1, Size: 20}.Validate(), "empty sort means relevance")
}
