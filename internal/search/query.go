package search

import (
	"fmt"
	"strings"

	"company-search/internal/common/config"
	"company-search/internal/common/metrics"
	"company-search/internal/intent"
	"company-search/internal/regions"
)

// Builder composes engine query bodies from search requests. Explicit
// filters always win over intent inferred from free text; intent only fills
// dimensions the caller left empty.
type Builder struct {
	defaultIndex    string
	indexPerCountry bool
	useIntent       bool
	extractor       *intent.Extractor
}

func NewBuilder(cfg config.SearchConfig, extractor *intent.Extractor) *Builder {
	return &Builder{
		defaultIndex:    cfg.DefaultIndex,
		indexPerCountry: cfg.IndexPerCountry,
		useIntent:       cfg.IntentExtraction,
		extractor:       extractor,
	}
}

// Build returns the engine request body: a bool query with must/filter
// clauses plus the fixed facet aggregations and pagination.
func (b *Builder) Build(req Request) map[string]interface{} {
	query := strings.TrimSpace(req.Query)

	// Country scope acts as a country filter unless an explicit one is set.
	effectiveCountry := req.Filters.Country
	if effectiveCountry == "" && req.CountryScope != "" {
		effectiveCountry = regions.Normalize(req.CountryScope)
	}

	// Intent fills only the dimensions with no explicit filter.
	var parsedIndustry []string
	var parsedLocation string
	if query != "" && b.useIntent && b.extractor != nil {
		understood := b.extractor.Extract(query)
		if len(req.Filters.Industry) == 0 {
			parsedIndustry = understood.IndustryKeywords
		}
		if req.Filters.Country == "" && req.Filters.Locality == "" {
			parsedLocation = understood.Location
		}
		result := "empty"
		if len(understood.IndustryKeywords) > 0 || understood.Location != "" {
			result = "matched"
		}
		metrics.IntentExtractions.WithLabelValues(result).Inc()
	}

	var must []interface{}
	if query != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "industry", "domain", "locality", "country"},
				"type":      "best_fields",
				"fuzziness": "AUTO",
			},
		})
	}

	var filter []interface{}
	if len(req.Filters.Industry) > 0 {
		filter = append(filter, map[string]interface{}{
			"terms": map[string]interface{}{"industry.keyword": req.Filters.Industry},
		})
	} else if len(parsedIndustry) > 0 {
		should := make([]interface{}, 0, len(parsedIndustry))
		for _, kw := range parsedIndustry {
			should = append(should, map[string]interface{}{
				"match": map[string]interface{}{"industry": kw},
			})
		}
		filter = append(filter, map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               should,
				"minimum_should_match": 1,
			},
		})
	}
	if req.Filters.SizeRange != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"size_range": req.Filters.SizeRange},
		})
	}
	if effectiveCountry != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"country": effectiveCountry},
		})
	}
	if req.Filters.Locality != "" {
		filter = append(filter, map[string]interface{}{
			"match": map[string]interface{}{"locality": req.Filters.Locality},
		})
	} else if parsedLocation != "" {
		// Inferred locations match either dimension for broad recall.
		filter = append(filter, map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					map[string]interface{}{"match": map[string]interface{}{"locality": parsedLocation}},
					map[string]interface{}{"match": map[string]interface{}{"country": parsedLocation}},
				},
				"minimum_should_match": 1,
			},
		})
	}
	if req.Filters.YearMin != nil {
		filter = append(filter, map[string]interface{}{
			"range": map[string]interface{}{"year_founded": map[string]interface{}{"gte": *req.Filters.YearMin}},
		})
	}
	if req.Filters.YearMax != nil {
		filter = append(filter, map[string]interface{}{
			"range": map[string]interface{}{"year_founded": map[string]interface{}{"lte": *req.Filters.YearMax}},
		})
	}

	if len(filter) > 0 {
		must = append(must, map[string]interface{}{
			"bool": map[string]interface{}{"filter": filter},
		})
	}

	var boolQuery map[string]interface{}
	if len(must) > 0 {
		boolQuery = map[string]interface{}{"bool": map[string]interface{}{"must": must}}
	} else {
		boolQuery = map[string]interface{}{"match_all": map[string]interface{}{}}
	}

	return map[string]interface{}{
		"query": boolQuery,
		"from":  (req.Page - 1) * req.Size,
		"size":  req.Size,
		"sort":  sortSpec(req.Sort),
		"aggs":  facetAggregations(),
	}
}

// ResolveIndices returns the index name (or comma-joined list) to query.
// Explicit indices win; otherwise a resolvable country scope is routed to
// its per-country partition when partitioning is enabled.
func (b *Builder) ResolveIndices(req Request) string {
	if len(req.Indices) > 0 {
		return strings.Join(req.Indices, ",")
	}
	if b.indexPerCountry && req.CountryScope != "" {
		canonical := regions.Normalize(req.CountryScope)
		if suffix, ok := regions.IndexSuffix(canonical); ok {
			return fmt.Sprintf("%s_%s", b.defaultIndex, suffix)
		}
	}
	return b.defaultIndex
}

func sortSpec(mode string) []interface{} {
	switch mode {
	case SortNameAsc:
		return []interface{}{map[string]interface{}{"name.keyword": "asc"}}
	case SortNameDesc:
		return []interface{}{map[string]interface{}{"name.keyword": "desc"}}
	case SortSizeDesc:
		return []interface{}{map[string]interface{}{"current_employee_estimate": "desc"}, "_score"}
	case SortSizeAsc:
		return []interface{}{map[string]interface{}{"current_employee_estimate": "asc"}, "_score"}
	case SortYearDesc:
		return []interface{}{map[string]interface{}{"year_founded": "desc"}, "_score"}
	case SortYearAsc:
		return []interface{}{map[string]interface{}{"year_founded": "asc"}, "_score"}
	default:
		return []interface{}{"_score"}
	}
}

// facetAggregations are attached to every query regardless of filters; the
// engine cuts them by all applied filters, standard faceted-search behavior.
func facetAggregations() map[string]interface{} {
	return map[string]interface{}{
		"industries": map[string]interface{}{
			"terms": map[string]interface{}{"field": "industry.keyword", "size": 100},
		},
		"countries": map[string]interface{}{
			"terms": map[string]interface{}{"field": "country", "size": 100},
		},
		"size_ranges": map[string]interface{}{
			"terms": map[string]interface{}{"field": "size_range", "size": 20},
		},
		"year_range": map[string]interface{}{
			"stats": map[string]interface{}{"field": "year_founded"},
		},
	}
}
