package search

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"company-search/internal/regions"
)

// NormalizeResponse converts a raw engine response into the client envelope.
// Individual malformed or missing fields are tolerated per-field; they come
// back as null rather than failing the whole response.
func NormalizeResponse(raw map[string]interface{}, locale, countryScope string) Response {
	resp := Response{
		Hits: []Hit{},
		Facets: Facets{
			Industry:  []FacetValue{},
			Country:   []FacetValue{},
			SizeRange: []FacetValue{},
			Year:      map[string]float64{},
		},
	}

	// A resolvable country scope selects the per-region employee counts.
	regionSuffix := ""
	if countryScope != "" {
		if suffix, ok := regions.IndexSuffix(regions.Normalize(countryScope)); ok {
			regionSuffix = suffix
		}
	}

	hitsObj, _ := raw["hits"].(map[string]interface{})
	resp.Total = extractTotal(hitsObj)

	if hitsObj != nil {
		hitList, _ := hitsObj["hits"].([]interface{})
		for _, h := range hitList {
			hm, ok := h.(map[string]interface{})
			if !ok {
				continue
			}
			src, _ := hm["_source"].(map[string]interface{})
			resp.Hits = append(resp.Hits, normalizeHit(src, locale, regionSuffix))
		}
	}

	aggs, _ := raw["aggregations"].(map[string]interface{})
	resp.Facets.Industry = termBuckets(aggs, "industries")
	resp.Facets.Country = termBuckets(aggs, "countries")
	resp.Facets.SizeRange = termBuckets(aggs, "size_ranges")
	resp.Facets.Year = yearStats(aggs)

	if countryScope != "" {
		resp.Meta.CountryScope = countryScope
	}
	if locale != "" {
		resp.Meta.Locale = locale
	}

	return resp
}

// extractTotal handles both total shapes the engine returns across versions:
// a plain integer and an object with a "value" field.
func extractTotal(hits map[string]interface{}) int64 {
	if hits == nil {
		return 0
	}
	switch t := hits["total"].(type) {
	case map[string]interface{}:
		if v, ok := toInt64(t["value"]); ok {
			return v
		}
	default:
		if v, ok := toInt64(t); ok {
			return v
		}
	}
	return 0
}

func normalizeHit(src map[string]interface{}, locale, regionSuffix string) Hit {
	currentEmp := regionalEmployeeValue(src, "current_employee_estimate", regionSuffix)
	totalEmp := regionalEmployeeValue(src, "total_employee_estimate", regionSuffix)

	hit := Hit{
		ID:                      intField(src, "id"),
		Name:                    stringField(src, "name"),
		Domain:                  stringField(src, "domain"),
		Industry:                stringField(src, "industry"),
		SizeRange:               stringField(src, "size_range"),
		Locality:                stringField(src, "locality"),
		Country:                 stringField(src, "country"),
		YearFounded:             intField(src, "year_founded"),
		CurrentEmployeeEstimate: currentEmp,
		TotalEmployeeEstimate:   totalEmp,
		LinkedinURL:             stringField(src, "linkedin_url"),
	}

	if locale != "" {
		hit.CurrentEmployeeEstimateFormatted = formatByLocale(currentEmp, locale)
		hit.TotalEmployeeEstimateFormatted = formatByLocale(totalEmp, locale)
	}

	return hit
}

// regionalEmployeeValue prefers the per-region value under
// "<field>_by_region" keyed by suffix; absent or non-numeric region values
// fall through to the document's global field.
func regionalEmployeeValue(src map[string]interface{}, field, regionSuffix string) *int64 {
	if src == nil {
		return nil
	}
	if regionSuffix != "" {
		if byRegion, ok := src[field+"_by_region"].(map[string]interface{}); ok {
			if raw, ok := byRegion[regionSuffix]; ok {
				if v, ok := toInt64(raw); ok {
					return &v
				}
			}
		}
	}
	return intField(src, field)
}

// formatByLocale renders a count with grouped digits. Languages that group
// with a period (German, French, Spanish, Portuguese) swap the separator.
// Formatting is a presentation aid and never fails the request.
func formatByLocale(value *int64, locale string) string {
	if value == nil {
		return ""
	}
	formatted := humanize.Comma(*value)
	lang := strings.ToLower(locale)
	if strings.HasPrefix(lang, "de") || strings.HasPrefix(lang, "fr") ||
		strings.HasPrefix(lang, "pt") || strings.HasPrefix(lang, "es") {
		return strings.ReplaceAll(formatted, ",", ".")
	}
	return formatted
}

// termBuckets flattens a terms aggregation into value/count pairs in the
// engine's returned order.
func termBuckets(aggs map[string]interface{}, name string) []FacetValue {
	out := []FacetValue{}
	if aggs == nil {
		return out
	}
	agg, _ := aggs[name].(map[string]interface{})
	if agg == nil {
		return out
	}
	buckets, _ := agg["buckets"].([]interface{})
	for _, b := range buckets {
		bm, ok := b.(map[string]interface{})
		if !ok {
			continue
		}
		value := ""
		switch k := bm["key"].(type) {
		case string:
			value = k
		case float64:
			value = strconv.FormatFloat(k, 'f', -1, 64)
		}
		count, _ := toInt64(bm["doc_count"])
		out = append(out, FacetValue{Value: value, Count: count})
	}
	return out
}

// yearStats extracts the {min,max} pair of the year stats aggregation, or an
// empty map when no documents matched.
func yearStats(aggs map[string]interface{}) map[string]float64 {
	out := map[string]float64{}
	if aggs == nil {
		return out
	}
	stats, _ := aggs["year_range"].(map[string]interface{})
	if stats == nil {
		return out
	}
	min, minOK := stats["min"].(float64)
	max, maxOK := stats["max"].(float64)
	if minOK && maxOK {
		out["min"] = min
		out["max"] = max
	}
	return out
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func intField(src map[string]interface{}, field string) *int64 {
	if src == nil {
		return nil
	}
	if v, ok := toInt64(src[field]); ok {
		return &v
	}
	return nil
}

func stringField(src map[string]interface{}, field string) *string {
	if src == nil {
		return nil
	}
	if s, ok := src[field].(string); ok {
		return &s
	}
	return nil
}
