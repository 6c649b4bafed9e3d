// Package regions maps country codes, names and abbreviations onto the
// canonical country values stored in the company index, and describes the
// per-country index partitions used for localized search.
package regions

import "strings"

// Region describes one supported country for localized search.
type Region struct {
	ID          string `json:"id"`           // canonical country value stored in the index
	Label       string `json:"label"`        // display name
	Locale      string `json:"locale"`       // BCP 47 language-region tag
	IndexSuffix string `json:"index_suffix"` // suffix for the per-country index partition
}

// countryAliases maps user input (ISO codes, common abbreviations, full names)
// to the canonical lowercase country value used in the index.
var countryAliases = map[string]string{
	"us":                       "united states",
	"usa":                      "united states",
	"united states":            "united states",
	"united states of america": "united states",
	"in":                       "india",
	"ind":                      "india",
	"india":                    "india",
	"br":                       "brazil",
	"bra":                      "brazil",
	"brazil":                   "brazil",
	"gb":                       "united kingdom",
	"uk":                       "united kingdom",
	"united kingdom":           "united kingdom",
	"de":                       "germany",
	"deu":                      "germany",
	"germany":                  "germany",
	"fr":                       "france",
	"fra":                      "france",
	"france":                   "france",
	"jp":                       "japan",
	"jpn":                      "japan",
	"japan":                    "japan",
	"cn":                       "china",
	"chn":                      "china",
	"china":                    "china",
	"ca":                       "canada",
	"can":                      "canada",
	"canada":                   "canada",
	"au":                       "australia",
	"aus":                      "australia",
	"australia":                "australia",
	"mx":                       "mexico",
	"mex":                      "mexico",
	"mexico":                   "mexico",
	"es":                       "spain",
	"esp":                      "spain",
	"spain":                    "spain",
	"ie":                       "ireland",
	"irl":                      "ireland",
	"ireland":                  "ireland",
	"nl":                       "netherlands",
	"nld":                      "netherlands",
	"netherlands":              "netherlands",
	"sg":                       "singapore",
	"sgp":                      "singapore",
	"singapore":                "singapore",
	"ar":                       "argentina",
	"arg":                      "argentina",
	"argentina":                "argentina",
}

// indexSuffixes maps a canonical country to the suffix of its index
// partition (company_us, company_in, ...).
var indexSuffixes = map[string]string{
	"united states":  "us",
	"india":          "in",
	"brazil":         "br",
	"united kingdom": "uk",
	"germany":        "de",
	"france":         "fr",
	"japan":          "jp",
	"china":          "cn",
	"canada":         "ca",
	"australia":      "au",
	"mexico":         "mx",
	"spain":          "es",
	"ireland":        "ie",
	"netherlands":    "nl",
	"singapore":      "sg",
	"argentina":      "ar",
}

var supported = []Region{
	{ID: "united states", Label: "United States", Locale: "en-US", IndexSuffix: "us"},
	{ID: "india", Label: "India", Locale: "en-IN", IndexSuffix: "in"},
	{ID: "brazil", Label: "Brazil", Locale: "pt-BR", IndexSuffix: "br"},
	{ID: "united kingdom", Label: "United Kingdom", Locale: "en-GB", IndexSuffix: "uk"},
	{ID: "germany", Label: "Germany", Locale: "de-DE", IndexSuffix: "de"},
	{ID: "france", Label: "France", Locale: "fr-FR", IndexSuffix: "fr"},
	{ID: "japan", Label: "Japan", Locale: "ja-JP", IndexSuffix: "jp"},
	{ID: "china", Label: "China", Locale: "zh-CN", IndexSuffix: "cn"},
	{ID: "canada", Label: "Canada", Locale: "en-CA", IndexSuffix: "ca"},
	{ID: "australia", Label: "Australia", Locale: "en-AU", IndexSuffix: "au"},
	{ID: "mexico", Label: "Mexico", Locale: "es-MX", IndexSuffix: "mx"},
	{ID: "spain", Label: "Spain", Locale: "es-ES", IndexSuffix: "es"},
	{ID: "ireland", Label: "Ireland", Locale: "en-IE", IndexSuffix: "ie"},
	{ID: "netherlands", Label: "Netherlands", Locale: "nl-NL", IndexSuffix: "nl"},
	{ID: "singapore", Label: "Singapore", Locale: "en-SG", IndexSuffix: "sg"},
	{ID: "argentina", Label: "Argentina", Locale: "es-AR", IndexSuffix: "ar"},
}

// Normalize resolves a country code or name to the canonical value stored in
// the index. Unrecognized input is returned lowercased and trimmed so it can
// still be used as a literal filter value; empty input yields "".
func Normalize(input string) string {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" {
		return ""
	}
	if canonical, ok := countryAliases[key]; ok {
		return canonical
	}
	return key
}

// IndexSuffix returns the per-country index suffix for a canonical country.
// The second return value is false when no partition exists for that country.
func IndexSuffix(canonical string) (string, bool) {
	suffix, ok := indexSuffixes[canonical]
	return suffix, ok
}

// Supported returns the supported regions in display order. The returned
// slice is a copy; callers may not mutate the table.
func Supported() []Region {
	out := make([]Region, len(supported))
	copy(out, supported)
	return out
}
