package intent

import "strings"

// industryExpansion maps user vocabulary to the phrases that actually appear
// in the index's industry field, so "software" matches documents tagged
// "information technology and services" or "computer software".
var industryExpansion = map[string][]string{
	"tech":          {"technology", "software", "information technology", "information technology and services", "computer", "it services", "computer software"},
	"technology":    {"technology", "software", "information technology", "information technology and services", "computer", "computer software"},
	"software":      {"software", "information technology", "information technology and services", "computer software", "it services"},
	"it":            {"information technology", "information technology and services", "it services", "computer", "computer software"},
	"fintech":       {"financial", "fintech", "banking", "financial services"},
	"finance":       {"financial", "finance", "banking", "investment"},
	"healthcare":    {"healthcare", "hospital", "medical", "health"},
	"health":        {"healthcare", "health", "medical"},
	"retail":        {"retail", "consumer", "e-commerce", "ecommerce"},
	"manufacturing": {"manufacturing", "industrial", "production"},
	"consulting":    {"consulting", "professional services", "business services"},
	"education":     {"education", "e-learning", "edtech", "training"},
	"media":         {"media", "entertainment", "publishing", "broadcast"},
	"real estate":   {"real estate", "real estate development", "property"},
	"energy":        {"energy", "oil", "gas", "renewable", "utilities"},
	"transport":     {"transport", "transportation", "logistics", "shipping"},
	"food":          {"food", "restaurant", "food & beverage", "hospitality"},
	"marketing":     {"marketing", "advertising", "market research"},
	"hr":            {"human resources", "hr", "staffing", "recruiting"},
	"recruiting":    {"recruiting", "staffing", "human resources", "talent"},
}

// lookupExpansion returns the phrase set for a normalized term, retrying the
// singular form before reporting a miss. The returned slice is a copy.
func lookupExpansion(term string) ([]string, bool) {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return nil, false
	}
	phrases, ok := industryExpansion[t]
	if !ok && strings.HasSuffix(t, "s") {
		phrases, ok = industryExpansion[t[:len(t)-1]]
	}
	if !ok {
		return nil, false
	}
	out := make([]string, len(phrases))
	copy(out, phrases)
	return out, true
}

// ExpandIndustry maps a user industry term to the keywords to match against
// the index. Unknown terms come back as a single-element literal set.
func ExpandIndustry(term string) []string {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return nil
	}
	if phrases, ok := lookupExpansion(t); ok {
		return phrases
	}
	return []string{t}
}
