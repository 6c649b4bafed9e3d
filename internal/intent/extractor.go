package intent

import (
	"regexp"
	"strings"

	"company-search/internal/common/logger"
)

// Intent is the structured filter hint inferred from a free-text query.
// Zero values mean the corresponding dimension could not be inferred.
type Intent struct {
	IndustryKeywords []string
	Location         string
}

// Entity labels treated as locations (geo-political, location, facility).
var locationEntityLabels = map[string]bool{
	"GPE": true,
	"LOC": true,
	"FAC": true,
}

// Anchored "<phrase> company|companies [in <location>]" pattern.
var industryPattern = regexp.MustCompile(`^(.+?)\s+compan(?:y|ies)(?:\s+in\s+.+)?\s*$`)

// Generic terms skipped during the noun-scan fallback.
var nounStoplist = map[string]bool{
	"company":   true,
	"companies": true,
}

// Extractor turns free text into filter hints using a pluggable Annotator.
type Extractor struct {
	annotator Annotator
	logger    logger.Logger
}

// NewExtractor builds an Extractor. A nil annotator degrades to the no-op
// implementation so extraction never becomes a hard dependency.
func NewExtractor(annotator Annotator, log logger.Logger) *Extractor {
	if annotator == nil {
		annotator = NoopAnnotator{}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Extractor{
		annotator: annotator,
		logger:    log.With(map[string]interface{}{"component": "intent"}),
	}
}

// Extract infers industry keywords and a location phrase from a query.
// It never fails: empty text, a missing model, or an annotation error all
// resolve to an empty (or partial) Intent.
func (e *Extractor) Extract(text string) Intent {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Intent{}
	}

	ann, err := e.annotator.Annotate(trimmed)
	if err != nil {
		e.logger.Debug("annotation unavailable, extraction degraded", map[string]interface{}{
			"error": err.Error(),
		})
		ann = Annotation{}
	}

	out := Intent{Location: extractLocation(ann)}
	out.IndustryKeywords = e.extractIndustry(trimmed, ann, out.Location)
	return out
}

// extractLocation picks the first geo entity, or the first two space-joined
// in document order when more than one is found.
func extractLocation(ann Annotation) string {
	var found []string
	for _, ent := range ann.Entities {
		if !locationEntityLabels[ent.Label] {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(ent.Text))
		if text == "" {
			continue
		}
		found = append(found, text)
		if len(found) == 2 {
			break
		}
	}
	return strings.Join(found, " ")
}

func (e *Extractor) extractIndustry(text string, ann Annotation, location string) []string {
	lower := strings.ToLower(text)

	if m := industryPattern.FindStringSubmatch(lower); m != nil {
		phrase := strings.TrimSpace(m[1])
		if phrase == "" || phrase == "all" {
			return nil
		}
		if keywords, ok := lookupExpansion(phrase); ok {
			return keywords
		}
		// The whole phrase has no entry: retry each token's lemma, skipping
		// the company words, and take the first that expands.
		for _, word := range strings.Fields(phrase) {
			lem := lemma(word)
			if lem == "" || lem == "company" || lem == "companies" {
				continue
			}
			if keywords, ok := lookupExpansion(lem); ok {
				return keywords
			}
		}
		return []string{phrase}
	}

	// No anchored pattern: scan nouns in order, skipping generic terms and
	// words already claimed by the location, and use the first that expands.
	skip := make(map[string]bool, len(nounStoplist))
	for w := range nounStoplist {
		skip[w] = true
	}
	for _, w := range strings.Fields(location) {
		skip[w] = true
	}
	for _, tok := range ann.Tokens {
		if !strings.HasPrefix(tok.Tag, "NN") {
			continue
		}
		word := strings.ToLower(tok.Text)
		if skip[word] {
			continue
		}
		if keywords, ok := lookupExpansion(word); ok {
			return keywords
		}
	}
	return nil
}

// lemma reduces a plural noun to its singular form. Close enough for the
// vocabulary in the expansion table.
func lemma(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	switch {
	case len(w) > 3 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 3 && (strings.HasSuffix(w, "ses") || strings.HasSuffix(w, "xes") || strings.HasSuffix(w, "hes")):
		return w[:len(w)-2]
	case len(w) > 1 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return w[:len(w)-1]
	}
	return w
}
