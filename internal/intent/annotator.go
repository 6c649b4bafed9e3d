// Package intent infers industry and location filter hints from free-text
// search queries. Extraction is advisory: every failure mode degrades to an
// empty result and search proceeds on explicit filters and free text alone.
package intent

// Entity is a named entity recognized in the query text.
type Entity struct {
	Text  string
	Label string
}

// Token is a single token with its part-of-speech tag (Penn Treebank).
type Token struct {
	Text string
	Tag  string
}

// Annotation is the linguistic analysis of one query.
type Annotation struct {
	Entities []Entity
	Tokens   []Token
}

// Annotator produces entity and part-of-speech annotations for a query.
// Implementations must be safe for concurrent use.
type Annotator interface {
	Annotate(text string) (Annotation, error)
}

// NoopAnnotator is the always-available fallback used when no language model
// can be loaded. It yields empty annotations so extraction degrades silently.
type NoopAnnotator struct{}

func (NoopAnnotator) Annotate(string) (Annotation, error) {
	return Annotation{}, nil
}
