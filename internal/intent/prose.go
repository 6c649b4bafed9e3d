package intent

import (
	"github.com/jdkato/prose/v2"
)

// ProseAnnotator runs NER and part-of-speech tagging with the prose English
// model. Construction loads the model once; a failed load is reported so the
// caller can fall back to NoopAnnotator.
type ProseAnnotator struct{}

// NewProseAnnotator verifies the model loads by annotating a probe sentence.
func NewProseAnnotator() (*ProseAnnotator, error) {
	if _, err := prose.NewDocument("probe", prose.WithSegmentation(false)); err != nil {
		return nil, err
	}
	return &ProseAnnotator{}, nil
}

func (a *ProseAnnotator) Annotate(text string) (Annotation, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return Annotation{}, err
	}

	var ann Annotation
	for _, ent := range doc.Entities() {
		ann.Entities = append(ann.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	for _, tok := range doc.Tokens() {
		ann.Tokens = append(ann.Tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}
	return ann, nil
}
