// Package keywords tags free text with terms from a fixed vocabulary.
package keywords

import "strings"

// DefaultVocabulary is the built-in set of AI-related terms used to tag
// job postings. Order matters: matches are reported in vocabulary order.
var DefaultVocabulary = []string{
	"KI", "AI", "Künstliche Intelligenz", "Artificial Intelligence",
	"Machine Learning", "ML", "Deep Learning", "GenAI", "Generative AI",
	"LLM", "Large Language Model", "ChatGPT", "GPT", "Copilot",
	"NLP", "Natural Language Processing", "Computer Vision",
	"Neural Network", "Data Science", "Prompt Engineer",
}

// Tagger matches a vocabulary against free text.
type Tagger struct {
	vocab   []string
	lowered []string
}

// NewTagger creates a tagger for the given vocabulary. A nil or empty
// vocabulary falls back to DefaultVocabulary.
func NewTagger(vocab []string) *Tagger {
	if len(vocab) == 0 {
		vocab = DefaultVocabulary
	}
	lowered := make([]string, len(vocab))
	for i, v := range vocab {
		lowered[i] = strings.ToLower(v)
	}
	return &Tagger{vocab: vocab, lowered: lowered}
}

// Match returns the vocabulary terms that occur in text as case-insensitive
// substrings, in vocabulary order, each at most once.
func (t *Tagger) Match(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var matched []string
	for i, lv := range t.lowered {
		if strings.Contains(lower, lv) {
			matched = append(matched, t.vocab[i])
		}
	}
	return matched
}

// Vocabulary returns the tagger's term list.
func (t *Tagger) Vocabulary() []string {
	return t.vocab
}
