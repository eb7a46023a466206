// Package rules implements language understanding without a model: intents
// by token overlap with sample phrases, entities by regular expressions and
// the catalog's own titles.
package rules

import (
	"strings"
	"unicode"

	"bookstore/internal/core/domain/model/nlu"
	"bookstore/internal/pkg/textnorm"
)

// DefaultThreshold is the minimum score below which an utterance is unknown.
const DefaultThreshold = 0.5

// Classifier scores an utterance against every sample phrase. A sample
// scores the share of its tokens present in the utterance. The best sample
// wins, ties going to the sample with more matched tokens and then to the
// earlier intent in nlu.Intents order.
type Classifier struct {
	samples   map[nlu.Intent][][]string
	threshold float64
}

func NewClassifier(threshold float64) *Classifier {
	c := &Classifier{
		samples:   make(map[nlu.Intent][][]string, len(intentSamples)),
		threshold: threshold,
	}
	for intent, phrases := range intentSamples {
		for _, p := range phrases {
			if tokens := tokenize(p); len(tokens) > 0 {
				c.samples[intent] = append(c.samples[intent], tokens)
			}
		}
	}
	return c
}

// Classify returns the intent and its score in [0, 1].
func (c *Classifier) Classify(text string) (nlu.Intent, float64) {
	words := make(map[string]struct{})
	for _, t := range tokenize(text) {
		words[t] = struct{}{}
	}
	if len(words) == 0 {
		return nlu.Unknown, 0
	}

	best, bestScore, bestMatched := nlu.Unknown, 0.0, 0
	for _, intent := range nlu.Intents() {
		for _, sample := range c.samples[intent] {
			matched := 0
			for _, t := range sample {
				if _, ok := words[t]; ok {
					matched++
				}
			}
			score := float64(matched) / float64(len(sample))
			if score > bestScore || (score == bestScore && matched > bestMatched) {
				best, bestScore, bestMatched = intent, score, matched
			}
		}
	}

	if bestScore < c.threshold {
		return nlu.Unknown, bestScore
	}
	return best, bestScore
}

func tokenize(s string) []string {
	return strings.FieldsFunc(textnorm.Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
