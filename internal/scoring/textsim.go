package scoring

import (
	"math"
	"regexp"
	"strings"
)

// tokenPattern extracts alphanumeric terms, keeping hyphenated and
// dotted tech names (node.js, scikit-learn) together.
var tokenPattern = regexp.MustCompile(`[a-z0-9]+(?:[.\-][a-z0-9]+)*`)

// stopwords are common English terms excluded from similarity scoring.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"to": true, "of": true, "in": true, "on": true, "for": true,
	"with": true, "by": true, "as": true, "at": true, "from": true,
	"is": true, "are": true, "be": true, "this": true, "that": true,
	"we": true, "you": true, "our": true, "your": true, "will": true,
	"have": true, "has": true, "it": true, "its": true,
}

func tokenize(text string) []string {
	parts := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if stopwords[part] {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

func termFrequencies(tokens []string) map[string]float64 {
	freq := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		freq[token]++
	}
	return freq
}

// textSimilarity is the TF-IDF cosine similarity of two documents.
// With smoothed inverse document frequencies over the two-document
// corpus the result stays in [0,1]; either document tokenizing to
// nothing yields 0.
func textSimilarity(a, b string) float64 {
	tfA := termFrequencies(tokenize(a))
	tfB := termFrequencies(tokenize(b))

	if len(tfA) == 0 || len(tfB) == 0 {
		return 0
	}

	idf := func(term string) float64 {
		df := 0.0
		if tfA[term] > 0 {
			df++
		}
		if tfB[term] > 0 {
			df++
		}
		// Smoothed: ln((1+n)/(1+df)) + 1 with n = 2 documents.
		return math.Log(3/(1+df)) + 1
	}

	var dot, normA, normB float64
	for term, freq := range tfA {
		weight := freq * idf(term)
		normA += weight * weight
		if freqB, ok := tfB[term]; ok {
			dot += weight * freqB * idf(term)
		}
	}
	for term, freq := range tfB {
		weight := freq * idf(term)
		normB += weight * weight
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
