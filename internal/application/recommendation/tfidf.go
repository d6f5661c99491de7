package recommendation

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// englishStopWords are dropped during tokenization so clusters form
// around the descriptive words in product names.
var englishStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "or": {}, "that": {}, "the": {},
	"to": {}, "was": {}, "were": {}, "will": {}, "with": {},
}

// Tokenize lower-cases the text and splits it into stop-word-free terms.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, stop := englishStopWords[field]; stop {
			continue
		}
		terms = append(terms, field)
	}
	return terms
}

// Vectorizer maps documents into a shared TF-IDF space.
type Vectorizer struct {
	Vocabulary []string
	index      map[string]int
	idf        []float64
}

// NewVectorizer builds the vocabulary and inverse document frequencies
// from the given documents.
func NewVectorizer(documents []string) *Vectorizer {
	v := &Vectorizer{index: make(map[string]int)}

	documentFrequency := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]struct{})
		for _, term := range Tokenize(doc) {
			if _, ok := v.index[term]; !ok {
				v.index[term] = len(v.Vocabulary)
				v.Vocabulary = append(v.Vocabulary, term)
			}
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				documentFrequency[term]++
			}
		}
	}

	// smoothed idf, so terms present in every document still carry weight
	n := float64(len(documents))
	v.idf = make([]float64, len(v.Vocabulary))
	for term, i := range v.index {
		v.idf[i] = math.Log((1+n)/(1+float64(documentFrequency[term]))) + 1
	}
	return v
}

// Transform converts one document into an L2-normalized TF-IDF vector.
func (v *Vectorizer) Transform(document string) []float64 {
	vector := make([]float64, len(v.Vocabulary))
	terms := Tokenize(document)
	if len(terms) == 0 {
		return vector
	}

	counts := make(map[int]int)
	for _, term := range terms {
		if i, ok := v.index[term]; ok {
			counts[i]++
		}
	}
	for i, count := range counts {
		vector[i] = float64(count) / float64(len(terms)) * v.idf[i]
	}

	var norm float64
	for _, x := range vector {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vector {
			vector[i] /= norm
		}
	}
	return vector
}

// TransformAll converts every document into its vector.
func (v *Vectorizer) TransformAll(documents []string) [][]float64 {
	vectors := make([][]float64, len(documents))
	for i, doc := range documents {
		vectors[i] = v.Transform(doc)
	}
	return vectors
}

// TopTerms returns the n highest-weighted vocabulary terms of a vector,
// heaviest first. Ties break alphabetically so the output is stable.
func (v *Vectorizer) TopTerms(vector []float64, n int) []string {
	type weighted struct {
		term   string
		weight float64
	}

	terms := make([]weighted, 0, len(vector))
	for i, w := range vector {
		if w > 0 {
			terms = append(terms, weighted{term: v.Vocabulary[i], weight: w})
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].weight != terms[j].weight {
			return terms[i].weight > terms[j].weight
		}
		return terms[i].term < terms[j].term
	})

	if n > len(terms) {
		n = len(terms)
	}
	result := make([]string, n)
	for i := 0; i < n; i++ {
		result[i] = terms[i].term
	}
	return result
}
