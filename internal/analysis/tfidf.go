package analysis

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when no document yields a token.
var ErrEmptyVocabulary = errors.New("empty vocabulary; perhaps the documents only contain stop words")

var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// feature is one non-zero entry of a sparse row.
type feature struct {
	index int
	value float64
}

type sparseRow []feature

func (r sparseRow) dot(w []float64) float64 {
	var z float64
	for _, f := range r {
		z += f.value * w[f.index]
	}
	return z
}

// tfidf holds a fitted vocabulary and its smoothed inverse document
// frequencies.
type tfidf struct {
	maxFeatures int
	vocabulary  map[string]int
	idf         []float64
}

func newTFIDF(maxFeatures int) *tfidf {
	return &tfidf{maxFeatures: maxFeatures}
}

func analyze(doc string) []string {
	return tokenPattern.FindAllString(strings.ToLower(doc), -1)
}

// fitTransform learns the vocabulary of docs, keeping the maxFeatures terms
// with the highest corpus frequency (ties alphabetical), and returns the
// L2-normalized tf-idf rows.
func (v *tfidf) fitTransform(docs []string) ([]sparseRow, error) {
	tokenized := make([][]string, len(docs))
	termFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for i, d := range docs {
		tokens := analyze(d)
		tokenized[i] = tokens
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			termFreq[tok]++
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}
	if len(termFreq) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(termFreq))
	for term := range termFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		sort.SliceStable(terms, func(i, j int) bool {
			return termFreq[terms[i]] > termFreq[terms[j]]
		})
		terms = terms[:v.maxFeatures]
		sort.Strings(terms)
	}

	n := float64(len(docs))
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	rows := make([]sparseRow, len(docs))
	for i, tokens := range tokenized {
		rows[i] = v.transform(tokens)
	}
	return rows, nil
}

func (v *tfidf) transform(tokens []string) sparseRow {
	counts := make(map[int]int)
	for _, tok := range tokens {
		if idx, ok := v.vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	row := make(sparseRow, 0, len(counts))
	var norm float64
	for idx, c := range counts {
		val := float64(c) * v.idf[idx]
		norm += val * val
		row = append(row, feature{index: idx, value: val})
	}
	sort.Slice(row, func(i, j int) bool { return row[i].index < row[j].index })
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range row {
			row[i].value /= norm
		}
	}
	return row
}

func (v *tfidf) numFeatures() int { return len(v.idf) }
