package analysis

import (
	"sort"

	"github.com/kiranshivaraju/sentilytics/internal/textclean"
)

type termCount struct {
	term  string
	count int
	first int
}

// mostCommon returns the n most frequent items; ties keep first-seen order.
func mostCommon(items []string, n int) []termCount {
	index := make(map[string]int)
	var counts []termCount
	for _, it := range items {
		if i, ok := index[it]; ok {
			counts[i].count++
			continue
		}
		index[it] = len(counts)
		counts = append(counts, termCount{term: it, count: 1, first: len(counts)})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// tallyLabels counts labels in first-seen order.
func tallyLabels(labels []string) LabelCounts {
	out := LabelCounts{}
	index := make(map[string]int)
	for _, l := range labels {
		if i, ok := index[l]; ok {
			out[i].Count++
			continue
		}
		index[l] = len(out)
		out = append(out, LabelCount{Label: l, Count: 1})
	}
	return out
}

func tokenizeAll(texts []string) []string {
	var tokens []string
	for _, t := range texts {
		tokens = append(tokens, textclean.Tokenize(t)...)
	}
	return tokens
}

func countLabel(labels []string, label string) int {
	n := 0
	for _, l := range labels {
		if l == label {
			n++
		}
	}
	return n
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
