package analysis

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kiranshivaraju/sentilytics/internal/textclean"
)

// TopFeedbackClusters bounds the recurring-complaint list.
const TopFeedbackClusters = 5

var (
	reURL        = regexp.MustCompile(`https?://\S+`)
	reEmail      = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.]+`)
	reUUID       = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
	reNumber     = regexp.MustCompile(`\d+([.,]\d+)*`)
	rePunctTail  = regexp.MustCompile(`[!?.]+$`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// FeedbackCluster groups texts that differ only in identifiers, numbers,
// case or trailing punctuation.
type FeedbackCluster struct {
	Fingerprint string `json:"fingerprint"`
	Count       int    `json:"count"`
	Sample      string `json:"sample"`
}

// Cluster groups texts by Fingerprint. Clusters are sorted by count
// descending, then by first appearance. Empty texts are ignored.
func Cluster(texts []string) []FeedbackCluster {
	type state struct {
		cluster FeedbackCluster
		first   int
	}
	groups := make(map[string]*state)
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		fp := Fingerprint(text)
		st, ok := groups[fp]
		if !ok {
			st = &state{
				cluster: FeedbackCluster{Fingerprint: fp, Sample: truncateString(textclean.Clean(text), 280)},
				first:   i,
			}
			groups[fp] = st
		}
		st.cluster.Count++
	}

	states := make([]*state, 0, len(groups))
	for _, st := range groups {
		states = append(states, st)
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].cluster.Count != states[j].cluster.Count {
			return states[i].cluster.Count > states[j].cluster.Count
		}
		return states[i].first < states[j].first
	})

	out := make([]FeedbackCluster, len(states))
	for i, st := range states {
		out[i] = st.cluster
	}
	return out
}

// Fingerprint computes a stable SHA-256 fingerprint of a normalized text.
func Fingerprint(text string) string {
	hash := sha256.Sum256([]byte(NormalizeFeedback(text)))
	return fmt.Sprintf("%x", hash)
}

// NormalizeFeedback masks the volatile parts of a text.
func NormalizeFeedback(text string) string {
	text = textclean.Clean(text)
	text = reURL.ReplaceAllString(text, "URL")
	text = reEmail.ReplaceAllString(text, "EMAIL")
	text = reUUID.ReplaceAllString(text, "UUID")
	text = reNumber.ReplaceAllString(text, "N")
	text = reWhitespace.ReplaceAllString(text, " ")
	text = strings.ToLower(strings.TrimSpace(text))
	text = rePunctTail.ReplaceAllString(text, "")
	return truncateString(text, 500)
}

// truncateString truncates s to maxBytes without splitting UTF-8 runes.
func truncateString(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
