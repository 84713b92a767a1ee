package sentiment

import (
	"context"
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/kiranshivaraju/sentilytics/internal/textclean"
)

var (
	reMarkdownLink = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	reURL          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	reHTMLTag      = regexp.MustCompile(`<[^>]*>`)
)

// VADER scores text with the lexicon-and-rule based VADER model. Compound
// scores inside (-band, band) are NEUTRAL.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
	band     float64
}

func NewVADER(neutralBand float64) *VADER {
	return &VADER{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		band:     neutralBand,
	}
}

func (v *VADER) Name() string { return "vader" }

func (v *VADER) Score(ctx context.Context, texts []string) ([]Score, error) {
	out := make([]Score, len(texts))
	for i, text := range texts {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out[i] = v.classify(v.analyzer.PolarityScores(PlainText(text)).Compound)
	}
	return out, nil
}

func (v *VADER) classify(compound float64) Score {
	magnitude := math.Abs(compound)
	switch {
	case compound >= v.band && compound > 0:
		return Score{Label: LabelPositive, Confidence: (1 + magnitude) / 2}
	case compound <= -v.band && compound < 0:
		return Score{Label: LabelNegative, Confidence: (1 + magnitude) / 2}
	default:
		return Score{Label: LabelNeutral, Confidence: 1 - magnitude}
	}
}

// PlainText renders markdown to text and drops links, keeping link labels.
func PlainText(input string) string {
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	text := html.UnescapeString(reHTMLTag.ReplaceAllString(string(rendered), " "))
	text = reMarkdownLink.ReplaceAllString(text, "$1")
	text = reURL.ReplaceAllString(text, "")
	return strings.Join(strings.FieldsFunc(text, textclean.IsSpace), " ")
}
