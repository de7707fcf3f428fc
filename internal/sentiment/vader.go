package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/evalflow/internal/models"
)

const labelThreshold = 0.20

var (
	analyzer = govader.NewSentimentIntensityAnalyzer()

	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and drops the resulting HTML tags,
// collapsing whitespace.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(RemoveLinks(input)), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(output), " ")
	return strings.Join(strings.Fields(plain), " ")
}

// Score returns the VADER compound score of an observation and the tag it
// maps to. Observation text is expected to be marker-free already.
func Score(text string) (float64, models.SentimentTag) {
	plain := ConvertMarkdownToText(text)
	if plain == "" {
		return 0, models.SentimentNeutral
	}

	score := analyzer.PolarityScores(plain).Compound

	switch {
	case score >= labelThreshold:
		return score, models.SentimentPositive
	case score <= -labelThreshold:
		return score, models.SentimentNegative
	default:
		return score, models.SentimentNeutral
	}
}
