package recoder

import (
	"regexp"
	"strings"

	"github.com/spacesedan/evalflow/internal/models"
)

const (
	positiveMarker = "(p)"
	negativeMarker = "(n)"
)

var markerPattern = regexp.MustCompile(`\s*\([pn]\)`)

// Classify tags text by its polarity marker. The positive marker is checked
// first, so a text carrying both is positive.
func Classify(text string) models.SentimentTag {
	switch {
	case strings.Contains(text, positiveMarker):
		return models.SentimentPositive
	case strings.Contains(text, negativeMarker):
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// StripMarkers removes every marker together with the whitespace right
// before it. Text without markers comes back unchanged. Removal repeats until
// no marker is left, so "((p)p)" does not leave a new "(p)" behind.
func StripMarkers(text string) string {
	for hasMarker(text) {
		text = markerPattern.ReplaceAllString(text, "")
	}
	return text
}

func hasMarker(text string) bool {
	return strings.Contains(text, positiveMarker) || strings.Contains(text, negativeMarker)
}

// ParseObservation classifies first and strips second; stripping destroys
// the marker.
func ParseObservation(text string) models.Observation {
	return models.Observation{
		Tag:  Classify(text),
		Text: StripMarkers(text),
	}
}

// JoinObservations joins the non-blank texts, trimmed, with a single space.
func JoinObservations(texts ...string) string {
	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, " ")
}
