package analytics

import (
	"github.com/spacesedan/evalflow/internal/models"
	"github.com/spacesedan/evalflow/internal/sentiment"
)

// CompareLexical checks the marker tag of every tagged observation against the
// VADER label of its cleaned text. The marker tag stays authoritative; this
// only reports how often the two agree.
func CompareLexical(records []models.RecodedRecord) models.LexicalAgreement {
	var agg models.LexicalAgreement
	for _, r := range records {
		for _, o := range r.Observations {
			if o.Tag == models.SentimentNeutral {
				continue
			}
			agg.Compared++
			if _, lexical := sentiment.Score(o.Text); lexical == o.Tag {
				agg.Agreed++
			}
		}
	}
	if agg.Compared > 0 {
		rate := float64(agg.Agreed) / float64(agg.Compared)
		agg.Rate = &rate
	}
	return agg
}
