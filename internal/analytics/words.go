package analytics

import (
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spacesedan/evalflow/internal/models"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}']+`)

var stopwords = toSet(
	// es
	"a", "al", "algo", "como", "con", "de", "del", "el", "ella", "en", "es", "esta", "este",
	"ha", "la", "las", "le", "lo", "los", "más", "mas", "me", "muy", "no", "o", "para", "pero",
	"por", "que", "se", "sin", "su", "sus", "un", "una", "y", "ya",
	// en
	"and", "are", "as", "at", "be", "but", "for", "has", "have", "in", "is", "it", "of", "on",
	"or", "the", "to", "was", "with",
)

// ObservationTexts collects the joined observation text of every record.
func ObservationTexts(records []models.RecodedRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		if r.FullObservation != "" {
			out = append(out, r.FullObservation)
		}
	}
	return out
}

// WordFrequencies counts lower-cased words of two or more characters across
// texts, skipping stopwords. The most frequent come first; ties are broken
// alphabetically. A limit of zero or less returns everything.
func WordFrequencies(texts []string, limit int) []models.WordCount {
	lower := cases.Lower(language.Spanish)
	counts := make(map[string]int)
	for _, text := range texts {
		for _, w := range wordPattern.FindAllString(lower.String(text), -1) {
			if stopwords[w] {
				continue
			}
			counts[w]++
		}
	}

	out := make([]models.WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, models.WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
