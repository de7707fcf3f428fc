package report

import (
	"io"
	"strconv"

	"github.com/spacesedan/evalflow/internal/analytics"
	"github.com/spacesedan/evalflow/internal/models"
)

func ScoreStats(w io.Writer, stats [models.ResultFields]models.ScoreStats) {
	table := newTable(w, "Field", "Count", "Missing", "Mean", "Std", "Min", "25%", "50%", "75%", "Max")
	for i, st := range stats {
		row := []string{models.ResultColumns[i], count(st.Count), count(st.Missing)}
		if st.Insufficient {
			row = append(row, "insufficient data", "", "", "", "", "", "")
		} else {
			row = append(row,
				number(st.Mean), number(st.Std), number(st.Min),
				number(st.P25), number(st.Median), number(st.P75), number(st.Max))
		}
		table.Append(row)
	}
	table.Render()
}

func Distribution(w io.Writer, field string, counts []models.LabelCount) {
	Title(w, "Distribution of %s", field)
	table := newTable(w, "Label", "Count")
	for _, c := range counts {
		table.Append([]string{c.Label, count(c.Count)})
	}
	table.Render()
}

func Sentiment(w io.Writer, summary models.SentimentSummary, lexical models.LexicalAgreement) {
	Title(w, "Tagged observations")
	table := newTable(w, "Positive", "Negative", "Positive rate")
	table.Append([]string{count(summary.Positive), count(summary.Negative), percent(summary.PositiveRate)})
	table.Render()

	Note(w, "Lexical agreement: %d of %d (%s)", lexical.Agreed, lexical.Compared, percent(lexical.Rate))
}

func CrossTab(w io.Writer, field string, rows []models.CrossTabRow) {
	Title(w, "%s by tagged sentiment", field)
	table := newTable(w, "Label", "Positive", "Negative")
	for _, r := range rows {
		table.Append([]string{r.Label, count(r.Positive), count(r.Negative)})
	}
	table.Render()
}

// Comparison prints one row per key and one column per field.
func Comparison(w io.Writer, title string, fields []models.FieldComparison, keys []string) {
	Title(w, "%s", title)
	header := []string{""}
	for _, f := range fields {
		header = append(header, f.Field)
	}
	table := newTable(w, header...)
	for _, k := range keys {
		row := []string{k}
		for _, f := range fields {
			row = append(row, count(f.Counts[k]))
		}
		table.Append(row)
	}
	table.Render()
}

func Words(w io.Writer, words []models.WordCount) {
	Title(w, "Most frequent words")
	if len(words) == 0 {
		Warn(w, "No observations to count")
		return
	}
	table := newTable(w, "#", "Word", "Count")
	for i, wc := range words {
		table.Append([]string{strconv.Itoa(i + 1), wc.Word, count(wc.Count)})
	}
	table.Render()
}

func Student(w io.Writer, rec models.RecodedRecord) {
	Title(w, "%s (%s)", analytics.DisplayName(rec.Source.NameEmail), rec.Source.Program)
	table := newTable(w, "Field", "Result", "Score", "Observation", "Tag")
	for i := 0; i < models.ResultFields; i++ {
		score := "-"
		if s := rec.Scores[i]; s != nil {
			score = strconv.Itoa(*s)
		}
		obs := rec.Observations[i]
		table.Append([]string{
			models.ResultColumns[i],
			rec.Source.Results[i],
			score,
			obs.Text,
			string(obs.Tag),
		})
	}
	table.Render()
	if rec.FullObservation != "" {
		Note(w, "%s", rec.FullObservation)
	}
}
