package recoder

import (
	"strings"

	"github.com/spacesedan/evalflow/internal/models"
)

// RequiredColumns lists the columns every evaluation batch must carry.
func RequiredColumns() []string {
	cols := make([]string, 0, 2*models.ResultFields)
	cols = append(cols, models.ResultColumns[:]...)
	cols = append(cols, models.ObservationColumns[:]...)
	return cols
}

// CheckSchema fails once for the whole batch, naming every missing column.
func CheckSchema(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, col := range RequiredColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaViolation{Fields: missing}
	}
	return nil
}

// Recode derives scores, tagged observations and the joined observation text.
// The input record is copied, never modified.
func Recode(rec models.EvaluationRecord) models.RecodedRecord {
	out := models.RecodedRecord{Source: rec}

	for i := 0; i < models.ResultFields; i++ {
		out.Scores[i] = scoreOf(rec.Results[i])
		out.Observations[i] = ParseObservation(rec.Observations[i])
	}
	cleaned := out.Cleaned()
	out.FullObservation = JoinObservations(cleaned[:]...)

	return out
}

// Records turns a header and its rows into evaluation records. Rows shorter
// than the header read the missing cells as empty.
func Records(header []string, rows [][]string) ([]models.EvaluationRecord, error) {
	if err := CheckSchema(header); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]models.EvaluationRecord, 0, len(rows))
	for _, row := range rows {
		rec := models.EvaluationRecord{
			Key:       strings.TrimSpace(cell(row, models.ColumnKey)),
			NameEmail: strings.TrimSpace(cell(row, models.ColumnNameEmail)),
			Program:   strings.TrimSpace(cell(row, models.ColumnProgram)),
		}
		for i := 0; i < models.ResultFields; i++ {
			rec.Results[i] = strings.TrimSpace(cell(row, models.ResultColumns[i]))
			rec.Observations[i] = cell(row, models.ObservationColumns[i])
		}
		records = append(records, rec)
	}
	return records, nil
}

// RecodeBatch checks the schema once and recodes every row.
func RecodeBatch(header []string, rows [][]string) ([]models.RecodedRecord, error) {
	records, err := Records(header, rows)
	if err != nil {
		return nil, err
	}

	out := make([]models.RecodedRecord, len(records))
	for i, rec := range records {
		out[i] = Recode(rec)
	}
	return out, nil
}
