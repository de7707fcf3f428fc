package loader

import (
	"fmt"
	"log/slog"

	"github.com/spacesedan/evalflow/internal/models"
	"github.com/spacesedan/evalflow/internal/recoder"
)

// Evaluations recodes an evaluation sheet. A schema problem fails the whole
// table; the returned error wraps *recoder.SchemaViolation.
func Evaluations(t Table) ([]models.RecodedRecord, error) {
	records, err := recoder.RecodeBatch(t.Header, t.Rows)
	if err != nil {
		return nil, fmt.Errorf("[Loader] evaluation sheet rejected: %w", err)
	}
	slog.Debug("[Loader] Recoded evaluation sheet", slog.Int("records", len(records)))
	return records, nil
}
