package recoder

import (
	"fmt"
	"strings"
)

// SchemaViolation reports every required column missing from a batch.
type SchemaViolation struct {
	Fields []string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation: missing required columns %s", strings.Join(e.Fields, ", "))
}
