package analytics

import (
	"sort"
	"strings"

	"github.com/spacesedan/evalflow/internal/models"
)

// FilterByProgram keeps the records whose program is selected. An empty
// selection keeps everything.
func FilterByProgram(records []models.RecodedRecord, programs []string) []models.RecodedRecord {
	if len(programs) == 0 {
		return records
	}
	selected := make(map[string]bool, len(programs))
	for _, p := range programs {
		selected[p] = true
	}

	out := make([]models.RecodedRecord, 0, len(records))
	for _, r := range records {
		if selected[r.Source.Program] {
			out = append(out, r)
		}
	}
	return out
}

// Programs returns the distinct non-empty programs, sorted.
func Programs(records []models.RecodedRecord) []string {
	return distinct(records, func(r models.RecodedRecord) string { return r.Source.Program })
}

// Students returns the distinct "name - email" values, sorted.
func Students(records []models.RecodedRecord) []string {
	return distinct(records, func(r models.RecodedRecord) string { return r.Source.NameEmail })
}

// FindStudent returns the first record for a student.
func FindStudent(records []models.RecodedRecord, nameEmail string) (models.RecodedRecord, bool) {
	for _, r := range records {
		if r.Source.NameEmail == nameEmail {
			return r, true
		}
	}
	return models.RecodedRecord{}, false
}

// DisplayName drops the e-mail part of "name - email".
func DisplayName(nameEmail string) string {
	name, _, _ := strings.Cut(nameEmail, " - ")
	return strings.TrimSpace(name)
}

func distinct(records []models.RecodedRecord, key func(models.RecodedRecord) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
