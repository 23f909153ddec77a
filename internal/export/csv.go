// Package export serializes already-decoded case records for download.
//
// The CSV shape is a fixed contract: deterministic column order, every cell
// quoted, embedded quotes doubled, rows newest-first. encoding/csv quotes
// only when necessary, so the cells are quoted by hand here to keep the
// output byte-compatible with existing consumers.
package export

import (
	"os"
	"strings"

	"github.com/cjmtools/caseintake/internal/common"
	"github.com/cjmtools/caseintake/internal/models"
)

var csvHeaders = []string{"Name", "Case No", "Crime No", "Forward Date", "Note"}

func csvCell(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// CSV renders records as CSV bytes, sorted by CreatedAt descending. The
// input slice is not modified.
func CSV(records []models.CaseRecord) []byte {
	sorted := make([]models.CaseRecord, len(records))
	copy(sorted, records)
	models.SortNewestFirst(sorted)

	var b strings.Builder
	b.WriteString(strings.Join(csvHeaders, ","))
	b.WriteByte('\n')

	for _, r := range sorted {
		row := []string{
			csvCell(r.Name),
			csvCell(r.CaseNumber),
			csvCell(models.TextOr(r.CrimeNumber)),
			csvCell(models.TextOr(r.ForwardDate)),
			csvCell(r.ManualNote),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	return []byte(b.String())
}

// WriteCSVFile writes the CSV export to path. An empty path falls back to
// the canonical download name in the current directory.
func WriteCSVFile(path string, records []models.CaseRecord) error {
	if path == "" {
		path = common.CSVExportFileName
	}
	return os.WriteFile(path, CSV(records), 0o644)
}
