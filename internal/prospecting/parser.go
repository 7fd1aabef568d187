package prospecting

import (
	"fmt"
	"strings"
	"time"

	"github.com/farxc/carteira-devedores/internal/store"
)

// MinFields is the number of positional columns a data row must carry.
const MinFields = 5

var taxIDMarkers = []string{"CNPJ", "CPF"}

const fieldCutset = "\"' \t\u00a0"

// Parse splits the metadata preamble from the ';' delimited body. It never
// fails on data shape: short rows are skipped and counted, and text without
// a header line yields metadata with no records.
func Parse(raw string, importedAt time.Time) (store.ImportMetadata, []store.DebtorRecord) {
	meta := store.ImportMetadata{ImportedAt: importedAt}
	lines := strings.Split(strings.TrimPrefix(raw, "\ufeff"), "\n")

	header := -1
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if isHeader(line) {
			header = i
			break
		}
		applyMetadataLine(&meta, line)
	}

	records := []store.DebtorRecord{}
	if header < 0 {
		return meta, records
	}

	for i := header + 1; i < len(lines); i++ {
		line := strings.TrimSpace(strings.TrimRight(lines[i], "\r"))
		if line == "" {
			continue
		}

		fields := splitRow(line)
		if isEmptyRow(fields) {
			continue
		}
		if len(fields) < MinFields {
			meta.SkippedRows++
			continue
		}

		records = append(records, store.DebtorRecord{
			ID:                 fmt.Sprintf("%d-%d", importedAt.UnixMilli(), i),
			TaxID:              fields[0],
			Name:               fields[1],
			TradeName:          fields[2],
			TotalDebtAmount:    fields[3],
			SelectedDebtAmount: fields[4],
		})
	}

	meta.RowCount = len(records)
	return meta, records
}

// isHeader looks for the column header: a ';' line with at least two
// non-empty cells, one of which names the tax id column. The cell count keeps
// a preamble line such as "Tipo: CNPJ;;;" from ending the preamble.
func isHeader(line string) bool {
	if !strings.Contains(line, ";") {
		return false
	}

	cells, marked := 0, false
	for _, f := range splitRow(line) {
		if f == "" {
			continue
		}
		cells++
		upper := strings.ToUpper(f)
		for _, marker := range taxIDMarkers {
			if strings.Contains(upper, marker) {
				marked = true
			}
		}
	}
	return marked && cells >= 2
}

func applyMetadataLine(meta *store.ImportMetadata, line string) {
	label, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	value = cleanValue(value)

	switch classifyLabel(strings.Trim(label, fieldCutset)) {
	case fieldMinValue:
		meta.MinValue = value
	case fieldMaxValue:
		meta.MaxValue = value
	case fieldRegion:
		meta.Region = value
	case fieldDebtNature:
		meta.DebtNature = value
	case fieldReferenceDate:
		meta.ReferenceDate = value
	}
}

func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimRight(v, "; ")
	return strings.Trim(v, fieldCutset)
}

func splitRow(line string) []string {
	fields := strings.Split(line, ";")
	for i, f := range fields {
		fields[i] = strings.Trim(f, fieldCutset)
	}
	return fields
}

func isEmptyRow(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}
