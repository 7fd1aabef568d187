package prospecting

import "strings"

type metadataField int

const (
	fieldUnknown metadataField = iota
	fieldMinValue
	fieldMaxValue
	fieldRegion
	fieldDebtNature
	fieldReferenceDate
)

// classifyLabel maps a preamble label onto exactly one metadata field. The
// min and max classes are disjoint: a label that looks like both is ignored.
func classifyLabel(label string) metadataField {
	l := foldLabel(label)
	if l == "" {
		return fieldUnknown
	}

	if strings.Contains(l, "valor") {
		isMax := strings.Contains(l, "max") || strings.Contains(l, "ximo")
		isMin := strings.Contains(l, "min") || strings.Contains(l, "nimo")
		switch {
		case isMin && !isMax:
			return fieldMinValue
		case isMax && !isMin:
			return fieldMaxValue
		}
		return fieldUnknown
	}

	switch {
	case l == "uf", strings.Contains(l, "estado"), strings.Contains(l, "regiao"), strings.Contains(l, "unidadefederativa"):
		return fieldRegion
	case strings.Contains(l, "natureza"):
		return fieldDebtNature
	case strings.Contains(l, "data"):
		return fieldReferenceDate
	}
	return fieldUnknown
}
