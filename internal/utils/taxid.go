package utils

import "strings"

// DigitsOnly strips every non-digit from a CNPJ/CPF so that "12.345.678/0001-90"
// and "12345678000190" compare equal.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatTaxID applies the CNPJ (14 digits) or CPF (11 digits) mask. Other
// lengths are returned as digits only.
func FormatTaxID(s string) string {
	d := DigitsOnly(s)
	switch len(d) {
	case 14:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	case 11:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	default:
		return d
	}
}
