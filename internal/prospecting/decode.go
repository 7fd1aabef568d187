package prospecting

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode returns the file contents as UTF-8. Spreadsheet exports from the
// registry portal are often Windows-1252, so anything that is not valid
// UTF-8 is decoded from that code page.
func Decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// repairMojibake undoes UTF-8 text that was read as Latin-1 once, e.g.
// "MÃ­nimo" back to "Mínimo". Text that does not round-trip is returned as is.
func repairMojibake(s string) string {
	if !strings.ContainsAny(s, "ÃÂ") {
		return s
	}
	latin1, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(latin1) {
		return s
	}
	return latin1
}

// foldLabel reduces a label to lower-case ASCII letters and digits with
// accents removed, so "Região", "REGIAO" and "Região " all become "regiao".
func foldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, repairMojibake(s))
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
