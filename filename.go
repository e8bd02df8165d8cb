package carte

import (
	"strings"
	"unicode"

	"github.com/dendoesit/carte/internal/textnorm"
)

// FilenameSuffix ends every generated file name.
const FilenameSuffix = "-cartea-tehnica.pdf"

// OutputFilename returns the file name of a record's dossier: the project
// name lowercased, diacritics removed and whitespace runs replaced by "-",
// followed by FilenameSuffix. Path separators and other characters unsafe
// in file names are dropped. An empty name yields "proiect".
func OutputFilename(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(textnorm.Normalize(name)) {
		switch {
		case unicode.IsSpace(r):
			dash = b.Len() > 0
		case r == '-' || r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash {
				b.WriteByte('-')
				dash = false
			}
			b.WriteRune(r)
		}
	}

	base := strings.Trim(b.String(), ".")
	if base == "" {
		base = "proiect"
	}
	return base + FilenameSuffix
}
