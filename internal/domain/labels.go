package domain

import "strings"

var accentFolder = strings.NewReplacer(
	"í", "i",
	"ó", "o",
	"á", "a",
	"é", "e",
	"ú", "u",
)

// FoldLabel lower-cases, trims and strips the accents used by Spanish
// bank exports so that "Categoría " and "categoria" compare equal.
func FoldLabel(s string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
}
