package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var folder = cases.Fold()

// Title folds case and collapses whitespace so "the  GODFATHER " and
// "The Godfather" hit the same cache key.
func Title(s string) string {
	return folder.String(strings.Join(strings.Fields(s), " "))
}

var titler = cases.Title(language.English)

// Display renders a stored title for places that print user input back,
// e.g. bot replies.
func Display(s string) string {
	return titler.String(strings.Join(strings.Fields(s), " "))
}
