package titles

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// newMarkerPattern strips trailing "new" decorations such as "(NEW)", "- new",
// or the superscript form once NFKD has folded it to plain letters.
var newMarkerPattern = regexp.MustCompile(`(?i)[\s\-–]*\(?new\)?$`)

// whitespacePattern collapses runs of whitespace left over after stripping.
var whitespacePattern = regexp.MustCompile(`\s{2,}`)

// Normalize canonicalizes a raw programme title. NFKD folds compatibility
// characters (ᴺᵉʷ becomes New), trailing new-episode markers are removed, and
// embedded newlines and duplicate spaces are collapsed.
func Normalize(title string) string {
	title = norm.NFKD.String(title)
	title = newMarkerPattern.ReplaceAllString(title, "")
	title = strings.ReplaceAll(title, "\n", " ")
	title = strings.TrimSpace(title)
	title = whitespacePattern.ReplaceAllString(title, " ")
	return title
}

// Key returns the cache key for a title: normalized and case-folded.
func Key(title string) string {
	return strings.ToLower(Normalize(title))
}
