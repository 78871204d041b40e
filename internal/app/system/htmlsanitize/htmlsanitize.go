// Package htmlsanitize wraps the bluemonday policies used for
// author-supplied text.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans rich text (descriptions, page copy), keeping safe
// markup and stripping scripts, event handlers, and javascript: URLs.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Strip removes all markup. Use for plain-text fields like group and
// partition names, which must never carry HTML.
func Strip(s string) string {
	return strict.Sanitize(s)
}
