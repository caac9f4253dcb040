package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugSeparator joins the alphanumeric runs of a slug.
const slugSeparator = '_'

// Slugify normalizes a raw provider name into a stable identifier.
// Accents are folded to ASCII, letters lower-cased, and every run of
// other characters collapsed to a single underscore.
//
//	Slugify("Sentinel Hub (EU)") == "sentinel_hub_eu"
//	Slugify("théia-land")        == "theia_land"
func Slugify(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), name)
	if err != nil {
		folded = name
	}

	var builder strings.Builder

	builder.Grow(len(folded))

	pending := false

	for _, r := range folded {
		if r > unicode.MaxASCII {
			continue
		}

		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && builder.Len() > 0 {
				builder.WriteRune(slugSeparator)
			}

			pending = false

			builder.WriteRune(unicode.ToLower(r))

			continue
		}

		pending = true
	}

	return builder.String()
}
