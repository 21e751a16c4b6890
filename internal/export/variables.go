package export

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}|\{([A-Za-z0-9_.-]+)\}`)
	artistTagRe   = regexp.MustCompile(`@([a-z0-9]+(?:-[a-z0-9]+)*)`)

	whitespaceRe = regexp.MustCompile(`\s+`)
	slugStripRe  = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)
)

// ReplaceVariables substitutes {name} and {{name}} placeholders in a single
// pass. Placeholders without a value are left untouched. Applying it twice
// gives the same result only when no value contains a placeholder itself.
func ReplaceVariables(text string, variables map[string]string) string {
	if len(variables) == 0 || !strings.Contains(text, "{") {
		return text
	}
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		sub := placeholderRe.FindStringSubmatch(match)
		name := sub[1]
		if name == "" {
			name = sub[2]
		}
		if value, ok := variables[name]; ok {
			return value
		}
		return match
	})
}

// ReplaceArtistTags swaps @slug references for the description stored under
// either "slug" or "@slug". Unknown tags are left untouched.
func ReplaceArtistTags(text string, descriptions map[string]string) string {
	if len(descriptions) == 0 || !strings.Contains(text, "@") {
		return text
	}
	return artistTagRe.ReplaceAllStringFunc(text, func(tag string) string {
		if value, ok := descriptions[tag]; ok {
			return value
		}
		if value, ok := descriptions[tag[1:]]; ok {
			return value
		}
		return tag
	})
}

// CreateArtistTag turns a display name into an @slug reference, e.g.
// "Zoë O'Brien" becomes "@zoe-obrien". It returns "" when nothing usable is
// left of the name.
func CreateArtistTag(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}

	slug := strings.ToLower(strings.TrimSpace(folded))
	slug = whitespaceRe.ReplaceAllString(slug, "-")
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = hyphenRunRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return ""
	}
	return "@" + slug
}
