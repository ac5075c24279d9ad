package metadata

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// underscoreWord matches the start of the name and every "_x" pair.
var underscoreWord = regexp.MustCompile(`(?:^|_)([a-z])`)

// wordBoundary matches a lower-case letter or digit followed by an upper-case one.
var wordBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// ShortName returns the class name after the last namespace separator.
func ShortName(fqcn string) string {
	if i := strings.LastIndex(fqcn, `\`); i >= 0 {
		return fqcn[i+1:]
	}
	return fqcn
}

// UpperFirst upper-cases the first letter and keeps the rest as is.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Title(language.Und, cases.NoLower).String(s[:size]) + s[size:]
}

// LowerFirst lower-cases the first letter and keeps the rest as is.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Lower(language.Und).String(s[:size]) + s[size:]
}

// Camelize turns created_at and createdAt into CreatedAt.
func Camelize(field string) string {
	return underscoreWord.ReplaceAllStringFunc(field, func(m string) string {
		return strings.ToUpper(strings.TrimPrefix(m, "_"))
	})
}

// Underscore lower-cases a namespaced name and joins its parts with
// underscores: Blog\Post and Blog/Post both become blog_post.
func Underscore(name string) string {
	return cases.Lower(language.Und).String(strings.NewReplacer(`\`, "_", "/", "_").Replace(name))
}

// Humanize turns a field name into a label: createdAt and created_at both
// become "Created at".
func Humanize(field string) string {
	spaced := wordBoundary.ReplaceAllString(field, "${1} ${2}")
	spaced = strings.Join(strings.Fields(strings.ReplaceAll(spaced, "_", " ")), " ")
	return UpperFirst(cases.Lower(language.Und).String(spaced))
}

// ParseShortcut splits Bundle:Entity notation. Slashes in the entity part
// are normalised to namespace separators.
func ParseShortcut(shortcut string) (bundle, entity string, err error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(shortcut), "/", `\`)
	pos := strings.Index(normalized, ":")
	if pos < 0 {
		return "", "", fmt.Errorf("%w: %q given", ErrInvalidShortcut, shortcut)
	}
	bundle, entity = normalized[:pos], normalized[pos+1:]
	if bundle == "" || entity == "" || !isIdentifierPath(entity) {
		return "", "", fmt.Errorf("%w: %q given", ErrInvalidShortcut, shortcut)
	}
	return bundle, entity, nil
}

// isIdentifierPath reports whether every namespace segment is a PHP identifier.
func isIdentifierPath(s string) bool {
	for _, part := range strings.Split(s, `\`) {
		if part == "" {
			return false
		}
		for i, r := range part {
			if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
				continue
			}
			return false
		}
	}
	return true
}
