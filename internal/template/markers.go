package template

import (
	"regexp"
	"strings"

	"golang.org/x/net/html/atom"
)

var markerPattern = regexp.MustCompile(`<([A-Za-z_][A-Za-z0-9_]*)>`)

// isMarkup reports whether a skeleton id names HTML or XML output, where
// element tags share the marker syntax.
func isMarkup(id string) bool {
	return strings.Contains(id, ".html") || strings.HasSuffix(id, ".xml")
}

// Leftovers returns the distinct markers still present in text, in order of
// first appearance. With markup set, a name is treated as an element, not
// a marker, when it is a void HTML element or its closing tag also appears.
func Leftovers(text string, markup bool) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range markerPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		if markup && isElement(text, name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// voidElements never carry a closing tag.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

func isElement(text, name string) bool {
	if voidElements[atom.Lookup([]byte(strings.ToLower(name)))] {
		return true
	}
	return strings.Contains(text, "</"+name+">")
}
