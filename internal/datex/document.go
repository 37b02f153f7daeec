package datex

import (
	"strings"

	"github.com/beevik/etree"
)

// The DGT publications are inconsistent about namespaces: the same feed has
// been observed with prefixed tags, a default namespace, and none at all.
// All matching below therefore compares local tag names only, via an
// explicit walk rather than a path query.

// findAll returns every descendant of el whose local tag name equals name,
// in document order. el itself is never included.
func findAll(el *etree.Element, name string) []*etree.Element {
	var found []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == name {
			found = append(found, child)
		}
		found = append(found, findAll(child, name)...)
	}

	return found
}

// findChild returns the first direct child of el with the given local tag
// name, or nil.
func findChild(el *etree.Element, name string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == name {
			return child
		}
	}

	return nil
}

// text concatenates all character data nested anywhere under el and trims
// surrounding whitespace, mirroring how multilingual DATEX II value blocks
// split a single name across nested elements.
func text(el *etree.Element) string {
	var sb strings.Builder
	collectText(el, &sb)
	return strings.TrimSpace(sb.String())
}

func collectText(el *etree.Element, sb *strings.Builder) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			collectText(t, sb)
		}
	}
}
