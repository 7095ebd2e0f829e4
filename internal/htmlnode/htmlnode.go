// Package htmlnode provides small constructors for building HTML node trees.
// Rendered text nodes are escaped by x/net/html on serialization, so card
// markup built through this package never interpolates raw strings.
package htmlnode

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element returns an element node for tag carrying the provided attributes.
func Element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// Text returns a text node for value.
func Text(value string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: value}
}

// Attr builds a single attribute.
func Attr(key, value string) html.Attribute {
	return html.Attribute{Key: key, Val: value}
}

// SetAttr sets key to value on n, replacing an existing attribute of the
// same name.
func SetAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}
