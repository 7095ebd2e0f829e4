// Package testutil holds shared test helpers.
package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParseHTML parses the provided HTML payload into a goquery document for
// assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// RenderNode serializes a node tree for assertions against markup.
func RenderNode(t testing.TB, n *html.Node) string {
	t.Helper()

	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		t.Fatalf("render node: %v", err)
	}
	return b.String()
}

// Selection wraps a node tree in a goquery document rooted at the node so
// selector assertions can run against rendered cards.
func Selection(t testing.TB, n *html.Node) *goquery.Document {
	t.Helper()

	return ParseHTML(t, []byte(RenderNode(t, n)))
}
