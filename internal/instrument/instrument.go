// Package instrument transfers universal editor instrumentation attributes
// from authored block markup to rendered elements so the page stays editable
// after decoration.
package instrument

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jansaniel95/jan-eds-training/internal/htmlnode"
)

// Attribute prefixes recognised as editor instrumentation.
var prefixes = []string{"data-aue-", "data-richtext-"}

// Move copies instrumentation attributes from the first element of src onto
// dst and removes them from src. Elements without instrumentation are left
// untouched.
func Move(src *goquery.Selection, dst *html.Node) {
	if src == nil || dst == nil || len(src.Nodes) == 0 {
		return
	}
	attrs := append([]html.Attribute(nil), src.Nodes[0].Attr...)
	for _, a := range attrs {
		if !instrumented(a.Key) {
			continue
		}
		htmlnode.SetAttr(dst, a.Key, a.Val)
		src.RemoveAttr(a.Key)
	}
}

func instrumented(key string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
