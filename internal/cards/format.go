package cards

import (
	stdhtml "html"
	"strings"

	"golang.org/x/net/html"

	"github.com/jansaniel95/jan-eds-training/internal/htmlnode"
)

// appendFormatted appends fetched plaintext to parent as inline nodes: one
// entity unescape pass, then line breaks become <br> elements. Text lands in
// text nodes, so serialization re-escapes anything markup-shaped.
func appendFormatted(parent *html.Node, plain string) {
	plain = stdhtml.UnescapeString(plain)
	plain = strings.ReplaceAll(plain, "\r\n", "\n")
	for i, line := range strings.Split(plain, "\n") {
		if i > 0 {
			parent.AppendChild(htmlnode.Element("br"))
		}
		if line != "" {
			parent.AppendChild(htmlnode.Text(line))
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
