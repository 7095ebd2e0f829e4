// Package pictures builds responsive <picture> markup for authored image
// references, mirroring the delivery pipeline's width/format/optimize
// query parameters.
package pictures

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/jansaniel95/jan-eds-training/internal/htmlnode"
)

// Breakpoint pairs an optional media query with a rendition width.
type Breakpoint struct {
	Media string
	Width int
}

// DefaultBreakpoints serve a wide rendition on larger viewports and a
// smaller one everywhere else.
var DefaultBreakpoints = []Breakpoint{
	{Media: "(min-width: 600px)", Width: 2000},
	{Width: 750},
}

// Create builds a <picture> with one webp <source> per breakpoint, fallback
// <source> elements in the original format, and a final <img> carrying the
// last breakpoint's rendition. A src that cannot be parsed as a URL degrades
// to a plain <img>.
func Create(src, alt string, eager bool, breakpoints []Breakpoint) *html.Node {
	if len(breakpoints) == 0 {
		breakpoints = DefaultBreakpoints
	}

	u, err := url.Parse(strings.TrimSpace(src))
	if err != nil || u.Path == "" {
		return img(src, alt, eager)
	}
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")

	picture := htmlnode.Element("picture")
	for _, bp := range breakpoints {
		source := htmlnode.Element("source", htmlnode.Attr("type", "image/webp"))
		if bp.Media != "" {
			htmlnode.SetAttr(source, "media", bp.Media)
		}
		htmlnode.SetAttr(source, "srcset", renditionURL(u, bp.Width, "webply"))
		picture.AppendChild(source)
	}
	for i, bp := range breakpoints {
		if i < len(breakpoints)-1 {
			source := htmlnode.Element("source")
			if bp.Media != "" {
				htmlnode.SetAttr(source, "media", bp.Media)
			}
			htmlnode.SetAttr(source, "srcset", renditionURL(u, bp.Width, ext))
			picture.AppendChild(source)
			continue
		}
		picture.AppendChild(img(renditionURL(u, bp.Width, ext), alt, eager))
	}
	return picture
}

func img(src, alt string, eager bool) *html.Node {
	loading := "lazy"
	if eager {
		loading = "eager"
	}
	return htmlnode.Element("img",
		htmlnode.Attr("loading", loading),
		htmlnode.Attr("alt", alt),
		htmlnode.Attr("src", src),
	)
}

func renditionURL(u *url.URL, width int, format string) string {
	q := url.Values{}
	q.Set("width", strconv.Itoa(width))
	if format != "" {
		q.Set("format", format)
	}
	q.Set("optimize", "medium")

	rendition := *u
	rendition.RawQuery = q.Encode()
	rendition.Fragment = ""
	return rendition.String()
}
