// Package cards renders one product card per parsed block item. Rendering
// never fails: items without a record degrade to a fallback card.
package cards

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/jansaniel95/jan-eds-training/internal/fragments"
	"github.com/jansaniel95/jan-eds-training/internal/htmlnode"
	"github.com/jansaniel95/jan-eds-training/internal/pictures"
)

// FallbackNotice is shown on cards whose record could not be loaded.
const FallbackNotice = "Product data not available."

const defaultTitle = "Product"

// Renderer builds card list items for one block variant.
type Renderer struct {
	variant Variant
	logger  *zap.Logger
}

// NewRenderer constructs a Renderer for the variant.
func NewRenderer(variant Variant, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{variant: variant, logger: logger}
}

// Variant returns the variant this renderer serves.
func (r *Renderer) Variant() Variant { return r.variant }

// Render produces one <li> card for the item. A nil record yields the
// fallback card. Title precedence: record name, then item name, then the
// literal "Product".
func (r *Renderer) Render(name string, rec *fragments.Record) *html.Node {
	if rec == nil {
		return r.Fallback(name)
	}

	v := r.variant
	title := firstNonEmpty(rec.Name, name, defaultTitle)

	li := htmlnode.Element("li", htmlnode.Attr("class", v.CardClass))

	if strings.TrimSpace(rec.ImageURL) != "" {
		wrap := htmlnode.Element("div", htmlnode.Attr("class", v.CardClass+"-image"))
		wrap.AppendChild(pictures.Create(rec.ImageURL, title, false, nil))
		li.AppendChild(wrap)
	}

	body := htmlnode.Element("div", htmlnode.Attr("class", v.CardClass+"-body"))

	heading := htmlnode.Element("h3", htmlnode.Attr("class", v.CardClass+"-title"))
	heading.AppendChild(htmlnode.Text(title))
	body.AppendChild(heading)

	if strings.TrimSpace(rec.Description) != "" {
		p := htmlnode.Element("p", htmlnode.Attr("class", v.CardClass+"-description"))
		appendFormatted(p, rec.Description)
		body.AppendChild(p)
	}
	if strings.TrimSpace(rec.Promo) != "" {
		body.AppendChild(r.section("promo", v.PromoHeading, rec.Promo))
	}
	if strings.TrimSpace(rec.Notes) != "" {
		body.AppendChild(r.section("notes", v.NotesHeading, rec.Notes))
	}

	if v.CTALabel != "" {
		href := v.CTAHref
		if href == "" {
			href = "#"
		}
		cta := htmlnode.Element("p", htmlnode.Attr("class", v.CardClass+"-cta"))
		link := htmlnode.Element("a",
			htmlnode.Attr("class", "button"),
			htmlnode.Attr("href", href),
		)
		link.AppendChild(htmlnode.Text(v.CTALabel))
		cta.AppendChild(link)
		body.AppendChild(cta)
	}

	li.AppendChild(body)
	return li
}

// Fallback produces the card rendered when no record is available.
func (r *Renderer) Fallback(name string) *html.Node {
	v := r.variant
	li := htmlnode.Element("li", htmlnode.Attr("class", v.CardClass+" "+v.CardClass+"-fallback"))

	heading := htmlnode.Element("h3", htmlnode.Attr("class", v.CardClass+"-title"))
	heading.AppendChild(htmlnode.Text(firstNonEmpty(name, defaultTitle)))
	li.AppendChild(heading)

	notice := htmlnode.Element("p", htmlnode.Attr("class", v.CardClass+"-notice"))
	notice.AppendChild(htmlnode.Text(FallbackNotice))
	li.AppendChild(notice)

	return li
}

func (r *Renderer) section(kind, heading, text string) *html.Node {
	v := r.variant
	div := htmlnode.Element("div", htmlnode.Attr("class", v.CardClass+"-"+kind))
	h := htmlnode.Element("h4")
	h.AppendChild(htmlnode.Text(heading))
	div.AppendChild(h)
	p := htmlnode.Element("p")
	appendFormatted(p, text)
	div.AppendChild(p)
	return div
}
