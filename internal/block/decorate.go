package block

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/jansaniel95/jan-eds-training/internal/cards"
	"github.com/jansaniel95/jan-eds-training/internal/fragments"
	"github.com/jansaniel95/jan-eds-training/internal/htmlnode"
	"github.com/jansaniel95/jan-eds-training/internal/instrument"
)

// EmptyMessage replaces the block content when no rows qualify.
const EmptyMessage = "No products to display"

const errorMessage = "Unable to load products right now."

// Fetcher retrieves one content record per fragment path.
type Fetcher interface {
	FetchRecord(ctx context.Context, path string) (*fragments.Record, error)
}

// Decorator turns authored product blocks into rendered card lists.
type Decorator struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewDecorator wires a Decorator around the fetcher.
func NewDecorator(fetcher Fetcher, logger *zap.Logger) *Decorator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decorator{fetcher: fetcher, logger: logger}
}

// DecorateAll decorates every product block found in the document.
func (d *Decorator) DecorateAll(ctx context.Context, doc *goquery.Document) {
	doc.Find("div.products, div.product").Each(func(_ int, sel *goquery.Selection) {
		d.Decorate(ctx, sel)
	})
}

// Decorate replaces the block's authored rows with the rendered card list.
// Records are fetched concurrently, one slot per row; a row whose fetch or
// render fails downgrades to a fallback card without touching its siblings.
// Only a failure of the pipeline itself swaps the whole block for a generic
// error paragraph.
func (d *Decorator) Decorate(ctx context.Context, sel *goquery.Selection) {
	variant := cards.VariantFor(blockName(sel))

	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("block decoration failed", zap.Any("panic", p))
			replaceContent(sel, message(variant.CardClass+"-error", errorMessage))
		}
	}()

	rows := parseRows(sel, d.logger)
	if len(rows) == 0 {
		d.logger.Info("block has no qualifying rows")
		replaceContent(sel, message(variant.CardClass+"-empty", EmptyMessage))
		return
	}

	records := make([]*fragments.Record, len(rows))
	g := new(errgroup.Group)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			defer func() {
				// A panicking fetcher must not take the process down; the
				// slot simply stays empty.
				if p := recover(); p != nil {
					d.logger.Warn("fragment fetch panicked",
						zap.String("path", row.item.Path), zap.Any("panic", p))
				}
			}()
			rec, err := d.fetcher.FetchRecord(ctx, row.item.Path)
			if err != nil {
				d.logger.Warn("fragment fetch failed",
					zap.String("path", row.item.Path), zap.Error(err))
				return nil
			}
			records[i] = rec
			return nil
		})
	}
	// Goroutines never return errors; Wait is the fan-in barrier.
	_ = g.Wait()

	renderer := cards.NewRenderer(variant, d.logger)
	list := htmlnode.Element("ul", htmlnode.Attr("class", variant.CardClass+"-list"))
	for i, row := range rows {
		card := renderCard(renderer, row.item, records[i], d.logger)
		instrument.Move(row.sel, card)
		list.AppendChild(card)
	}

	heading := htmlnode.Element("h2", htmlnode.Attr("class", variant.CardClass+"-section-title"))
	heading.AppendChild(htmlnode.Text(variant.SectionTitle))

	replaceContent(sel, heading, list)
}

func renderCard(r *cards.Renderer, item Item, rec *fragments.Record, logger *zap.Logger) (card *html.Node) {
	defer func() {
		if p := recover(); p != nil {
			logger.Warn("card render failed",
				zap.String("path", item.Path), zap.Any("panic", p))
			card = r.Fallback(item.Name)
		}
	}()
	return r.Render(item.Name, rec)
}

func blockName(sel *goquery.Selection) string {
	if sel.HasClass("product") && !sel.HasClass("products") {
		return "product"
	}
	return "products"
}

func message(class, text string) *html.Node {
	p := htmlnode.Element("p", htmlnode.Attr("class", class))
	p.AppendChild(htmlnode.Text(text))
	return p
}

func replaceContent(sel *goquery.Selection, nodes ...*html.Node) {
	sel.Empty()
	sel.AppendNodes(nodes...)
}
