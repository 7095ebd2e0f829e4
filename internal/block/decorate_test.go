package block

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jansaniel95/jan-eds-training/internal/cards"
	"github.com/jansaniel95/jan-eds-training/internal/fragments"
)

type stubFetcher struct {
	mu      sync.Mutex
	calls   int
	fetch   func(path string) (*fragments.Record, error)
	visited []string
}

func (s *stubFetcher) FetchRecord(_ context.Context, path string) (*fragments.Record, error) {
	s.mu.Lock()
	s.calls++
	s.visited = append(s.visited, path)
	s.mu.Unlock()
	if s.fetch == nil {
		return nil, nil
	}
	return s.fetch(path)
}

func decorateMarkup(t *testing.T, fetcher Fetcher, markup string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	NewDecorator(fetcher, nil).DecorateAll(context.Background(), doc)
	return doc
}

func TestDecorateRendersCardsInOrder(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fetch: func(path string) (*fragments.Record, error) {
		switch path {
		case "/path/a":
			return &fragments.Record{Name: "Card A", Description: "First card."}, nil
		case "/path/b":
			return &fragments.Record{Name: "Card B"}, nil
		}
		return nil, nil
	}}

	doc := decorateMarkup(t, fetcher, `<div class="products">
		<div><div>A</div><div>/path/a</div></div>
		<div><div>B</div><div>/path/b</div></div>
	</div>`)

	block := doc.Find("div.products")
	assert.Equal(t, 1, block.Find("h2.products-card-section-title").Length())
	items := block.Find("ul.products-card-list > li.products-card")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, "Card A", items.Eq(0).Find("h3").Text())
	assert.Equal(t, "Card B", items.Eq(1).Find("h3").Text())
	assert.Zero(t, block.Find("li.products-card-fallback").Length())
}

func TestDecorateDropsNonQualifyingRows(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fetch: func(string) (*fragments.Record, error) {
		return &fragments.Record{Name: "Card A"}, nil
	}}

	doc := decorateMarkup(t, fetcher, `<div class="products">
		<div><div>Card A</div><div>/path/a</div></div>
		<div><div></div><div></div></div>
	</div>`)

	assert.Equal(t, 1, doc.Find("li").Length())
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, []string{"/path/a"}, fetcher.visited)
}

func TestDecorateFetchFailureBecomesFallbackCard(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fetch: func(path string) (*fragments.Record, error) {
		return nil, &fragments.FetchError{Path: path, Err: errors.New("connection refused")}
	}}

	doc := decorateMarkup(t, fetcher, `<div class="products">
		<div><div>Card A</div><div>/path/a</div></div>
	</div>`)

	card := doc.Find("li.products-card-fallback")
	require.Equal(t, 1, card.Length())
	assert.Equal(t, "Card A", card.Find("h3").Text())
	assert.Equal(t, cards.FallbackNotice, card.Find("p.products-card-notice").Text())
	assert.Zero(t, doc.Find("p.products-card-error").Length())
}

func TestDecorateFailureIsolatedPerItem(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fetch: func(path string) (*fragments.Record, error) {
		if path == "/path/bad" {
			return nil, &fragments.FetchError{Path: path, Status: 500}
		}
		return &fragments.Record{Name: "Good Card"}, nil
	}}

	doc := decorateMarkup(t, fetcher, `<div class="products">
		<div><div>Good</div><div>/path/good</div></div>
		<div><div>Bad</div><div>/path/bad</div></div>
	</div>`)

	items := doc.Find("li.products-card")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, "Good Card", items.Eq(0).Find("h3").Text())
	assert.True(t, items.Eq(1).HasClass("products-card-fallback"))
}

func TestDecorateFetchPanicBecomesFallbackCard(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fetch: func(string) (*fragments.Record, error) {
		panic("fetcher exploded")
	}}

	doc := decorateMarkup(t, fetcher, `<div class="products">
		<div><div>Card A</div><div>/path/a</div></div>
	</div>`)

	assert.Equal(t, 1, doc.Find("li.products-card-fallback").Length())
}

func TestDecorateEmptyBlockSkipsNetwork(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{}

	doc := decorateMarkup(t, fetcher, `<div class="products">
		<div><div>No path here</div></div>
	</div>`)

	assert.Equal(t, EmptyMessage, doc.Find("p.products-card-empty").Text())
	assert.Zero(t, doc.Find("li").Length())
	assert.Zero(t, fetcher.calls)
}

func TestDecorateMovesInstrumentation(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fetch: func(string) (*fragments.Record, error) {
		return &fragments.Record{Name: "Card A"}, nil
	}}

	doc := decorateMarkup(t, fetcher, `<div class="products">
		<div data-aue-resource="urn:aemconnection:/content/row" data-aue-type="component">
			<div>Card A</div><div>/path/a</div>
		</div>
	</div>`)

	card := doc.Find("li.products-card")
	require.Equal(t, 1, card.Length())
	resource, ok := card.Attr("data-aue-resource")
	require.True(t, ok)
	assert.Equal(t, "urn:aemconnection:/content/row", resource)
}

func TestDecorateProductVariant(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fetch: func(string) (*fragments.Record, error) {
		return &fragments.Record{Name: "Card A"}, nil
	}}

	doc := decorateMarkup(t, fetcher, `<div class="product">
		<div><div>Card A</div><div>/path/a</div></div>
	</div>`)

	assert.Equal(t, 1, doc.Find("ul.product-card-list > li.product-card").Length())
	assert.Zero(t, doc.Find("a.button").Length())
	assert.Equal(t, cards.Product.SectionTitle, doc.Find("h2").Text())
}

func TestDecorateAllHandlesMultipleBlocks(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fetch: func(string) (*fragments.Record, error) {
		return &fragments.Record{Name: "Card"}, nil
	}}

	doc := decorateMarkup(t, fetcher, `<main>
		<div class="products"><div><div>A</div><div>/a</div></div></div>
		<p>interlude</p>
		<div class="product"><div><div>B</div><div>/b</div></div></div>
	</main>`)

	assert.Equal(t, 1, doc.Find("li.products-card").Length())
	assert.Equal(t, 1, doc.Find("li.product-card").Length())
	assert.Equal(t, 2, fetcher.calls)
}
