package instrument

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jansaniel95/jan-eds-training/internal/htmlnode"
	"github.com/jansaniel95/jan-eds-training/internal/testutil"
)

func selectionFrom(t *testing.T, markup, selector string) *goquery.Selection {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	sel := doc.Find(selector)
	require.Equal(t, 1, sel.Length())
	return sel
}

func TestMoveTransfersInstrumentation(t *testing.T) {
	t.Parallel()

	src := selectionFrom(t, `<div class="row"
		data-aue-resource="urn:aemconnection:/content/row"
		data-aue-type="component"
		data-richtext-prop="description">cell</div>`, "div.row")
	dst := htmlnode.Element("li", htmlnode.Attr("class", "products-card"))

	Move(src, dst)

	doc := testutil.Selection(t, dst)
	card := doc.Find("li")
	resource, _ := card.Attr("data-aue-resource")
	assert.Equal(t, "urn:aemconnection:/content/row", resource)
	kind, _ := card.Attr("data-aue-type")
	assert.Equal(t, "component", kind)
	prop, _ := card.Attr("data-richtext-prop")
	assert.Equal(t, "description", prop)

	// instrumentation leaves the source, ordinary attributes stay
	_, has := src.Attr("data-aue-resource")
	assert.False(t, has)
	_, has = src.Attr("data-aue-type")
	assert.False(t, has)
	assert.True(t, src.HasClass("row"))
}

func TestMoveIgnoresPlainAttributes(t *testing.T) {
	t.Parallel()

	src := selectionFrom(t, `<div class="row" id="row-1" data-other="x">cell</div>`, "div.row")
	dst := htmlnode.Element("li")

	Move(src, dst)

	assert.Empty(t, dst.Attr)
	id, _ := src.Attr("id")
	assert.Equal(t, "row-1", id)
}

func TestMoveNilSafe(t *testing.T) {
	t.Parallel()

	Move(nil, nil)
	Move(nil, htmlnode.Element("li"))

	src := selectionFrom(t, `<div class="row">cell</div>`, "div.row")
	Move(src, nil)
}
