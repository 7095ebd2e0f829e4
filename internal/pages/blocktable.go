package pages

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jansaniel95/jan-eds-training/internal/htmlnode"
)

// expandBlockTables rewrites authored block tables into the nested div
// markup the decorator consumes. A table is a block table when its first
// header cell names the block and every other header cell is empty;
// remaining rows become the block's rows and cells. Other tables are left
// alone.
func expandBlockTables(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", err
	}

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return
		}
		classes, ok := blockClasses(rows.First())
		if !ok {
			return
		}

		div := htmlnode.Element("div", htmlnode.Attr("class", strings.Join(classes, " ")))
		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			rowDiv := htmlnode.Element("div")
			row.Children().Each(func(_ int, cell *goquery.Selection) {
				cellDiv := htmlnode.Element("div")
				moveChildren(cell.Nodes[0], cellDiv)
				rowDiv.AppendChild(cellDiv)
			})
			div.AppendChild(rowDiv)
		})

		table.ReplaceWithNodes(div)
	})

	return doc.Find("body").Html()
}

// blockClasses reads the block name from a header row. "Products (dark)"
// yields ["products", "dark"].
func blockClasses(header *goquery.Selection) ([]string, bool) {
	cells := header.Children()
	if cells.Length() == 0 {
		return nil, false
	}
	name := strings.TrimSpace(cells.First().Text())
	if name == "" {
		return nil, false
	}
	for i := 1; i < cells.Length(); i++ {
		if strings.TrimSpace(cells.Eq(i).Text()) != "" {
			return nil, false
		}
	}

	options := ""
	if open := strings.Index(name, "("); open >= 0 {
		if close := strings.Index(name, ")"); close > open {
			options = name[open+1 : close]
		}
		name = name[:open]
	}

	classes := []string{classify(name)}
	for _, opt := range strings.Split(options, ",") {
		if c := classify(opt); c != "" {
			classes = append(classes, c)
		}
	}
	if classes[0] == "" {
		return nil, false
	}
	return classes, true
}

func classify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.Join(strings.Fields(value), "-")
}

func moveChildren(from, to *html.Node) {
	for child := from.FirstChild; child != nil; {
		next := child.NextSibling
		from.RemoveChild(child)
		to.AppendChild(child)
		child = next
	}
}
