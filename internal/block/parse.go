// Package block parses authored product blocks and decorates them into
// rendered card lists.
package block

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Item is one product reference parsed from an authored block row.
type Item struct {
	// Name is the display name from the first cell; may be empty.
	Name string
	// Path is the fragment path from the second cell; never empty.
	Path string
}

type sourceRow struct {
	item Item
	sel  *goquery.Selection
}

// ParseItems reads qualifying rows from a block selection in source order.
// A row qualifies when it has at least two cells and the second cell's
// trimmed text is non-empty; other rows are skipped.
func ParseItems(sel *goquery.Selection, logger *zap.Logger) []Item {
	rows := parseRows(sel, logger)
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.item)
	}
	return items
}

func parseRows(sel *goquery.Selection, logger *zap.Logger) []sourceRow {
	if logger == nil {
		logger = zap.NewNop()
	}
	var rows []sourceRow
	sel.Children().Each(func(i int, row *goquery.Selection) {
		cells := row.Children()
		if cells.Length() < 2 {
			logger.Debug("skipping block row with too few cells",
				zap.Int("row", i), zap.Int("cells", cells.Length()))
			return
		}
		path := strings.TrimSpace(cells.Eq(1).Text())
		if path == "" {
			logger.Debug("skipping block row without a fragment path", zap.Int("row", i))
			return
		}
		rows = append(rows, sourceRow{
			item: Item{Name: strings.TrimSpace(cells.Eq(0).Text()), Path: path},
			sel:  row,
		})
	})
	return rows
}
