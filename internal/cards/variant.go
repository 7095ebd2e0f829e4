package cards

import "strings"

// Variant parameterizes the rendered card markup. The two authored block
// flavours share one renderer and differ only in class family, wording, and
// whether a call-to-action button is shown.
type Variant struct {
	// Name is the block class the variant serves ("products" or "product").
	Name string
	// CardClass is the class family root; derived section classes append
	// suffixes such as -title and -description.
	CardClass string
	// SectionTitle is rendered as the block heading above the card list.
	SectionTitle string
	// PromoHeading and NotesHeading label the optional text sections.
	PromoHeading string
	NotesHeading string
	// CTALabel, when non-empty, renders a button link at the card foot.
	CTALabel string
	// CTAHref is the button target; defaults to "#" when CTALabel is set.
	CTAHref string
}

// Products is the original block flavour with a call-to-action button.
var Products = Variant{
	Name:         "products",
	CardClass:    "products-card",
	SectionTitle: "Our Products",
	PromoHeading: "Promo",
	NotesHeading: "Things to know",
	CTALabel:     "Learn more",
	CTAHref:      "#",
}

// Product is the revised flavour: adjusted wording, no button.
var Product = Variant{
	Name:         "product",
	CardClass:    "product-card",
	SectionTitle: "Products",
	PromoHeading: "Current promo",
	NotesHeading: "Notes",
}

// VariantFor resolves the variant serving a block class name, defaulting to
// Products for unknown names.
func VariantFor(name string) Variant {
	if strings.EqualFold(strings.TrimSpace(name), Product.Name) {
		return Product
	}
	return Products
}
