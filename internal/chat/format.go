package chat

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/meridiantrade/catalog-services/internal/catalog"
)

// Fixed chat sentences.
const (
	NoProductsFound = "I couldn't find any products matching your request. Please try different keywords or contact our team for assistance."
	NoCategories    = "We don't have any product categories listed at the moment. Please contact our team for more information."
	StoreApology    = "I'm sorry, I'm having trouble accessing our product information right now. Please try again later or contact our team directly."

	productsHeader   = "Here are some products that match your inquiry:"
	productsTrailer  = "Would you like more details about any of these products? Ask me or contact our sales team for a quote."
	categoriesHeader = "Here are our product categories:"
	categoriesFooter = "Which category would you like to know more about?"
)

// FormatProductsForChatResponse renders products as a numbered list.
// A nil or zero price is not shown.
func FormatProductsForChatResponse(products []*catalog.Product) string {
	if len(products) == 0 {
		return NoProductsFound
	}
	var b strings.Builder
	b.WriteString(productsHeader + "\n\n")
	for i, p := range products {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, p.Name)
		if p.Description != "" {
			fmt.Fprintf(&b, "   %s\n", p.Description)
		}
		if p.Price != nil && *p.Price != 0 {
			fmt.Fprintf(&b, "   Price: $%s", formatPrice(*p.Price))
			if p.Unit != "" {
				fmt.Fprintf(&b, " per %s", p.Unit)
			}
			b.WriteString("\n")
		}
		if len(p.KeyFeatures) > 0 {
			fmt.Fprintf(&b, "   Key features: %s\n", strings.Join(p.KeyFeatures, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString(productsTrailer)
	return b.String()
}

// FormatCategoriesForChatResponse renders categories as a numbered list.
func FormatCategoriesForChatResponse(categories []*catalog.Category) string {
	if len(categories) == 0 {
		return NoCategories
	}
	var b strings.Builder
	b.WriteString(categoriesHeader + "\n\n")
	for i, c := range categories {
		fmt.Fprintf(&b, "%d. **%s** (%d products)\n", i+1, c.Name, c.ProductCount)
		if c.Description != "" {
			fmt.Fprintf(&b, "   %s\n", c.Description)
		}
		b.WriteString("\n")
	}
	b.WriteString(categoriesFooter)
	return b.String()
}

// whole amounts print without decimals, anything else with two.
func formatPrice(p float64) string {
	if p == math.Trunc(p) {
		return strconv.FormatFloat(p, 'f', 0, 64)
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}
