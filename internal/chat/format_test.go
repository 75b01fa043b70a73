package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridiantrade/catalog-services/internal/catalog"
)

func price(v float64) *float64 { return &v }

func TestFormatProducts_Empty(t *testing.T) {
	first := FormatProductsForChatResponse(nil)
	require.Equal(t, NoProductsFound, first)
	require.Equal(t, first, FormatProductsForChatResponse([]*catalog.Product{}))
}

func TestFormatProducts_List(t *testing.T) {
	out := FormatProductsForChatResponse([]*catalog.Product{
		{Name: "1121 Basmati Rice", Description: "Extra long grain", Price: price(1150), Unit: "MT", KeyFeatures: []string{"Aged 1 year", "8.3mm"}},
		{Name: "Sesame Seeds", Price: price(0)},
		{Name: "Refined Sugar", Price: price(512.5)},
	})

	want := "Here are some products that match your inquiry:\n\n" +
		"1. **1121 Basmati Rice**\n" +
		"   Extra long grain\n" +
		"   Price: $1150 per MT\n" +
		"   Key features: Aged 1 year, 8.3mm\n\n" +
		"2. **Sesame Seeds**\n\n" +
		"3. **Refined Sugar**\n" +
		"   Price: $512.50\n\n" +
		productsTrailer
	assert.Equal(t, want, out)
}

func TestFormatCategories(t *testing.T) {
	require.Equal(t, NoCategories, FormatCategoriesForChatResponse(nil))

	out := FormatCategoriesForChatResponse([]*catalog.Category{
		{Name: "Rice", ProductCount: 4, Description: "Basmati and non-basmati"},
		{Name: "Sugar", ProductCount: 0},
	})
	require.True(t, strings.HasPrefix(out, "Here are our product categories:"))
	assert.Contains(t, out, "1. **Rice** (4 products)\n   Basmati and non-basmati\n")
	assert.Contains(t, out, "2. **Sugar** (0 products)\n")
	assert.True(t, strings.HasSuffix(out, categoriesFooter))
}
