package sitepaths

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridiantrade/catalog-services/internal/catalog"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Rice":                   "rice",
		"Basmati Rice (1121)":    "basmati-rice-1121",
		"  Edible -- Oils  ":     "edible-oils",
		"Sugar/ICUMSA 45":        "sugar-icumsa-45",
		"!!!":                    "",
		"Bromine & Derivatives.": "bromine-derivatives",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slug(in), "Slug(%q)", in)
	}
}

func TestGenerate(t *testing.T) {
	cats := []*catalog.Category{
		{Name: "Rice"},
		{Name: "Edible Oils"},
	}
	prods := []*catalog.Product{
		{Name: "Basmati Rice", Category: "rice"},
		{Name: "Sunflower Oil", Category: "oils"},
		{Name: "Refined Sugar", Category: "Sugar"},
		{Name: "???", Category: "rice"},
		{Name: "Orphan", Category: ""},
	}

	got := Generate(cats, prods)
	require.Equal(t, []string{
		"/",
		"/contact",
		"/products",
		"/products/edible-oils",
		"/products/edible-oils/sunflower-oil",
		"/products/rice",
		"/products/rice/basmati-rice",
		"/products/sugar",
		"/products/sugar/refined-sugar",
	}, got)
}

func TestGenerate_Empty(t *testing.T) {
	require.Equal(t, []string{"/", "/contact", "/products"}, Generate(nil, nil))
}
