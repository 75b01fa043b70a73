// Package sitepaths builds the route list the static site export renders.
package sitepaths

import (
	"sort"
	"strings"
	"unicode"

	"github.com/meridiantrade/catalog-services/internal/catalog"
)

// StaticRoutes are always exported regardless of catalog content.
var StaticRoutes = []string{"/", "/products", "/contact"}

// Slug lowercases s and collapses every run of non-alphanumeric characters
// into a single hyphen, trimming hyphens at both ends.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Generate returns the sorted, de-duplicated set of exportable paths.
//
// A product is placed under the category whose name equals its category
// field ignoring case; failing that, under the first category whose name
// contains it; failing that, under the slug of its own category text.
// Products that end up without a category slug or a name slug are skipped.
func Generate(categories []*catalog.Category, products []*catalog.Product) []string {
	seen := map[string]struct{}{}
	add := func(p string) { seen[p] = struct{}{} }
	for _, r := range StaticRoutes {
		add(r)
	}
	for _, c := range categories {
		if s := Slug(c.Name); s != "" {
			add("/products/" + s)
		}
	}
	for _, p := range products {
		cs := categorySlug(categories, p.Category)
		ps := Slug(p.Name)
		if cs == "" || ps == "" {
			continue
		}
		add("/products/" + cs)
		add("/products/" + cs + "/" + ps)
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func categorySlug(categories []*catalog.Category, name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	for _, c := range categories {
		if strings.ToLower(c.Name) == n {
			return Slug(c.Name)
		}
	}
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Name), n) {
			return Slug(c.Name)
		}
	}
	return Slug(name)
}
