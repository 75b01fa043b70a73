package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridiantrade/catalog-services/internal/app"
	"github.com/meridiantrade/catalog-services/internal/catalog"
	"github.com/meridiantrade/catalog-services/internal/config"
)

func run(t *testing.T, s *app.Stores, args ...string) string {
	t.Helper()
	t.Setenv("MONGODB_URI", "")
	cmd := newRootCmd(func(context.Context, *config.Config) *app.Stores { return s })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestSeedFAQs(t *testing.T) {
	s := app.MemoryStores()
	assert.Contains(t, run(t, s, "seed-faqs"), "seeded 5 faqs")
	assert.Contains(t, run(t, s, "seed-faqs"), "already populated")
}

func TestAsk(t *testing.T) {
	s := app.MemoryStores()
	require.True(t, s.FAQs.EnsureSeeded(context.Background()))

	out := run(t, s, "ask", "Do", "you", "ship", "internationally?")
	assert.Contains(t, out, "[faq]")
	assert.Contains(t, out, "We export worldwide")
}

func TestExportPaths(t *testing.T) {
	s := app.MemoryStores()
	ctx := context.Background()
	_, err := s.Catalog.CreateCategory(ctx, &catalog.Category{Name: "Edible Oil"})
	require.NoError(t, err)
	_, err = s.Catalog.CreateProduct(ctx, &catalog.Product{Name: "Sunflower Oil", Category: "Edible Oil"})
	require.NoError(t, err)

	out := run(t, s, "export-paths", "--json")
	var paths []string
	require.NoError(t, json.Unmarshal([]byte(out), &paths))
	assert.Contains(t, paths, "/products/edible-oil")
	assert.Contains(t, paths, "/products/edible-oil/sunflower-oil")
	assert.Contains(t, paths, "/contact")
}
