package sitemap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bereschoon_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeProducts struct {
	products []model.Product
	err      error
}

func (f fakeProducts) ListActive(ctx context.Context) ([]model.Product, error) {
	return f.products, f.err
}

func newTestGenerator(t *testing.T, products ProductSource) (*Generator, string) {
	t.Helper()
	dir := t.TempDir()
	g := NewGenerator("https://bereschoon.nl/", dir, products, zaptest.NewLogger(t))
	g.Now = func() time.Time { return time.Date(2026, 7, 14, 10, 0, 0, 0, time.UTC) }
	return g, dir
}

func read(t *testing.T, dir, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(raw)
}

func TestGenerateWritesAllSitemaps(t *testing.T) {
	g, dir := newTestGenerator(t, fakeProducts{products: []model.Product{
		{Name: "Groene Aanslag Reiniger", Slug: "groene-aanslag-reiniger", UpdatedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "Voegzand Extra Sterk"},
	}})

	require.NoError(t, g.Generate(context.Background()))

	pages := read(t, dir, PagesFile)
	assert.True(t, strings.HasPrefix(pages, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, pages, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, pages, "<loc>https://bereschoon.nl/</loc>")
	assert.Contains(t, pages, "<loc>https://bereschoon.nl/over-ons</loc>")
	assert.Contains(t, pages, "<lastmod>2026-07-14</lastmod>")
	assert.Contains(t, pages, "<changefreq>daily</changefreq>")
	assert.Equal(t, len(StaticRoutes), strings.Count(pages, "<url>"))
	assert.NotContains(t, pages, "/track")

	products := read(t, dir, ProductsFile)
	assert.Contains(t, products, "<loc>https://bereschoon.nl/winkel/product/groene-aanslag-reiniger</loc>")
	assert.Contains(t, products, "<lastmod>2026-06-01</lastmod>")
	assert.Contains(t, products, "<loc>https://bereschoon.nl/winkel/product/voegzand-extra-sterk</loc>")
	assert.Contains(t, products, "<priority>0.7</priority>")

	index := read(t, dir, IndexFile)
	assert.Contains(t, index, "<sitemapindex")
	assert.Contains(t, index, "<loc>https://bereschoon.nl/sitemap-pages.xml</loc>")
	assert.Contains(t, index, "<loc>https://bereschoon.nl/sitemap-products.xml</loc>")
}

func TestGenerateProductFailureLeavesEmptySitemap(t *testing.T) {
	g, dir := newTestGenerator(t, fakeProducts{err: errors.New("relation products does not exist")})

	require.NoError(t, g.Generate(context.Background()))

	products := read(t, dir, ProductsFile)
	assert.Contains(t, products, "<urlset")
	assert.NotContains(t, products, "<url>")
}

func TestGenerateWithoutProductSource(t *testing.T) {
	g, dir := newTestGenerator(t, nil)

	require.NoError(t, g.Generate(context.Background()))
	assert.NotContains(t, read(t, dir, ProductsFile), "<url>")
}

func TestLocStripsTrailingSlash(t *testing.T) {
	g, _ := newTestGenerator(t, nil)
	assert.Equal(t, "https://bereschoon.nl/winkel", g.loc("/winkel/"))
	assert.Equal(t, "https://bereschoon.nl/", g.loc("/"))
}
