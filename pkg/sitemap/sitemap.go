// Package sitemap writes the XML sitemaps for the public site: one for the
// static pages, one for the shop products and an index pointing at both.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bereschoon_backend/internal/model"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const (
	xmlns         = "http://www.sitemaps.org/schemas/sitemap/0.9"
	dateLayout    = "2006-01-02"
	PagesFile     = "sitemap-pages.xml"
	ProductsFile  = "sitemap-products.xml"
	IndexFile     = "sitemap.xml"
	productPrefix = "/winkel/product/"
)

type Route struct {
	Path       string
	Priority   string
	ChangeFreq string
}

// StaticRoutes are the indexable pages. No trailing slashes.
var StaticRoutes = []Route{
	{Path: "/", Priority: "1.0", ChangeFreq: "weekly"},
	{Path: "/over-ons", Priority: "0.8", ChangeFreq: "monthly"},
	{Path: "/contact", Priority: "0.9", ChangeFreq: "monthly"},
	{Path: "/configurator", Priority: "0.9", ChangeFreq: "monthly"},
	{Path: "/projecten", Priority: "0.8", ChangeFreq: "weekly"},
	{Path: "/oprit-terras-terrein", Priority: "0.9", ChangeFreq: "monthly"},
	{Path: "/gevelreiniging", Priority: "0.9", ChangeFreq: "monthly"},
	{Path: "/onkruidbeheersing", Priority: "0.9", ChangeFreq: "monthly"},
	{Path: "/winkel", Priority: "0.8", ChangeFreq: "daily"},
}

type ProductSource interface {
	ListActive(ctx context.Context) ([]model.Product, error)
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []urlEntry
}

type urlEntry struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod"`
	ChangeFreq string   `xml:"changefreq"`
	Priority   string   `xml:"priority"`
}

type sitemapIndex struct {
	XMLName  xml.Name `xml:"sitemapindex"`
	Xmlns    string   `xml:"xmlns,attr"`
	Sitemaps []indexEntry
}

type indexEntry struct {
	XMLName xml.Name `xml:"sitemap"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod"`
}

type Generator struct {
	BaseURL   string
	OutputDir string
	Routes    []Route
	Products  ProductSource
	Log       *zap.Logger
	Now       func() time.Time
}

func NewGenerator(baseURL, outputDir string, products ProductSource, log *zap.Logger) *Generator {
	return &Generator{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		OutputDir: outputDir,
		Routes:    StaticRoutes,
		Products:  products,
		Log:       log,
		Now:       time.Now,
	}
}

// Generate writes all three sitemaps. A failing product query produces an
// empty product sitemap rather than an error.
func (g *Generator) Generate(ctx context.Context) error {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := g.write(PagesFile, g.pages()); err != nil {
		return err
	}

	products := g.products(ctx)
	if err := g.write(ProductsFile, products); err != nil {
		return err
	}
	g.Log.Info("product sitemap generated", zap.Int("products", len(products.URLs)))

	return g.write(IndexFile, g.index())
}

func (g *Generator) pages() urlSet {
	today := g.Now().Format(dateLayout)
	set := urlSet{Xmlns: xmlns}
	for _, route := range g.Routes {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        g.loc(route.Path),
			LastMod:    today,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}
	return set
}

func (g *Generator) products(ctx context.Context) urlSet {
	set := urlSet{Xmlns: xmlns}
	if g.Products == nil {
		g.Log.Warn("no product source configured, product sitemap left empty")
		return set
	}

	products, err := g.Products.ListActive(ctx)
	if err != nil {
		g.Log.Error("error fetching products", zap.Error(err))
		return set
	}

	today := g.Now().Format(dateLayout)
	for _, p := range products {
		path := productSlug(p)
		if path == "" {
			continue
		}
		lastMod := today
		if !p.UpdatedAt.IsZero() {
			lastMod = p.UpdatedAt.Format(dateLayout)
		}
		set.URLs = append(set.URLs, urlEntry{
			Loc:        g.loc(productPrefix + path),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	return set
}

func (g *Generator) index() sitemapIndex {
	today := g.Now().Format(dateLayout)
	return sitemapIndex{
		Xmlns: xmlns,
		Sitemaps: []indexEntry{
			{Loc: g.loc("/" + PagesFile), LastMod: today},
			{Loc: g.loc("/" + ProductsFile), LastMod: today},
		},
	}
}

func (g *Generator) loc(path string) string {
	if path == "/" {
		return g.BaseURL + "/"
	}
	return g.BaseURL + strings.TrimRight(path, "/")
}

func (g *Generator) write(name string, doc interface{}) error {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	target := filepath.Join(g.OutputDir, name)
	content := append([]byte(xml.Header), out...)
	content = append(content, '\n')
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	g.Log.Info("sitemap written", zap.String("file", target))
	return nil
}

// productSlug prefers the stored slug and falls back to one derived from the
// product name.
func productSlug(p model.Product) string {
	if s := strings.TrimSpace(p.Slug); s != "" {
		return s
	}
	return slug.Make(p.Name)
}
