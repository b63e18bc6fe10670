// Package seo audits the crawler-facing files in the public directory:
// robots.txt, llms.txt and the sitemaps written by package sitemap.
package seo

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"bereschoon_backend/pkg/sitemap"

	"go.uber.org/zap"
)

const (
	RobotsFile = "robots.txt"
	LLMsFile   = "llms.txt"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// NoindexPaths must never show up in a sitemap.
var NoindexPaths = []string{"/admin", "/account", "/checkout", "/track"}

type Finding struct {
	File     string
	Severity Severity
	Message  string
}

type Report struct {
	Findings []Finding
	// URLCounts holds the number of <loc> entries per sitemap file read.
	URLCounts map[string]int
}

func (r *Report) Errors() int {
	return r.count(SeverityError)
}

func (r *Report) Warnings() int {
	return r.count(SeverityWarning)
}

func (r *Report) count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

type Checker struct {
	PublicDir string
	BaseURL   string
	Log       *zap.Logger
}

func NewChecker(publicDir, baseURL string, log *zap.Logger) *Checker {
	return &Checker{
		PublicDir: publicDir,
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Log:       log,
	}
}

// Run performs every check and returns the collected findings.
func (c *Checker) Run() *Report {
	r := &Report{URLCounts: map[string]int{}}
	c.checkRobots(r)
	c.checkLLMs(r)
	c.checkSitemaps(r)

	c.Log.Info("seo check finished",
		zap.Int("errors", r.Errors()),
		zap.Int("warnings", r.Warnings()),
	)
	return r
}

func (c *Checker) fail(r *Report, file, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Findings = append(r.Findings, Finding{File: file, Severity: SeverityError, Message: msg})
	c.Log.Error(msg, zap.String("file", file))
}

func (c *Checker) warn(r *Report, file, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Findings = append(r.Findings, Finding{File: file, Severity: SeverityWarning, Message: msg})
	c.Log.Warn(msg, zap.String("file", file))
}

func (c *Checker) read(name string) (string, bool, error) {
	raw, err := os.ReadFile(filepath.Join(c.PublicDir, name))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(raw), true, nil
}

func (c *Checker) checkRobots(r *Report) {
	content, ok, err := c.read(RobotsFile)
	if err != nil {
		c.fail(r, RobotsFile, "could not read robots.txt: %v", err)
		return
	}
	if !ok {
		c.fail(r, RobotsFile, "robots.txt not found")
		return
	}

	if !strings.Contains(content, "Sitemap:") {
		c.fail(r, RobotsFile, "no Sitemap directive")
	} else if want := c.BaseURL + "/" + sitemap.IndexFile; c.BaseURL != "" && !strings.Contains(content, want) {
		c.warn(r, RobotsFile, "Sitemap directive does not point at %s", want)
	}
	if !strings.Contains(content, "User-agent:") {
		c.fail(r, RobotsFile, "no User-agent directive")
	}
	if strings.Contains(content, "Disallow: *.css") || strings.Contains(content, "Disallow: *.js") {
		c.fail(r, RobotsFile, "CSS or JS is blocked for crawlers")
	}
	if !strings.Contains(content, "/winkel/admin") || !strings.Contains(content, "/winkel/account") {
		c.warn(r, RobotsFile, "admin and account routes may not be blocked")
	}
}

func (c *Checker) checkLLMs(r *Report) {
	content, ok, err := c.read(LLMsFile)
	if err != nil {
		c.fail(r, LLMsFile, "could not read llms.txt: %v", err)
		return
	}
	if !ok {
		c.warn(r, LLMsFile, "llms.txt not found")
		return
	}

	if c.BaseURL != "" && !strings.Contains(content, c.BaseURL) {
		c.warn(r, LLMsFile, "canonical domain %s not mentioned", c.BaseURL)
	}
	if !strings.Contains(strings.ToLower(content), "sitemap") {
		c.warn(r, LLMsFile, "no sitemap reference")
	}
}

type sitemapDoc struct {
	XMLName  xml.Name
	URLs     []locEntry `xml:"url"`
	Sitemaps []locEntry `xml:"sitemap"`
}

type locEntry struct {
	Loc string `xml:"loc"`
}

func (c *Checker) checkSitemaps(r *Report) {
	for _, name := range []string{sitemap.IndexFile, sitemap.PagesFile, sitemap.ProductsFile} {
		content, ok, err := c.read(name)
		if err != nil {
			c.fail(r, name, "could not read %s: %v", name, err)
			continue
		}
		if !ok {
			if name == sitemap.IndexFile {
				c.fail(r, name, "%s not found", name)
			} else {
				c.warn(r, name, "%s not found", name)
			}
			continue
		}

		if !strings.HasPrefix(strings.TrimSpace(content), "<?xml") {
			c.fail(r, name, "%s has no XML declaration", name)
			continue
		}

		var doc sitemapDoc
		if err := xml.NewDecoder(bytes.NewReader([]byte(content))).Decode(&doc); err != nil {
			c.fail(r, name, "%s is not well-formed XML: %v", name, err)
			continue
		}
		if doc.XMLName.Local != "urlset" && doc.XMLName.Local != "sitemapindex" {
			c.fail(r, name, "%s has root element %q, want urlset or sitemapindex", name, doc.XMLName.Local)
			continue
		}

		entries := append(doc.URLs, doc.Sitemaps...)
		r.URLCounts[name] = len(entries)
		c.Log.Info("sitemap checked", zap.String("file", name), zap.Int("urls", len(entries)))

		for _, e := range entries {
			c.checkLoc(r, name, strings.TrimSpace(e.Loc))
		}
	}
}

func (c *Checker) checkLoc(r *Report, file, loc string) {
	u, err := url.Parse(loc)
	if err != nil || u.Host == "" {
		c.fail(r, file, "invalid URL %q", loc)
		return
	}
	if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
		c.fail(r, file, "trailing slash in %s", loc)
	}
	for _, p := range NoindexPaths {
		if strings.Contains(u.Path, p) {
			c.fail(r, file, "noindex URL %s listed", loc)
			break
		}
	}
}
