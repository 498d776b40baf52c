// Package scraper maps product URLs to a site profile and pulls review text
// out of the fetched markup.
package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

var ErrUnsupportedSite = errors.New("Website not supported")

// Site is one storefront profile. A URL belongs to the site when it contains
// Pattern; Selector picks every review body on the page.
type Site struct {
	Name     string
	Pattern  string
	Selector string
}

var (
	Amazon = Site{
		Name:     "amazon",
		Pattern:  "amazon",
		Selector: "span.a-size-base.review-text",
	}
	Flipkart = Site{
		Name:     "flipkart",
		Pattern:  "flipkart",
		Selector: "div.t-ZTKy",
	}
)

type Registry struct {
	mu    sync.RWMutex
	sites []Site
}

func NewRegistry(sites ...Site) *Registry {
	r := &Registry{}
	for _, s := range sites {
		r.Register(s)
	}
	return r
}

func DefaultRegistry() *Registry {
	return NewRegistry(Amazon, Flipkart)
}

func (r *Registry) Register(site Site) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sites = append(r.sites, site)
}

// Match returns the first registered site whose pattern occurs in url.
func (r *Registry) Match(url string) (Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, site := range r.sites {
		if strings.Contains(url, site.Pattern) {
			return site, nil
		}
	}
	return Site{}, ErrUnsupportedSite
}

func (r *Registry) Sites() []Site {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Site(nil), r.sites...)
}

// Extract returns the text of every node matching the site's selector, in
// document order. No match is not an error.
func Extract(site Site, body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s page: %w", site.Name, err)
	}

	reviews := []string{}
	doc.Find(site.Selector).Each(func(_ int, sel *goquery.Selection) {
		reviews = append(reviews, sel.Text())
	})

	return reviews, nil
}
