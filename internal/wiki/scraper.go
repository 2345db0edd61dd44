// Package wiki scrapes skin prices from the community wiki's skin list.
package wiki

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"skinvault/internal/cdn"
	"skinvault/internal/constants"
)

const DefaultURL = "https://wiki.leagueoflegends.com/en-us/List_of_champion_skins"

// SpecialCost marks skins with no listed price (event rewards, bundles, etc.)
const SpecialCost = "Special"

var ErrNoTable = errors.New("skin table not found")

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// PriceKey builds the lookup key for a champion/skin pair, e.g. ("Kai'Sa", "K/DA Kai'Sa") -> "kaisa_kdakaisa"
func PriceKey(champion, skin string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(champion, "")) + "_" +
		strings.ToLower(nonAlnum.ReplaceAllString(skin, ""))
}

// Scraper fetches the wiki skin list
type Scraper struct {
	url    string
	cdn    *cdn.Client
	logger zerolog.Logger
}

// Option configures a Scraper
type Option func(*scraperOptions)

type scraperOptions struct {
	url     string
	timeout time.Duration
}

// WithURL overrides the page location
func WithURL(url string) Option {
	return func(o *scraperOptions) { o.url = url }
}

// WithTimeout bounds the page fetch
func WithTimeout(d time.Duration) Option {
	return func(o *scraperOptions) { o.timeout = d }
}

// NewScraper creates a wiki scraper
func NewScraper(logger zerolog.Logger, opts ...Option) *Scraper {
	o := scraperOptions{url: DefaultURL, timeout: constants.ReferenceTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return &Scraper{url: o.url, cdn: cdn.New(o.timeout), logger: logger}
}

// Prices returns skin costs keyed by PriceKey
func (s *Scraper) Prices(ctx context.Context) (map[string]string, error) {
	body, err := s.cdn.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch skin list: %w", err)
	}

	prices, err := ParsePrices(body)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("skins", len(prices)).Str("url", s.url).Msg("scraped skin prices")
	return prices, nil
}

// ParsePrices reads the first table body of the page. Columns are champion, skin, release date and cost;
// the first row is a header.
func ParsePrices(page []byte) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse skin list: %w", err)
	}

	tbody := doc.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, ErrNoTable
	}

	prices := make(map[string]string)
	tbody.ChildrenFiltered("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cols := row.ChildrenFiltered("td")
		if cols.Length() < 4 {
			return
		}

		champion := strings.TrimSpace(cols.Eq(0).Text())
		skin := strings.TrimSpace(cols.Eq(1).Text())

		costCell := cols.Eq(3).Clone()
		costCell.Find("style").Remove()
		cost := SpecialCost
		if fields := strings.Fields(spacedText(costCell)); len(fields) > 0 {
			cost = fields[0]
		}

		prices[PriceKey(champion, skin)] = cost
	})
	return prices, nil
}

// spacedText joins descendant text nodes with spaces so adjacent elements don't run together
func spacedText(sel *goquery.Selection) string {
	var parts []string
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			parts = append(parts, c.Text())
			return
		}
		parts = append(parts, spacedText(c))
	})
	return strings.Join(parts, " ")
}
