package collector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

var (
	ErrInvalidURL = errors.New("invalid blog url")
	ErrNoContent  = errors.New("no readable content found")
)

const maxArticleLinks = 5

// BlogCollector fetches a user's blog or portfolio page and gathers its
// readable text so it can flow through the skill-extraction pipeline as a
// source_type=blog document. Static HTML only.
type BlogCollector struct {
	userAgent string
}

func NewBlogCollector() *BlogCollector {
	return &BlogCollector{userAgent: "SkillSense/0.1"}
}

type Page struct {
	URL   string
	Title string
	Text  string
}

// Collect visits the given URL and up to maxArticleLinks same-host article
// links found on it, returning the concatenated page texts.
func (b *BlogCollector) Collect(ctx context.Context, rawURL string) ([]Page, error) {
	host, err := validateURL(rawURL)
	if err != nil {
		return nil, err
	}

	c := colly.NewCollector(colly.AllowedDomains(host))
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, Delay: 400 * time.Millisecond})

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", b.userAgent)
	})

	pages := make([]Page, 0, maxArticleLinks+1)
	visited := map[string]struct{}{}
	links := make([]string, 0, maxArticleLinks)

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		if len(links) >= maxArticleLinks {
			return
		}
		abs := strings.TrimSpace(e.Request.AbsoluteURL(e.Attr("href")))
		if abs == "" || abs == rawURL {
			return
		}
		if h, err := validateURL(abs); err != nil || h != host {
			return
		}
		if _, ok := visited[abs]; ok {
			return
		}
		visited[abs] = struct{}{}
		links = append(links, abs)
	})

	c.OnHTML("body", func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.DOM.Find("h1").First().Text())
		text := collapseWhitespace(e.Text)
		if text == "" {
			return
		}
		pages = append(pages, Page{URL: e.Request.URL.String(), Title: title, Text: text})
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(rawURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil && len(pages) == 0 {
		return nil, reqErr
	}

	for _, link := range links {
		if ctx.Err() != nil {
			break
		}
		_ = c.Visit(link)
	}
	c.Wait()

	if len(pages) == 0 {
		return nil, ErrNoContent
	}
	return pages, nil
}

// Text flattens collected pages into one extraction input.
func Text(pages []Page) string {
	var sb strings.Builder
	for _, p := range pages {
		if p.Title != "" {
			sb.WriteString(p.Title)
			sb.WriteString("\n")
		}
		sb.WriteString(p.Text)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}

func validateURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	host := u.Host
	if host == "" {
		return "", ErrInvalidURL
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
