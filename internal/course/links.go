package course

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/normalize"
)

// levelSegments are the URL path segments that identify a program page
// under a university profile, e.g. /universities/<slug>/masters/<name>.
var levelSegments = map[string]struct{}{
	"undergrad":  {},
	"bachelors":  {},
	"masters":    {},
	"phd":        {},
	"postgrad":   {},
	"mba":        {},
	"diploma":    {},
	"cert":       {},
	"foundation": {},
}

// DiscoverLinks finds candidate program page URLs on a profile page.
// Only hrefs under the university's own path with a recognized level
// segment qualify; query strings and fragments are dropped, duplicates
// removed in encounter order, and the result capped at maxLinks.
func DiscoverLinks(doc *goquery.Document, baseURL, slug string, maxLinks int) []string {
	prefix := "/universities/" + slug + "/"

	var links []string
	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href := normalize.Clean(anchor.AttrOr("href", ""))
		if href == model.Sentinel {
			return
		}
		href = strings.TrimSpace(strings.SplitN(strings.SplitN(href, "?", 2)[0], "#", 2)[0])
		if !strings.HasPrefix(href, prefix) {
			return
		}

		parts := strings.Split(strings.Trim(href, "/"), "/")
		if len(parts) < 4 {
			return
		}
		if _, ok := levelSegments[strings.ToLower(parts[2])]; !ok {
			return
		}

		links = append(links, joinURL(baseURL, href))
	})

	links = normalize.Dedupe(links, func(s string) string { return s })
	if maxLinks > 0 && len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links
}

// levelSegmentOf returns the level path segment of a program URL.
func levelSegmentOf(courseURL string) string {
	u, err := url.Parse(courseURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) >= 3 {
		return strings.ToLower(parts[2])
	}
	return ""
}

func joinURL(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
