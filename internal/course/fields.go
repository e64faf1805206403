package course

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/normalize"
)

// extractBadges reads the badge strip on a program page: each badge has
// a title span and a value heading. Some values repeat the title as a
// suffix ("2 Years Programme Duration"); that suffix is trimmed off.
func extractBadges(doc *goquery.Document) map[string]string {
	badges := map[string]string{}
	doc.Find("div.single-badge").Each(func(_ int, badge *goquery.Selection) {
		title := normalize.Clean(badge.Find("span.single-badge-title").First().Text())
		value := normalize.Clean(badge.Find("div.badge-description h3").First().Text())
		if title == model.Sentinel || value == model.Sentinel {
			return
		}
		if strings.HasSuffix(strings.ToLower(value), strings.ToLower(title)) {
			value = normalize.Clean(value[:len(value)-len(title)])
		}
		badges[strings.ToLower(title)] = value
	})
	return badges
}

// extractHighlights reads the program highlights blocks (h3 key, p
// value). First occurrence of a key wins.
func extractHighlights(doc *goquery.Document) map[string]string {
	highlights := map[string]string{}
	doc.Find("div.prog-view-highli").Each(func(_ int, block *goquery.Selection) {
		key := strings.ToLower(normalize.Clean(block.Find("h3").First().Text()))
		value := normalize.Clean(block.Find("p").First().Text())
		if key == "" || key == strings.ToLower(model.Sentinel) || value == model.Sentinel {
			return
		}
		if _, seen := highlights[key]; !seen {
			highlights[key] = value
		}
	})
	return highlights
}

const maxEligibilityPairs = 5

// extractEligibility collects entry-requirement label/value pairs. When
// the structured block is absent it falls back to the first paragraph
// under an admissions/eligibility heading, truncated to a snippet.
func extractEligibility(doc *goquery.Document) string {
	var pairs []string
	doc.Find("div.univ-entry").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		label := normalize.Clean(block.Find(".univ-entry-label").First().Text())
		value := normalize.Clean(block.Find(".univ-entry-value").First().Text())
		if label != model.Sentinel && value != model.Sentinel {
			pairs = append(pairs, label+": "+value)
		}
		return len(pairs) < maxEligibilityPairs
	})
	if len(pairs) > 0 {
		return strings.Join(pairs, "; ")
	}

	snippet := model.Sentinel
	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		text := strings.ToLower(normalize.Clean(heading.Text()))
		if !strings.Contains(text, "admission") &&
			!strings.Contains(text, "eligibility") &&
			!strings.Contains(text, "entry requirement") {
			return true
		}
		candidate := heading.NextAllFiltered("p, li, div").First()
		if candidate.Length() == 0 {
			return true
		}
		if s := normalize.Clean(candidate.Text()); s != model.Sentinel {
			snippet = truncate(s, 220)
			return false
		}
		return true
	})
	return snippet
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
