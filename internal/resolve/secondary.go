package resolve

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/normalize"
)

// secondaryMeta holds the fields recoverable from an encyclopedia page:
// the article title, infobox location, and the official website link.
type secondaryMeta struct {
	Name    string
	City    string
	Country string
	Website string
}

var (
	citationRef    = regexp.MustCompile(`\[[^\]]*\]`)
	hasDigit       = regexp.MustCompile(`\d`)
	compassBearing = regexp.MustCompile(`\b[NSWE]\b`)
)

// extractSecondaryMeta pulls name/city/country/website from an
// encyclopedia-style page's heading and infobox.
func extractSecondaryMeta(doc *goquery.Document, pageHost string) secondaryMeta {
	meta := secondaryMeta{
		Name:    model.Sentinel,
		City:    model.Sentinel,
		Country: model.Sentinel,
		Website: model.Sentinel,
	}

	if heading := doc.Find("#firstHeading").First(); heading.Length() > 0 {
		meta.Name = normalize.Clean(heading.Text())
	}

	infobox := doc.Find("table.infobox").First()
	if infobox.Length() == 0 {
		return meta
	}

	meta.City, meta.Country = locationFromInfobox(infobox)
	meta.Website = websiteFromInfobox(infobox, pageHost)
	return meta
}

// locationFromInfobox parses the Location/Address row. Citation
// brackets are stripped, then comma-separated parts containing digits
// or compass bearings (coordinates) are dropped. One surviving part is
// a city; with more, the first is the city and the last the country.
func locationFromInfobox(infobox *goquery.Selection) (city, country string) {
	city, country = model.Sentinel, model.Sentinel

	locationRaw := model.Sentinel
	infobox.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		header := row.Find("th").First()
		cell := row.Find("td").First()
		if header.Length() == 0 || cell.Length() == 0 {
			return true
		}
		label := strings.ToLower(normalize.Clean(header.Text()))
		if label == "location" || label == "address" {
			locationRaw = normalize.Clean(cell.Text())
			return false
		}
		return true
	})
	if locationRaw == model.Sentinel {
		return city, country
	}

	cleaned := citationRef.ReplaceAllString(locationRaw, "")
	var parts []string
	for _, p := range strings.Split(cleaned, ",") {
		p = normalize.Clean(p)
		if p == model.Sentinel {
			continue
		}
		if hasDigit.MatchString(p) || compassBearing.MatchString(p) {
			continue
		}
		parts = append(parts, p)
	}

	switch len(parts) {
	case 0:
	case 1:
		city = normalize.TitleCase(parts[0])
	default:
		city = normalize.TitleCase(parts[0])
		country = normalize.TitleCase(parts[len(parts)-1])
	}
	return city, country
}

// websiteFromInfobox reads the Website row's first link, resolving
// protocol-relative and site-relative hrefs against pageHost. When the
// row has no anchor, the cell text is used as-is.
func websiteFromInfobox(infobox *goquery.Selection, pageHost string) string {
	website := model.Sentinel
	infobox.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		header := row.Find("th").First()
		cell := row.Find("td").First()
		if header.Length() == 0 || cell.Length() == 0 {
			return true
		}
		if strings.ToLower(normalize.Clean(header.Text())) != "website" {
			return true
		}

		link := cell.Find("a[href]").First()
		if link.Length() > 0 {
			href := normalize.Clean(link.AttrOr("href", ""))
			switch {
			case strings.HasPrefix(href, "//"):
				href = "https:" + href
			case strings.HasPrefix(href, "/"):
				href = "https://" + pageHost + href
			}
			website = href
		} else {
			website = normalize.Clean(cell.Text())
		}
		return false
	})
	return website
}
