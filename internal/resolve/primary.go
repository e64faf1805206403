package resolve

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/normalize"
)

// primaryMeta holds the fields extractable from a primary-source
// profile page. Unlocated fields stay at the sentinel.
type primaryMeta struct {
	Name    string
	City    string
	Country string
}

// jsonLDObjects collects every JSON-LD object embedded in the page.
// Malformed blocks are skipped; top-level arrays are flattened.
func jsonLDObjects(doc *goquery.Document) []map[string]any {
	var objects []map[string]any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return
		}
		switch v := parsed.(type) {
		case []any:
			for _, item := range v {
				if obj, ok := item.(map[string]any); ok {
					objects = append(objects, obj)
				}
			}
		case map[string]any:
			objects = append(objects, v)
		}
	})
	return objects
}

// extractPrimaryMeta pulls name/city/country from a profile page. The
// page embeds ProfilePage and CollegeOrUniversity JSON-LD objects; the
// first department address carrying a locality or country wins. Falls
// back to the first <h1> for the name.
func extractPrimaryMeta(doc *goquery.Document) primaryMeta {
	meta := primaryMeta{
		Name:    model.Sentinel,
		City:    model.Sentinel,
		Country: model.Sentinel,
	}

	for _, obj := range jsonLDObjects(doc) {
		switch obj["@type"] {
		case "ProfilePage":
			if entity, ok := obj["mainEntity"].(map[string]any); ok {
				meta.Name = firstClean(str(entity["name"]), str(obj["name"]), meta.Name)
			}
		case "CollegeOrUniversity":
			meta.Name = firstClean(str(obj["name"]), meta.Name)
			departments, _ := obj["department"].([]any)
			for _, d := range departments {
				dept, ok := d.(map[string]any)
				if !ok {
					continue
				}
				addr, ok := dept["address"].(map[string]any)
				if !ok {
					continue
				}
				if city := normalize.Clean(str(addr["addressLocality"])); city != model.Sentinel {
					meta.City = normalize.TitleCase(city)
				}
				if country := normalize.Clean(str(addr["addressCountry"])); country != model.Sentinel {
					meta.Country = normalize.TitleCase(country)
				}
				if meta.City != model.Sentinel || meta.Country != model.Sentinel {
					break
				}
			}
		}
	}

	if meta.Name == model.Sentinel {
		if h1 := doc.Find("h1").First(); h1.Length() > 0 {
			meta.Name = normalize.Clean(h1.Text())
		}
	}

	return meta
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// firstClean returns the first candidate that cleans to a real value.
func firstClean(candidates ...string) string {
	for _, c := range candidates {
		if cleaned := normalize.Clean(c); cleaned != model.Sentinel {
			return cleaned
		}
	}
	return model.Sentinel
}
