package course

import (
	"regexp"
	"strings"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/normalize"
)

// levelBySegment maps URL level segments to canonical level names.
var levelBySegment = map[string]string{
	"undergrad":  "Bachelor",
	"bachelors":  "Bachelor",
	"masters":    "Master",
	"postgrad":   "Master",
	"phd":        "PhD",
	"mba":        "MBA",
	"diploma":    "Diploma",
	"cert":       "Certificate",
	"foundation": "Foundation",
}

// normalizeLevel canonicalizes the "study level" highlight, falling
// back to the URL's level segment when the text is unrecognized.
func normalizeLevel(raw, courseURL string) string {
	value := strings.ToLower(normalize.Clean(raw))
	switch {
	case strings.Contains(value, "undergraduate") || strings.Contains(value, "bachelor"):
		return "Bachelor"
	case strings.Contains(value, "postgraduate") || strings.Contains(value, "master"):
		return "Master"
	case strings.Contains(value, "phd") || strings.Contains(value, "doctoral"):
		return "PhD"
	case strings.Contains(value, "diploma"):
		return "Diploma"
	case strings.Contains(value, "certificate"):
		return "Certificate"
	case strings.Contains(value, "mba"):
		return "MBA"
	}

	if level, ok := levelBySegment[levelSegmentOf(courseURL)]; ok {
		return level
	}
	return model.Sentinel
}

var degreePrefix = regexp.MustCompile(
	`(?i)^(Bachelor|Master|BA|BSc|MSc|MA|PhD|Doctor of|Diploma in)\s*(of|in)?\s*`)

// guessDiscipline derives a discipline when neither highlights nor
// badges name one: strip the degree prefix from the course name, and if
// that leaves nothing short enough, humanize the URL slug.
func guessDiscipline(courseName, courseURL string) string {
	courseName = normalize.Clean(courseName)
	if courseName != model.Sentinel {
		possible := strings.TrimSpace(degreePrefix.ReplaceAllString(courseName, ""))
		if possible != "" && len(strings.Fields(possible)) <= 6 {
			return normalize.TitleCase(possible)
		}
	}

	trimmed := strings.TrimRight(courseURL, "/")
	slug := trimmed[strings.LastIndex(trimmed, "/")+1:]
	return normalize.TitleCase(strings.ReplaceAll(normalize.Clean(slug), "-", " "))
}
