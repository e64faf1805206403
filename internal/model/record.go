// Package model defines the records flowing through the scrape pipeline.
package model

// Sentinel is the literal placeholder for any field that could not be
// resolved from either source. Exported rows never contain empty strings.
const Sentinel = "N/A"

// Target identifies one university to harvest: the profile-page slug on
// the primary source and the encyclopedia URL on the secondary source.
type Target struct {
	Slug    string `yaml:"slug"`
	WikiURL string `yaml:"wiki_url"`
}

// University is a resolved university record before key assignment.
// Name doubles as the join key for courses during the scrape phase.
type University struct {
	Name    string
	Country string
	City    string
	Website string
}

// Course is a raw course record before key assignment. UniversityName
// joins it to its university; the surrogate id is assigned at finalize.
type Course struct {
	UniversityName string
	Name           string
	Level          string
	Discipline     string
	Duration       string
	Fees           string
	Eligibility    string
}

// UniversityRow is an exported row of the Universities sheet.
type UniversityRow struct {
	ID      int
	Name    string
	Country string
	City    string
	Website string
}

// CourseRow is an exported row of the Courses sheet.
type CourseRow struct {
	ID           int
	UniversityID int
	Name         string
	Level        string
	Discipline   string
	Duration     string
	Fees         string
	Eligibility  string
}
