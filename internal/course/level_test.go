package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLevel_FromText(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Undergraduate", "Bachelor"},
		{"bachelor's degree", "Bachelor"},
		{"Postgraduate", "Master"},
		{"Master's", "Master"},
		{"PhD programme", "PhD"},
		{"Doctoral", "PhD"},
		{"Postgraduate Diploma", "Master"}, // first match wins
		{"Diploma", "Diploma"},
		{"Certificate course", "Certificate"},
		{"Executive MBA", "MBA"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, normalizeLevel(c.raw, ""), "raw=%q", c.raw)
	}
}

func TestNormalizeLevel_FromURLSegment(t *testing.T) {
	url := "https://primary.test/universities/u/phd/quantum-computing"
	assert.Equal(t, "PhD", normalizeLevel("", url))

	url = "https://primary.test/universities/u/foundation/year-one"
	assert.Equal(t, "Foundation", normalizeLevel("something else", url))
}

func TestNormalizeLevel_Unresolvable(t *testing.T) {
	assert.Equal(t, "N/A", normalizeLevel("", "https://primary.test/x"))
}

func TestGuessDiscipline_FromName(t *testing.T) {
	got := guessDiscipline("Master of Computer Applications",
		"https://primary.test/universities/u/masters/mca")
	assert.Equal(t, "Computer Applications", got)
}

func TestGuessDiscipline_LongNameFallsBackToSlug(t *testing.T) {
	got := guessDiscipline(
		"Bachelor of a very long degree title that keeps going and going",
		"https://primary.test/universities/u/undergrad/civil-engineering")
	assert.Equal(t, "Civil Engineering", got)
}

func TestGuessDiscipline_NoName(t *testing.T) {
	got := guessDiscipline("", "https://primary.test/universities/u/masters/data-science")
	assert.Equal(t, "Data Science", got)
}
