package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
)

func uni(name, country, city, website string) model.University {
	return model.University{Name: name, Country: country, City: city, Website: website}
}

func crs(uniName, name, level string) model.Course {
	return model.Course{
		UniversityName: uniName,
		Name:           name,
		Level:          level,
		Discipline:     "Engineering",
		Duration:       "4 Years",
		Fees:           "INR 100,000",
		Eligibility:    "JEE Advanced",
	}
}

func TestFinalize_AssignsDenseIDs(t *testing.T) {
	ds, err := Finalize(
		[]model.University{
			uni("Alpha University", "India", "Chennai", "https://alpha.edu"),
			uni("Beta University", "India", "Pune", "https://beta.edu"),
		},
		[]model.Course{
			crs("Alpha University", "BTech CSE", "Bachelor"),
			crs("Beta University", "MTech VLSI", "Master"),
			crs("Alpha University", "MBA", "MBA"),
		},
	)
	require.NoError(t, err)

	require.Len(t, ds.Universities, 2)
	assert.Equal(t, 1, ds.Universities[0].ID)
	assert.Equal(t, 2, ds.Universities[1].ID)

	require.Len(t, ds.Courses, 3)
	for i, c := range ds.Courses {
		assert.Equal(t, i+1, c.ID)
	}
	assert.Equal(t, 1, ds.Courses[0].UniversityID)
	assert.Equal(t, 2, ds.Courses[1].UniversityID)
	assert.Equal(t, 1, ds.Courses[2].UniversityID)
}

func TestFinalize_DeduplicatesUniversities(t *testing.T) {
	ds, err := Finalize(
		[]model.University{
			uni("Alpha University", "India", "Chennai", "https://alpha.edu"),
			uni("alpha university", "India", "Chennai", "https://alpha.edu"),
		},
		nil,
	)
	require.NoError(t, err)
	assert.Len(t, ds.Universities, 1)
}

func TestFinalize_CollapsesDuplicateCourses(t *testing.T) {
	// Two course pages both yielding MBA for the same university.
	ds, err := Finalize(
		[]model.University{uni("Alpha University", "India", "Chennai", "https://alpha.edu")},
		[]model.Course{
			crs("Alpha University", "MBA", "MBA"),
			crs("Alpha University", "MBA", "MBA"),
		},
	)
	require.NoError(t, err)
	assert.Len(t, ds.Courses, 1)
}

func TestFinalize_SameNameDifferentLevelKept(t *testing.T) {
	ds, err := Finalize(
		[]model.University{uni("Alpha University", "India", "Chennai", "https://alpha.edu")},
		[]model.Course{
			crs("Alpha University", "Economics", "Bachelor"),
			crs("Alpha University", "Economics", "Master"),
		},
	)
	require.NoError(t, err)
	assert.Len(t, ds.Courses, 2)
}

func TestFinalize_DropsOrphanedCourses(t *testing.T) {
	ds, err := Finalize(
		[]model.University{uni("Alpha University", "India", "Chennai", "https://alpha.edu")},
		[]model.Course{
			crs("Alpha University", "BTech CSE", "Bachelor"),
			crs("Ghost University", "BSc Haunting", "Bachelor"),
		},
	)
	require.NoError(t, err)
	require.Len(t, ds.Courses, 1)
	assert.Equal(t, "BTech CSE", ds.Courses[0].Name)
	// Ids stay dense after the orphan is dropped.
	assert.Equal(t, 1, ds.Courses[0].ID)
}

func TestFinalize_SentinelsForMissingFields(t *testing.T) {
	ds, err := Finalize(
		[]model.University{uni("Alpha University", "India", "", "")},
		[]model.Course{{UniversityName: "Alpha University", Name: "BTech CSE"}},
	)
	require.NoError(t, err)

	assert.Equal(t, model.Sentinel, ds.Universities[0].City)
	assert.Equal(t, model.Sentinel, ds.Universities[0].Website)

	c := ds.Courses[0]
	assert.Equal(t, model.Sentinel, c.Level)
	assert.Equal(t, model.Sentinel, c.Discipline)
	assert.Equal(t, model.Sentinel, c.Duration)
	assert.Equal(t, model.Sentinel, c.Fees)
	assert.Equal(t, model.Sentinel, c.Eligibility)
}

func TestFinalize_NonHTTPWebsiteBecomesSentinel(t *testing.T) {
	ds, err := Finalize(
		[]model.University{uni("Alpha University", "India", "Chennai", "alpha.edu")},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, model.Sentinel, ds.Universities[0].Website)
}

func TestFinalize_Idempotent(t *testing.T) {
	unis := []model.University{
		uni("Alpha University", "India", "Chennai", "https://alpha.edu"),
		uni("Alpha University", "India", "Chennai", "https://alpha.edu"),
	}
	courses := []model.Course{
		crs("Alpha University", "MBA", "MBA"),
		crs("Alpha University", "MBA", "MBA"),
	}

	first, err := Finalize(unis, courses)
	require.NoError(t, err)

	// Feed the finalized tables back through: nothing changes.
	var unis2 []model.University
	for _, u := range first.Universities {
		unis2 = append(unis2, uni(u.Name, u.Country, u.City, u.Website))
	}
	var courses2 []model.Course
	for _, c := range first.Courses {
		courses2 = append(courses2, model.Course{
			UniversityName: first.Universities[c.UniversityID-1].Name,
			Name:           c.Name, Level: c.Level, Discipline: c.Discipline,
			Duration: c.Duration, Fees: c.Fees, Eligibility: c.Eligibility,
		})
	}
	second, err := Finalize(unis2, courses2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFinalize_EmptyInput(t *testing.T) {
	ds, err := Finalize(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, ds.Universities)
	assert.Empty(t, ds.Courses)
}

func TestValidate_CatchesDanglingForeignKey(t *testing.T) {
	err := validate(Dataset{
		Universities: []model.UniversityRow{
			{ID: 1, Name: "Alpha University", Country: "India", City: "Chennai", Website: "N/A"},
		},
		Courses: []model.CourseRow{
			{ID: 1, UniversityID: 7, Name: "MBA", Level: "MBA", Discipline: "Business",
				Duration: "2 Years", Fees: "N/A", Eligibility: "N/A"},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestValidate_CatchesNonDenseIDs(t *testing.T) {
	err := validate(Dataset{
		Universities: []model.UniversityRow{
			{ID: 2, Name: "Alpha University", Country: "India", City: "Chennai", Website: "N/A"},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestValidate_CatchesEmptyField(t *testing.T) {
	err := validate(Dataset{
		Universities: []model.UniversityRow{
			{ID: 1, Name: "Alpha University", Country: "India", City: "", Website: "N/A"},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntegrity)
}
