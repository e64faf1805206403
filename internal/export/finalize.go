// Package export assigns surrogate keys, deduplicates and validates
// the in-memory dataset, and writes the workbook.
package export

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/normalize"
)

// ErrIntegrity marks a finalize invariant violation. It is fatal: the
// workbook must not be written when the dataset cannot be trusted.
var ErrIntegrity = eris.New("export: integrity violation")

// Dataset is the finalized pair of relational tables. Nothing mutates
// it after Finalize returns; the workbook write is pure serialization.
type Dataset struct {
	Universities []model.UniversityRow
	Courses      []model.CourseRow
}

// Finalize deduplicates both record sets, assigns dense 1-based
// surrogate keys, drops orphaned courses, and validates the result.
func Finalize(universities []model.University, courses []model.Course) (Dataset, error) {
	cleanedUnis := make([]model.University, 0, len(universities))
	for _, u := range universities {
		cleanedUnis = append(cleanedUnis, cleanUniversity(u))
	}
	cleanedUnis = normalize.Dedupe(cleanedUnis, func(u model.University) string {
		return strings.ToLower(u.Name)
	})

	var ds Dataset
	idByName := make(map[string]int, len(cleanedUnis))
	for i, u := range cleanedUnis {
		id := i + 1
		idByName[strings.ToLower(u.Name)] = id
		ds.Universities = append(ds.Universities, model.UniversityRow{
			ID:      id,
			Name:    u.Name,
			Country: u.Country,
			City:    u.City,
			Website: u.Website,
		})
	}

	cleanedCourses := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		cleanedCourses = append(cleanedCourses, cleanCourse(c))
	}
	cleanedCourses = normalize.Dedupe(cleanedCourses, func(c model.Course) string {
		return strings.ToLower(c.UniversityName) + "\x00" +
			strings.ToLower(c.Name) + "\x00" +
			strings.ToLower(c.Level)
	})

	// Final integrity pass: only courses whose university survived
	// dedup get a row. Ids are assigned after filtering so the range
	// stays dense.
	for _, c := range cleanedCourses {
		uniID, ok := idByName[strings.ToLower(c.UniversityName)]
		if !ok {
			continue
		}
		ds.Courses = append(ds.Courses, model.CourseRow{
			ID:           len(ds.Courses) + 1,
			UniversityID: uniID,
			Name:         c.Name,
			Level:        c.Level,
			Discipline:   c.Discipline,
			Duration:     c.Duration,
			Fees:         c.Fees,
			Eligibility:  c.Eligibility,
		})
	}

	if err := validate(ds); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func cleanUniversity(u model.University) model.University {
	website := normalize.Clean(u.Website)
	if !strings.HasPrefix(website, "http") {
		website = model.Sentinel
	}
	return model.University{
		Name:    normalize.Clean(u.Name),
		Country: normalize.TitleCase(u.Country),
		City:    normalize.TitleCase(u.City),
		Website: website,
	}
}

func cleanCourse(c model.Course) model.Course {
	return model.Course{
		UniversityName: normalize.Clean(c.UniversityName),
		Name:           normalize.Clean(c.Name),
		Level:          normalize.Clean(c.Level),
		Discipline:     normalize.TitleCase(c.Discipline),
		Duration:       normalize.Clean(c.Duration),
		Fees:           normalize.Clean(c.Fees),
		Eligibility:    normalize.Clean(c.Eligibility),
	}
}

// validate asserts the no-null-key and referential-integrity
// invariants. A violation here is a logic defect, not input noise.
func validate(ds Dataset) error {
	ids := make(map[int]struct{}, len(ds.Universities))
	for i, u := range ds.Universities {
		if u.ID != i+1 {
			return eris.Wrapf(ErrIntegrity, "university id %d at position %d is not dense", u.ID, i)
		}
		if u.Name == "" || u.Name == model.Sentinel {
			return eris.Wrapf(ErrIntegrity, "university %d has no name", u.ID)
		}
		if u.Country == "" || u.City == "" || u.Website == "" {
			return eris.Wrapf(ErrIntegrity, "university %d has an empty field", u.ID)
		}
		ids[u.ID] = struct{}{}
	}

	for i, c := range ds.Courses {
		if c.ID != i+1 {
			return eris.Wrapf(ErrIntegrity, "course id %d at position %d is not dense", c.ID, i)
		}
		if _, ok := ids[c.UniversityID]; !ok {
			return eris.Wrapf(ErrIntegrity, "course %d references missing university %d", c.ID, c.UniversityID)
		}
		for _, field := range []string{c.Name, c.Level, c.Discipline, c.Duration, c.Fees, c.Eligibility} {
			if field == "" {
				return eris.Wrapf(ErrIntegrity, "course %d has an empty field", c.ID)
			}
		}
	}
	return nil
}
