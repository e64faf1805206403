package export

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
)

// Sheet and column names are a compatibility contract; consumers join
// Courses.university_id against Universities.university_id.
const (
	SheetUniversities = "Universities"
	SheetCourses      = "Courses"
)

var universityColumns = []string{"university_id", "university_name", "country", "city", "website"}

var courseColumns = []string{"course_id", "university_id", "course_name", "level", "discipline", "duration", "fees", "eligibility"}

// WriteWorkbook serializes a finalized dataset as a two-sheet workbook.
func WriteWorkbook(ds Dataset, path string) error {
	file := xlsx.NewFile()

	uniSheet, err := file.AddSheet(SheetUniversities)
	if err != nil {
		return eris.Wrap(err, "workbook: add universities sheet")
	}
	writeHeader(uniSheet, universityColumns)
	for _, u := range ds.Universities {
		row := uniSheet.AddRow()
		row.AddCell().SetInt(u.ID)
		row.AddCell().Value = u.Name
		row.AddCell().Value = u.Country
		row.AddCell().Value = u.City
		row.AddCell().Value = u.Website
	}

	courseSheet, err := file.AddSheet(SheetCourses)
	if err != nil {
		return eris.Wrap(err, "workbook: add courses sheet")
	}
	writeHeader(courseSheet, courseColumns)
	for _, c := range ds.Courses {
		row := courseSheet.AddRow()
		row.AddCell().SetInt(c.ID)
		row.AddCell().SetInt(c.UniversityID)
		row.AddCell().Value = c.Name
		row.AddCell().Value = c.Level
		row.AddCell().Value = c.Discipline
		row.AddCell().Value = c.Duration
		row.AddCell().Value = c.Fees
		row.AddCell().Value = c.Eligibility
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "workbook: save %s", path)
	}
	return nil
}

func writeHeader(sheet *xlsx.Sheet, columns []string) {
	row := sheet.AddRow()
	for _, col := range columns {
		row.AddCell().Value = col
	}
}

// ReadWorkbook reads a workbook back into a finalized dataset. Used to
// verify round-trips; header rows are validated against the contract.
func ReadWorkbook(path string) (Dataset, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return Dataset{}, eris.Wrapf(err, "workbook: open %s", path)
	}

	uniRows, err := sheetRows(file, SheetUniversities, universityColumns)
	if err != nil {
		return Dataset{}, err
	}
	courseRows, err := sheetRows(file, SheetCourses, courseColumns)
	if err != nil {
		return Dataset{}, err
	}

	var ds Dataset
	for _, cells := range uniRows {
		if len(cells) < len(universityColumns) {
			return Dataset{}, eris.Errorf("workbook: short university row: %v", cells)
		}
		id, err := strconv.Atoi(cells[0])
		if err != nil {
			return Dataset{}, eris.Wrap(err, "workbook: parse university_id")
		}
		ds.Universities = append(ds.Universities, universityRowFromCells(id, cells))
	}
	for _, cells := range courseRows {
		if len(cells) < len(courseColumns) {
			return Dataset{}, eris.Errorf("workbook: short course row: %v", cells)
		}
		id, err := strconv.Atoi(cells[0])
		if err != nil {
			return Dataset{}, eris.Wrap(err, "workbook: parse course_id")
		}
		uniID, err := strconv.Atoi(cells[1])
		if err != nil {
			return Dataset{}, eris.Wrap(err, "workbook: parse university_id")
		}
		ds.Courses = append(ds.Courses, courseRowFromCells(id, uniID, cells))
	}
	return ds, nil
}

// sheetRows returns a sheet's data rows after checking its header.
func sheetRows(file *xlsx.File, name string, columns []string) ([][]string, error) {
	sheet, ok := file.Sheet[name]
	if !ok {
		return nil, eris.Errorf("workbook: sheet %q not found", name)
	}
	var rows [][]string
	for i, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		if i == 0 {
			for j, col := range columns {
				if j >= len(cells) || cells[j] != col {
					return nil, eris.Errorf("workbook: sheet %q header mismatch: %v", name, cells)
				}
			}
			continue
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func universityRowFromCells(id int, cells []string) model.UniversityRow {
	return model.UniversityRow{
		ID:      id,
		Name:    cells[1],
		Country: cells[2],
		City:    cells[3],
		Website: cells[4],
	}
}

func courseRowFromCells(id, uniID int, cells []string) model.CourseRow {
	return model.CourseRow{
		ID:           id,
		UniversityID: uniID,
		Name:         cells[2],
		Level:        cells[3],
		Discipline:   cells[4],
		Duration:     cells[5],
		Fees:         cells[6],
		Eligibility:  cells[7],
	}
}
