package grade

import (
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

var (
	RecordSchema = table.Schema{
		Name:    "CGPA",
		Columns: []string{"Semester", "Code", "Subject", "Credit", "Grade", "Pointer"},
		Floats:  []string{"Pointer"},
	}
	TargetSchema = table.Schema{
		Name:    "Targets",
		Columns: []string{"Semester", "Subjects", "Credits"},
	}
)

// Record is one completed course outcome. Pointer is always the scale value of Grade.
type Record struct {
	Semester string  `json:"semester"`
	Code     string  `json:"code"`
	Subject  string  `json:"subject"`
	Credit   int     `json:"credit"`
	Grade    string  `json:"grade"`
	Pointer  float64 `json:"pointer"`
}

func recordFromRow(r table.Row) Record {
	return Record{
		Semester: r.String("Semester"),
		Code:     r.String("Code"),
		Subject:  r.String("Subject"),
		Credit:   r.Int("Credit"),
		Grade:    r.String("Grade"),
		Pointer:  r.Float("Pointer"),
	}
}

func (rec Record) row() table.Row {
	return table.Row{
		"Semester": rec.Semester,
		"Code":     rec.Code,
		"Subject":  rec.Subject,
		"Credit":   strconv.Itoa(rec.Credit),
		"Grade":    rec.Grade,
		"Pointer":  rec.Pointer,
	}
}

// Target declares how many subject records complete a semester. Credits is informational.
type Target struct {
	Semester string `json:"semester"`
	Subjects int    `json:"subjects"`
	Credits  int    `json:"credits"`
}

func targetFromRow(r table.Row) Target {
	return Target{
		Semester: r.String("Semester"),
		Subjects: r.Int("Subjects"),
		Credits:  r.Int("Credits"),
	}
}

func (t Target) row() table.Row {
	return table.Row{
		"Semester": t.Semester,
		"Subjects": strconv.Itoa(t.Subjects),
		"Credits":  strconv.Itoa(t.Credits),
	}
}

// NewTarget contains information needed to initialize a semester.
type NewTarget struct {
	Semester string `json:"semester" validate:"required,semester"`
	Subjects int    `json:"subjects" validate:"min=1"`
	Credits  int    `json:"credits" validate:"min=1"`
}

func (nt *NewTarget) Validate(validate *validator.Validate) error {
	if sem, err := ParseSemester(nt.Semester); err == nil {
		nt.Semester = sem
	} else {
		return err
	}
	return validate.Struct(nt)
}

// NewRecord contains information needed to record a subject result.
type NewRecord struct {
	Semester string `json:"semester" validate:"required,semester"`
	Code     string `json:"code"`
	Subject  string `json:"subject"`
	Credit   int    `json:"credit" validate:"min=1,max=6"`
	Grade    string `json:"grade" validate:"required,grade"`
}

func (nr *NewRecord) Validate(validate *validator.Validate) error {
	if sem, err := ParseSemester(nr.Semester); err == nil {
		nr.Semester = sem
	} else {
		return err
	}
	nr.Code = core.CleanString(nr.Code)
	nr.Subject = core.CleanString(nr.Subject)
	nr.Grade = core.CleanString(nr.Grade)
	return validate.Struct(nr)
}

// SemesterGPA is one point of the GPA trend.
type SemesterGPA struct {
	Semester string  `json:"semester"`
	GPA      float64 `json:"gpa"`
}

// GPA is the credit-weighted mean pointer of `records`; 0 when they carry no credit.
func GPA(records []Record) float64 {
	var points, credits float64
	for _, rec := range records {
		points += rec.Pointer * float64(rec.Credit)
		credits += float64(rec.Credit)
	}
	if credits <= 0 {
		return 0
	}
	return points / credits
}

// Trend computes one GPA per semester, semesters in order of first appearance.
func Trend(records []Record) []SemesterGPA {
	var order []string
	groups := make(map[string][]Record)
	for _, rec := range records {
		if _, ok := groups[rec.Semester]; !ok {
			order = append(order, rec.Semester)
		}
		groups[rec.Semester] = append(groups[rec.Semester], rec)
	}
	trend := make([]SemesterGPA, 0, len(order))
	for _, sem := range order {
		trend = append(trend, SemesterGPA{Semester: sem, GPA: GPA(groups[sem])})
	}
	return trend
}

// Round2 rounds a GPA to the 2 decimals it is displayed with.
func Round2(gpa float64) float64 {
	return math.Round(gpa*100) / 100
}
