package grade

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/somo/core"
)

const (
	// DeansListGPA is the lowest semester GPA that makes the Dean's List.
	DeansListGPA = 3.67
	// gpaEpsilon absorbs float summation error, e.g. three A- averaging to 3.6699999999999995.
	gpaEpsilon = 1e-9

	MinCredit = 1
	MaxCredit = 6

	semesterPrefix = "Semester "
	semesterCount  = 8

	minSuggestRatio = .6
)

var (
	// Grades lists the grade scale from best to worst.
	Grades = []string{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "E"}

	scale = map[string]float64{
		"A+": 4.00,
		"A":  4.00,
		"A-": 3.67,
		"B+": 3.33,
		"B":  3.00,
		"B-": 2.67,
		"C+": 2.33,
		"C":  2.00,
		"C-": 1.67,
		"D+": 1.33,
		"D":  1.00,
		"D-": 0.67,
		"E":  0.00,
	}

	// Semesters lists the semester labels in order.
	Semesters = semesterLabels()
)

func semesterLabels() []string {
	labels := make([]string, 0, semesterCount)
	for i := 1; i <= semesterCount; i++ {
		labels = append(labels, SemesterLabel(i))
	}
	return labels
}

// SemesterLabel returns the label of the n-th semester, e.g. "Semester 3".
func SemesterLabel(n int) string {
	return semesterPrefix + strconv.Itoa(n)
}

// Pointer returns the grade point of `grade`, or ErrInvalidGrade.
func Pointer(grade string) (float64, error) {
	p, ok := scale[grade]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidGrade, "%q", grade)
	}
	return p, nil
}

func IsGrade(grade string) bool {
	_, ok := scale[grade]
	return ok
}

func IsSemester(label string) bool {
	for _, s := range Semesters {
		if s == label {
			return true
		}
	}
	return false
}

// ParseSemester accepts "Semester 3", "semester 3" or "3" and returns the canonical label.
// An unknown label yields a core.ValidationError wrapping ErrUnknownSemester, with the closest known label as a hint.
func ParseSemester(s string) (string, error) {
	s = core.CleanString(s)
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= semesterCount {
		return SemesterLabel(n), nil
	}
	for _, label := range Semesters {
		if strings.EqualFold(label, strings.Join(strings.Fields(s), " ")) {
			return label, nil
		}
	}

	msg := ErrUnknownSemester.Error()
	if hint := closestSemester(s); hint != "" {
		msg = fmt.Sprintf("%s; did you mean %q?", msg, hint)
	}
	return "", core.NewValidationError(errors.Wrapf(ErrUnknownSemester, "%q", s), core.FieldError{Field: "semester", Error: msg})
}

func closestSemester(s string) string {
	var best string
	var bestRatio float64
	in := strings.Split(strings.ToLower(s), "")
	for _, label := range Semesters {
		ratio := difflib.NewMatcher(in, strings.Split(strings.ToLower(label), "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = label, ratio
		}
	}
	if bestRatio < minSuggestRatio {
		return ""
	}
	return best
}
