package grade_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/grade"
	"github.com/trezcool/somo/core/table"
	"github.com/trezcool/somo/tests"
)

var ctx = context.Background()

func TestPointer(t *testing.T) {
	tests := []struct {
		grade   string
		want    float64
		wantErr bool
	}{
		{grade: "A+", want: 4.00},
		{grade: "A", want: 4.00},
		{grade: "A-", want: 3.67},
		{grade: "B", want: 3.00},
		{grade: "C-", want: 1.67},
		{grade: "D-", want: 0.67},
		{grade: "E", want: 0},
		{grade: "F", wantErr: true},
		{grade: "a", wantErr: true},
		{grade: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			got, err := grade.Pointer(tt.grade)
			if tt.wantErr {
				if errors.Cause(err) != grade.ErrInvalidGrade {
					t.Errorf("Pointer(%q) err = %v; want %v", tt.grade, err, grade.ErrInvalidGrade)
				}
				return
			}
			if err != nil {
				t.Fatalf("Pointer(%q) failed: %v", tt.grade, err)
			}
			if got != tt.want {
				t.Errorf("Pointer(%q) = %v; want %v", tt.grade, got, tt.want)
			}
		})
	}
}

func TestParseSemester(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		wantHint bool
		wantErr  bool
	}{
		{in: "3", want: "Semester 3"},
		{in: "Semester 8", want: "Semester 8"},
		{in: "  semester   1 ", want: "Semester 1"},
		{in: "9", wantErr: true},
		{in: "Semster 2", wantErr: true, wantHint: true},
		{in: "xyz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := grade.ParseSemester(tt.in)
			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			vErr, ok := err.(*core.ValidationError)
			if !ok {
				t.Fatalf("ParseSemester(%q) err = %T; want *core.ValidationError", tt.in, err)
			}
			if errors.Cause(vErr.Err) != grade.ErrUnknownSemester {
				t.Errorf("ParseSemester(%q) cause = %v; want %v", tt.in, vErr.Err, grade.ErrUnknownSemester)
			}
			assert.Equal(t, tt.wantHint, containsHint(vErr))
		})
	}
}

func containsHint(vErr *core.ValidationError) bool {
	for _, f := range vErr.Fields {
		if f.Field == "semester" && len(f.Error) > len(grade.ErrUnknownSemester.Error()) {
			return true
		}
	}
	return false
}

func TestGPA(t *testing.T) {
	tests := []struct {
		name    string
		records []grade.Record
		want    float64
	}{
		{name: "no records", want: 0},
		{name: "zero credits", records: []grade.Record{{Credit: 0, Pointer: 4}}, want: 0},
		{
			name: "credit weighted",
			records: []grade.Record{
				{Credit: 3, Grade: "A", Pointer: 4.00},
				{Credit: 3, Grade: "B", Pointer: 3.00},
			},
			want: 3.50,
		},
		{
			name: "heavier subject dominates",
			records: []grade.Record{
				{Credit: 1, Grade: "A", Pointer: 4.00},
				{Credit: 3, Grade: "C", Pointer: 2.00},
			},
			want: 2.50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, grade.GPA(tt.records), 1e-9)
		})
	}
}

func TestTrend_firstAppearanceOrder(t *testing.T) {
	records := []grade.Record{
		{Semester: "Semester 2", Credit: 3, Pointer: 3},
		{Semester: "Semester 1", Credit: 3, Pointer: 4},
		{Semester: "Semester 2", Credit: 1, Pointer: 4},
	}
	want := []grade.SemesterGPA{
		{Semester: "Semester 2", GPA: 3.25},
		{Semester: "Semester 1", GPA: 4},
	}
	assert.Equal(t, want, grade.Trend(records))
	assert.Empty(t, grade.Trend(nil))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.67, grade.Round2(3.666))
	assert.Equal(t, 3.66, grade.Round2(3.6649))
	assert.Equal(t, 0.0, grade.Round2(0))
}

func newTracker(t *testing.T) *grade.Tracker {
	store, _ := testutil.NewStore(t)
	tr := grade.NewTracker(store)
	for _, res := range tr.Load(ctx) {
		if !res.OK() {
			t.Fatalf("Load() failed: %v", res.Err)
		}
	}
	return tr
}

func mustInit(t *testing.T, tr *grade.Tracker, sem string, subjects int) {
	t.Helper()
	if _, _, err := tr.Initialize(ctx, grade.NewTarget{Semester: sem, Subjects: subjects, Credits: subjects * 3}); err != nil {
		t.Fatalf("Initialize(%s) failed: %v", sem, err)
	}
}

func mustRecord(t *testing.T, tr *grade.Tracker, sem, g string, credit int) {
	t.Helper()
	if _, _, err := tr.Record(ctx, grade.NewRecord{Semester: sem, Code: "C101", Subject: "Course", Credit: credit, Grade: g}); err != nil {
		t.Fatalf("Record(%s, %s) failed: %v", sem, g, err)
	}
}

func TestTracker_stateMachine(t *testing.T) {
	tr := newTracker(t)
	sem := "Semester 1"

	if got := tr.State(sem); got != grade.Uninitialized {
		t.Fatalf("State() = %v; want %v", got, grade.Uninitialized)
	}
	if _, _, err := tr.Record(ctx, grade.NewRecord{Semester: sem, Credit: 3, Grade: "A"}); errors.Cause(err) != grade.ErrNotInitialized {
		t.Errorf("Record() before init err = %v; want %v", err, grade.ErrNotInitialized)
	}

	mustInit(t, tr, sem, 3)
	if got := tr.State(sem); got != grade.Recording {
		t.Errorf("State() = %v; want %v", got, grade.Recording)
	}
	if _, _, err := tr.Initialize(ctx, grade.NewTarget{Semester: sem, Subjects: 2, Credits: 6}); errors.Cause(err) != grade.ErrAlreadyInitialized {
		t.Errorf("second Initialize() err = %v; want %v", err, grade.ErrAlreadyInitialized)
	}
	if _, err := tr.Reset(ctx, sem); errors.Cause(err) != grade.ErrNotComplete {
		t.Errorf("Reset() while recording err = %v; want %v", err, grade.ErrNotComplete)
	}

	mustRecord(t, tr, sem, "A", 3)
	mustRecord(t, tr, sem, "B", 3)
	mustRecord(t, tr, sem, "B+", 2)
	if got := tr.State(sem); got != grade.Complete {
		t.Fatalf("State() = %v; want %v", got, grade.Complete)
	}

	// a 4th record is refused and nothing changes
	_, _, err := tr.Record(ctx, grade.NewRecord{Semester: sem, Credit: 3, Grade: "A"})
	if errors.Cause(err) != grade.ErrTargetReached {
		t.Errorf("Record() past target err = %v; want %v", err, grade.ErrTargetReached)
	}
	assert.Len(t, tr.Records(sem), 3)

	results, err := tr.Reset(ctx, sem)
	if err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	assert.Len(t, results, 2)
	for _, res := range results {
		assert.True(t, res.OK())
	}
	if got := tr.State(sem); got != grade.Uninitialized {
		t.Errorf("State() after reset = %v; want %v", got, grade.Uninitialized)
	}
	assert.Empty(t, tr.Records(sem))
	assert.Equal(t, 0, tr.SemestersRecorded())
}

func TestTracker_Record_validation(t *testing.T) {
	tr := newTracker(t)
	sem := "Semester 2"
	mustInit(t, tr, sem, 2)

	tests := []struct {
		name  string
		nr    grade.NewRecord
		check func(error) bool
	}{
		{
			name:  "invalid grade",
			nr:    grade.NewRecord{Semester: sem, Credit: 3, Grade: "Z"},
			check: func(err error) bool { return errors.Cause(err) == grade.ErrInvalidGrade },
		},
		{
			name: "credit too high",
			nr:   grade.NewRecord{Semester: sem, Credit: 7, Grade: "A"},
			check: func(err error) bool {
				_, ok := err.(*core.ValidationError)
				return ok
			},
		},
		{
			name:  "unknown semester",
			nr:    grade.NewRecord{Semester: "Semester 12", Credit: 3, Grade: "A"},
			check: func(err error) bool { return errors.Cause(err) == grade.ErrUnknownSemester },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tr.Record(ctx, tt.nr)
			if err == nil || !tt.check(err) {
				t.Errorf("Record() err = %v", err)
			}
			assert.Empty(t, tr.Records(sem))
		})
	}

	rec, res, err := tr.Record(ctx, grade.NewRecord{Semester: sem, Code: "MTH", Subject: "Math", Credit: 4, Grade: "A-"})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	assert.True(t, res.OK())
	assert.Equal(t, 3.67, rec.Pointer)
}

func TestNewRecord_Validate(t *testing.T) {
	validate := testutil.NewValidator()
	grade.InitValidators(validate, core.NewTranslator())

	nr := grade.NewRecord{Semester: "4", Code: " CS1 ", Subject: "Intro", Credit: 3, Grade: " B+ "}
	if err := nr.Validate(validate); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	assert.Equal(t, "Semester 4", nr.Semester)
	assert.Equal(t, "CS1", nr.Code)
	assert.Equal(t, "B+", nr.Grade)

	bad := grade.NewRecord{Semester: "4", Credit: 0, Grade: "Q"}
	assert.Error(t, bad.Validate(validate))

	nt := grade.NewTarget{Semester: "semester 5", Subjects: 0, Credits: 10}
	assert.Error(t, nt.Validate(validate))
}

func TestTracker_CGPA(t *testing.T) {
	tr := newTracker(t)
	mustInit(t, tr, "Semester 1", 1)
	mustInit(t, tr, "Semester 2", 2)
	// Semester 1: one 1-credit A; Semester 2: two 3-credit C's.
	mustRecord(t, tr, "Semester 1", "A", 1)
	mustRecord(t, tr, "Semester 2", "C", 3)
	mustRecord(t, tr, "Semester 2", "C", 3)

	// CGPA weighs every record by credit: (4*1 + 2*6) / 7, not the mean of 4.00 and 2.00.
	assert.InDelta(t, 16.0/7.0, tr.CGPA(), 1e-9)
	assert.InDelta(t, 4.0, tr.SemesterGPA("Semester 1"), 1e-9)
	assert.InDelta(t, 2.0, tr.SemesterGPA("Semester 2"), 1e-9)
	assert.Equal(t, 2, tr.SemestersRecorded())

	trend := tr.Trend()
	assert.Len(t, trend, 2)
	assert.Equal(t, "Semester 1", trend[0].Semester)
}

func TestTracker_CGPA_equalCredits(t *testing.T) {
	tr := newTracker(t)
	mustInit(t, tr, "Semester 1", 1)
	mustInit(t, tr, "Semester 2", 3)
	mustRecord(t, tr, "Semester 1", "A", 3)
	mustRecord(t, tr, "Semester 2", "C", 3)
	mustRecord(t, tr, "Semester 2", "C", 3)
	mustRecord(t, tr, "Semester 2", "A", 3)

	// (4 + 2 + 2 + 4) * 3 / 12 = 3.00; averaging the semester GPAs would give 3.33.
	assert.InDelta(t, 3.00, tr.CGPA(), 1e-9)
}

func TestTracker_DeansList(t *testing.T) {
	tr := newTracker(t)
	sem := "Semester 3"
	mustInit(t, tr, sem, 2)
	mustRecord(t, tr, sem, "A", 3)

	// not complete yet
	if st := tr.DeansList(sem); st.Qualified || st.Celebrate {
		t.Errorf("DeansList() on recording semester = %+v", st)
	}

	mustRecord(t, tr, sem, "A-", 3)
	st := tr.DeansList(sem)
	if !st.Qualified || !st.Celebrate {
		t.Fatalf("DeansList() = %+v; want qualified and celebrate", st)
	}
	assert.True(t, tr.Celebrated(sem))

	// celebrated once; later reads keep the standing but not the celebration
	st = tr.DeansList(sem)
	assert.True(t, st.Qualified)
	assert.False(t, st.Celebrate)

	if _, err := tr.Reset(ctx, sem); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	assert.False(t, tr.Celebrated(sem))
}

func TestTracker_DeansList_threshold(t *testing.T) {
	tests := []struct {
		name   string
		grades []string
		want   bool
	}{
		{name: "exactly A-", grades: []string{"A-", "A-", "A-"}, want: true},
		{name: "just below", grades: []string{"A-", "A-", "B+"}, want: false},
		{name: "all A", grades: []string{"A", "A+", "A"}, want: true},
		{name: "3.665 displays as 3.67 but does not qualify", grades: []string{"A", "B+"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTracker(t)
			mustInit(t, tr, "Semester 1", len(tt.grades))
			for _, g := range tt.grades {
				mustRecord(t, tr, "Semester 1", g, 3)
			}
			assert.Equal(t, tt.want, tr.DeansList("Semester 1").Qualified)
		})
	}
}

func TestTracker_persistsAcrossLoads(t *testing.T) {
	store, _ := testutil.NewStore(t)
	tr := grade.NewTracker(store)
	tr.Load(ctx)
	mustInit(t, tr, "Semester 1", 2)
	mustRecord(t, tr, "Semester 1", "B", 3)

	reloaded := grade.NewTracker(store)
	for _, res := range reloaded.Load(ctx) {
		assert.Equal(t, table.StatusOK, res.Status)
	}
	assert.Equal(t, grade.Recording, reloaded.State("Semester 1"))
	recs := reloaded.Records("Semester 1")
	if assert.Len(t, recs, 1) {
		assert.Equal(t, 3, recs[0].Credit)
		assert.Equal(t, 3.0, recs[0].Pointer)
	}
	p := reloaded.Progress("Semester 1")
	assert.Equal(t, 1, p.Recorded)
	assert.Equal(t, 2, p.Subjects)
}

func TestTracker_corruptTarget(t *testing.T) {
	tests := []struct {
		name     string
		subjects string
	}{
		{name: "blank subjects", subjects: ""},
		{name: "non-numeric subjects", subjects: "many"},
		{name: "zero subjects", subjects: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, db := testutil.NewStore(t)
			db.Seed(grade.TargetSchema.Name, grade.TargetSchema.Columns, []string{"Semester 2", tt.subjects, "12"})
			tr := grade.NewTracker(store)
			tr.Load(ctx)

			if got := tr.State("Semester 2"); got != grade.Uninitialized {
				t.Errorf("State() = %v; want %v", got, grade.Uninitialized)
			}
			if st := tr.DeansList("Semester 2"); st.Qualified || st.Celebrate {
				t.Errorf("DeansList() = %+v; want no standing", st)
			}

			mustInit(t, tr, "Semester 2", 2)
			assert.Equal(t, grade.Recording, tr.State("Semester 2"))
			_, rows, _ := db.Dump(grade.TargetSchema.Name)
			assert.Equal(t, [][]string{{"Semester 2", "2", "6"}}, rows)
		})
	}
}
