package grade

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

// State of a semester. It is derived from the stored target and records, never stored itself.
type State int

const (
	Uninitialized State = iota
	Recording
	Complete
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Recording:
		return "recording"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{Uninitialized, Recording, Complete} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return errors.Errorf("unknown semester state %q", text)
}

// Progress summarizes a semester.
type Progress struct {
	Semester string  `json:"semester"`
	State    State   `json:"state"`
	Recorded int     `json:"recorded"`
	Subjects int     `json:"subjects"`
	Credits  int     `json:"credits"`
	GPA      float64 `json:"gpa"`
}

// Standing is the Dean's List verdict of a semester.
type Standing struct {
	Semester  string  `json:"semester"`
	GPA       float64 `json:"gpa"`
	Qualified bool    `json:"qualified"`
	// Celebrate is true only on the first check that finds the semester qualified.
	Celebrate bool `json:"celebrate"`
}

// Tracker is the GPA engine: grade records and semester targets, and the per-semester
// UNINITIALIZED -> RECORDING -> COMPLETE state machine over them.
type Tracker struct {
	records    *table.Binding
	targets    *table.Binding
	celebrated map[string]bool
}

func NewTracker(store *table.Store) *Tracker {
	return &Tracker{
		records:    store.Bind(RecordSchema),
		targets:    store.Bind(TargetSchema),
		celebrated: make(map[string]bool),
	}
}

// Load reads both tables from the store.
func (tr *Tracker) Load(ctx context.Context) []table.Result {
	return []table.Result{tr.records.Load(ctx), tr.targets.Load(ctx)}
}

func (tr *Tracker) targetIndex(sem string) int {
	for i, r := range tr.targets.Rows() {
		if r.String("Semester") == sem {
			return i
		}
	}
	return -1
}

// Target returns the semester's target, if initialized.
func (tr *Tracker) Target(sem string) (Target, bool) {
	i := tr.targetIndex(sem)
	if i < 0 {
		return Target{}, false
	}
	r, _ := tr.targets.Row(i)
	return targetFromRow(r), true
}

// Targets returns every stored target, in table order.
func (tr *Tracker) Targets() []Target {
	rows := tr.targets.Rows()
	targets := make([]Target, 0, len(rows))
	for _, r := range rows {
		targets = append(targets, targetFromRow(r))
	}
	return targets
}

// AllRecords returns every grade record, in table order.
func (tr *Tracker) AllRecords() []Record {
	rows := tr.records.Rows()
	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, recordFromRow(r))
	}
	return records
}

// Records returns the semester's grade records, in table order.
func (tr *Tracker) Records(sem string) []Record {
	var records []Record
	for _, rec := range tr.AllRecords() {
		if rec.Semester == sem {
			records = append(records, rec)
		}
	}
	return records
}

func (tr *Tracker) State(sem string) State {
	target, ok := tr.Target(sem)
	if !ok || target.Subjects < 1 {
		// a blank or corrupt Subjects cell cannot complete a semester
		return Uninitialized
	}
	if len(tr.Records(sem)) >= target.Subjects {
		return Complete
	}
	return Recording
}

func (tr *Tracker) Progress(sem string) Progress {
	target, _ := tr.Target(sem)
	records := tr.Records(sem)
	return Progress{
		Semester: sem,
		State:    tr.State(sem),
		Recorded: len(records),
		Subjects: target.Subjects,
		Credits:  target.Credits,
		GPA:      GPA(records),
	}
}

// Initialize creates the semester's target, moving it from UNINITIALIZED to RECORDING.
func (tr *Tracker) Initialize(ctx context.Context, nt NewTarget) (Target, table.Result, error) {
	if !IsSemester(nt.Semester) {
		return Target{}, table.Result{}, errors.Wrapf(ErrUnknownSemester, "%q", nt.Semester)
	}
	var flds []core.FieldError
	if nt.Subjects < 1 {
		flds = append(flds, core.FieldError{Field: "subjects", Error: "must be at least 1"})
	}
	if nt.Credits < 1 {
		flds = append(flds, core.FieldError{Field: "credits", Error: "must be at least 1"})
	}
	if flds != nil {
		return Target{}, table.Result{}, core.NewValidationError(nil, flds...)
	}
	if tr.State(nt.Semester) != Uninitialized {
		return Target{}, table.Result{}, errors.Wrapf(ErrAlreadyInitialized, "%q", nt.Semester)
	}

	target := Target{Semester: nt.Semester, Subjects: nt.Subjects, Credits: nt.Credits}
	if i := tr.targetIndex(nt.Semester); i >= 0 {
		// overwrite the unusable row instead of shadowing it with a second one
		res, err := tr.targets.Update(ctx, i, func(r table.Row) {
			for col, v := range target.row() {
				r[col] = v
			}
		})
		return target, res, err
	}
	res := tr.targets.Append(ctx, target.row())
	return target, res, nil
}

// Record appends one subject result to a RECORDING semester.
// A full semester refuses the record with ErrTargetReached and nothing changes.
func (tr *Tracker) Record(ctx context.Context, nr NewRecord) (Record, table.Result, error) {
	if !IsSemester(nr.Semester) {
		return Record{}, table.Result{}, errors.Wrapf(ErrUnknownSemester, "%q", nr.Semester)
	}
	switch tr.State(nr.Semester) {
	case Uninitialized:
		return Record{}, table.Result{}, errors.Wrapf(ErrNotInitialized, "%q", nr.Semester)
	case Complete:
		return Record{}, table.Result{}, errors.Wrapf(ErrTargetReached, "%q", nr.Semester)
	}

	pointer, err := Pointer(nr.Grade)
	if err != nil {
		return Record{}, table.Result{}, err
	}
	if nr.Credit < MinCredit || nr.Credit > MaxCredit {
		return Record{}, table.Result{}, core.NewValidationError(nil, core.FieldError{
			Field: "credit", Error: "must be between 1 and 6",
		})
	}

	rec := Record{
		Semester: nr.Semester,
		Code:     nr.Code,
		Subject:  nr.Subject,
		Credit:   nr.Credit,
		Grade:    nr.Grade,
		Pointer:  pointer,
	}
	res := tr.records.Append(ctx, rec.row())
	return rec, res, nil
}

// Reset deletes all of a COMPLETE semester's records, then its target, returning it to UNINITIALIZED.
// The two deletions are separate store operations; both results are returned (records first).
func (tr *Tracker) Reset(ctx context.Context, sem string) ([]table.Result, error) {
	if !IsSemester(sem) {
		return nil, errors.Wrapf(ErrUnknownSemester, "%q", sem)
	}
	switch tr.State(sem) {
	case Uninitialized:
		return nil, errors.Wrapf(ErrNotInitialized, "%q", sem)
	case Recording:
		return nil, errors.Wrapf(ErrNotComplete, "%q", sem)
	}

	_, recRes := tr.records.Remove(ctx, func(r table.Row) bool { return r.String("Semester") == sem })
	_, tgtRes := tr.targets.Remove(ctx, func(r table.Row) bool { return r.String("Semester") == sem })
	delete(tr.celebrated, sem)
	return []table.Result{recRes, tgtRes}, nil
}

// SemesterGPA is the GPA of the semester's records.
func (tr *Tracker) SemesterGPA(sem string) float64 {
	return GPA(tr.Records(sem))
}

// CGPA is the GPA over every record of every semester (not the mean of semester GPAs).
func (tr *Tracker) CGPA() float64 {
	return GPA(tr.AllRecords())
}

func (tr *Tracker) Trend() []SemesterGPA {
	return Trend(tr.AllRecords())
}

// SemestersRecorded is the number of initialized semesters.
func (tr *Tracker) SemestersRecorded() int {
	return tr.targets.Len()
}

// DeansList checks a COMPLETE semester against DeansListGPA. The first qualifying check marks the
// semester as celebrated; later checks report Celebrate=false until the semester is reset.
func (tr *Tracker) DeansList(sem string) Standing {
	st := Standing{Semester: sem}
	if tr.State(sem) != Complete {
		return st
	}
	st.GPA = tr.SemesterGPA(sem)
	st.Qualified = QualifiesForDeansList(st.GPA)
	if st.Qualified && !tr.celebrated[sem] {
		tr.celebrated[sem] = true
		st.Celebrate = true
	}
	return st
}

// QualifiesForDeansList compares the unrounded GPA against DeansListGPA.
func QualifiesForDeansList(gpa float64) bool {
	return gpa >= DeansListGPA-gpaEpsilon
}

// Celebrated reports whether the semester's Dean's List celebration already happened.
func (tr *Tracker) Celebrated(sem string) bool {
	return tr.celebrated[sem]
}
