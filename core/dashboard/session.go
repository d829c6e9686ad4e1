// Package dashboard ties every tracked entity to one Record Store and computes the overview metrics.
package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/finance"
	"github.com/trezcool/somo/core/grade"
	"github.com/trezcool/somo/core/project"
	"github.com/trezcool/somo/core/schedule"
	"github.com/trezcool/somo/core/scholarship"
	"github.com/trezcool/somo/core/table"
	"github.com/trezcool/somo/core/task"
)

const defaultExamLeadDays = 60

// Schemas lists every table a Session reads and writes.
var Schemas = []table.Schema{
	task.Schema,
	project.Schema,
	finance.Schema,
	schedule.Schema,
	scholarship.Schema,
	grade.RecordSchema,
	grade.TargetSchema,
}

// LookupSchema finds a schema by table name, ignoring case.
func LookupSchema(name string) (table.Schema, bool) {
	for _, s := range Schemas {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return table.Schema{}, false
}

// Session is one user's working state. Exam date and notes live only as long as the Session.
// A Session is not safe for concurrent use.
type Session struct {
	store *table.Store
	now   func() time.Time

	Tasks        *task.Service
	Projects     *project.Service
	Finances     *finance.Service
	Schedule     *schedule.Service
	Scholarships *scholarship.Service
	Grades       *grade.Tracker

	examDate time.Time
	notes    string
}

func NewSession(store *table.Store, conf core.DashboardConfig) *Session {
	return newSession(store, conf, time.Now)
}

func newSession(store *table.Store, conf core.DashboardConfig, now func() time.Time) *Session {
	s := &Session{
		store:        store,
		now:          now,
		Tasks:        task.NewService(store),
		Projects:     project.NewService(store),
		Finances:     finance.NewService(store),
		Schedule:     schedule.NewService(store),
		Scholarships: scholarship.NewService(store),
		Grades:       grade.NewTracker(store),
		examDate:     conf.ExamDate,
	}
	if s.examDate.IsZero() {
		lead := conf.ExamLeadDays
		if lead <= 0 {
			lead = defaultExamLeadDays
		}
		s.examDate = core.Today(now()).AddDate(0, 0, lead)
	}
	return s
}

// Load reads every table, provisioning missing ones.
func (s *Session) Load(ctx context.Context) []table.Result {
	results := []table.Result{
		s.Tasks.Load(ctx),
		s.Projects.Load(ctx),
		s.Finances.Load(ctx),
		s.Schedule.Load(ctx),
		s.Scholarships.Load(ctx),
	}
	return append(results, s.Grades.Load(ctx)...)
}

// Connected reports whether the backing store is reachable.
func (s *Session) Connected() bool {
	return s.store.Connected()
}

func (s *Session) ExamDate() time.Time { return s.examDate }

func (s *Session) SetExamDate(d time.Time) { s.examDate = core.Today(d) }

func (s *Session) Notes() string { return s.notes }

func (s *Session) SetNotes(notes string) { s.notes = notes }

// Metrics is the dashboard overview.
type Metrics struct {
	PendingTasks      int            `json:"pending_tasks"`
	PriorityCounts    map[string]int `json:"priority_counts"`
	Balance           float64        `json:"balance"`
	CGPA              float64        `json:"cgpa"`
	SemestersRecorded int            `json:"semesters_recorded"`
	ExamDate          string         `json:"exam_date"`
	ExamCountdown     int            `json:"exam_countdown"`
	Focus             []task.Focus   `json:"focus"`
	Connected         bool           `json:"connected"`
}

func (s *Session) Metrics() Metrics {
	return Metrics{
		PendingTasks:      s.Tasks.PendingCount(),
		PriorityCounts:    s.Tasks.PriorityCounts(),
		Balance:           s.Finances.Balance(),
		CGPA:              grade.Round2(s.Grades.CGPA()),
		SemestersRecorded: s.Grades.SemestersRecorded(),
		ExamDate:          core.FormatDate(s.examDate),
		ExamCountdown:     core.DaysUntil(s.now(), s.examDate),
		Focus:             s.Tasks.Focus(),
		Connected:         s.Connected(),
	}
}
