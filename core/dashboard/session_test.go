package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/finance"
	"github.com/trezcool/somo/core/grade"
	"github.com/trezcool/somo/core/table"
	"github.com/trezcool/somo/core/task"
	dummydb "github.com/trezcool/somo/storage/dummy"
	"github.com/trezcool/somo/tests"
)

var (
	ctx = context.Background()
	now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
)

func fixedNow() time.Time { return now }

func TestSession_Load_provisionsEveryTable(t *testing.T) {
	store, db := testutil.NewStore(t)
	s := newSession(store, core.DashboardConfig{}, fixedNow)

	results := s.Load(ctx)
	assert.Len(t, results, 7)
	for _, res := range results {
		assert.Equal(t, table.StatusCreated, res.Status, res.Table)
	}
	for _, name := range []string{"Tasks", "Assignments", "Finances", "Schedule", "Scholarships", "CGPA", "Targets"} {
		_, _, ok := db.Dump(name)
		assert.True(t, ok, name)
	}
	assert.True(t, s.Connected())
}

func TestSession_examDate(t *testing.T) {
	store, _ := testutil.NewStore(t)

	s := newSession(store, core.DashboardConfig{}, fixedNow)
	assert.Equal(t, "2026-05-09", core.FormatDate(s.ExamDate()))
	assert.Equal(t, 60, s.Metrics().ExamCountdown)

	s = newSession(store, core.DashboardConfig{ExamLeadDays: 10}, fixedNow)
	assert.Equal(t, 10, s.Metrics().ExamCountdown)

	s.SetExamDate(time.Date(2026, 3, 12, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, s.Metrics().ExamCountdown)
}

func TestSession_Metrics(t *testing.T) {
	store, _ := testutil.NewStore(t)
	s := newSession(store, core.DashboardConfig{}, fixedNow)
	s.Load(ctx)

	s.Tasks.Create(ctx, task.NewTask{Task: "Essay", Priority: task.PriorityHigh})
	s.Tasks.Create(ctx, task.NewTask{Task: "Lab", Priority: task.PriorityLow})
	s.Finances.Create(ctx, finance.NewTransaction{Type: finance.TypeIncome, Category: "Business", Amount: 100})
	s.Finances.Create(ctx, finance.NewTransaction{Type: finance.TypeExpense, Category: "Food", Amount: 30})
	s.Grades.Initialize(ctx, grade.NewTarget{Semester: "Semester 1", Subjects: 3, Credits: 9})
	for _, g := range []string{"A", "A-", "B+"} {
		s.Grades.Record(ctx, grade.NewRecord{Semester: "Semester 1", Credit: 3, Grade: g})
	}
	s.SetNotes("bring calculator")

	m := s.Metrics()
	assert.Equal(t, 2, m.PendingTasks)
	assert.Equal(t, 70.0, m.Balance)
	assert.Equal(t, 3.67, m.CGPA)
	assert.Equal(t, 1, m.SemestersRecorded)
	assert.True(t, m.Connected)
	assert.Equal(t, "bring calculator", s.Notes())
}

func TestSession_unavailableStore(t *testing.T) {
	db, _ := dummydb.Open()
	db.FailOn(dummydb.OpFetch, errors.New("offline"))
	store := table.NewStore(table.Static(db), testutil.Logger())
	s := newSession(store, core.DashboardConfig{}, fixedNow)

	for _, res := range s.Load(ctx) {
		assert.False(t, res.OK())
	}
	m := s.Metrics()
	assert.False(t, m.Connected)
	assert.Zero(t, m.PendingTasks)
	assert.Zero(t, m.CGPA)
}
