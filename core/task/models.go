package task

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

// Priorities
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Urgency levels, by days left until the deadline.
const (
	UrgencyOverdue = "Overdue"
	UrgencyUrgent  = "Urgent"
	UrgencySoon    = "Soon"
	UrgencyChill   = "Chill"

	urgentDays = 3
	soonDays   = 7
	// FocusDays bounds "today's focus": pending tasks due within this many days (overdue included).
	FocusDays = urgentDays
)

var (
	Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

	Schema = table.Schema{
		Name:    "Tasks",
		Columns: []string{"Status", "Task", "Subject", "Deadline", "Priority", "Notes"},
		Bools:   []string{"Status"},
	}
)

type Task struct {
	Done     bool      `json:"done"`
	Task     string    `json:"task"`
	Subject  string    `json:"subject"`
	Deadline time.Time `json:"deadline"`
	Priority string    `json:"priority"`
	Notes    string    `json:"notes"`
}

func fromRow(r table.Row) Task {
	return Task{
		Done:     r.Bool("Status"),
		Task:     r.String("Task"),
		Subject:  r.String("Subject"),
		Deadline: r.Date("Deadline"),
		Priority: r.String("Priority"),
		Notes:    r.String("Notes"),
	}
}

func (t Task) row() table.Row {
	return table.Row{
		"Status":   t.Done,
		"Task":     t.Task,
		"Subject":  t.Subject,
		"Deadline": core.FormatDate(t.Deadline),
		"Priority": t.Priority,
		"Notes":    t.Notes,
	}
}

// DaysLeft counts whole days from `today` to the deadline; negative when overdue.
func (t Task) DaysLeft(today time.Time) int {
	return core.DaysUntil(today, t.Deadline)
}

// Urgency classifies the task by days left. Tasks without a deadline are Chill.
func (t Task) Urgency(today time.Time) string {
	if t.Deadline.IsZero() {
		return UrgencyChill
	}
	switch days := t.DaysLeft(today); {
	case days < 0:
		return UrgencyOverdue
	case days <= urgentDays:
		return UrgencyUrgent
	case days <= soonDays:
		return UrgencySoon
	default:
		return UrgencyChill
	}
}

// NewTask contains information needed to add a task.
type NewTask struct {
	Task     string `json:"task" validate:"notblank"`
	Subject  string `json:"subject"`
	Deadline string `json:"deadline" validate:"omitempty,date"`
	Priority string `json:"priority" validate:"required,priority"`
	Notes    string `json:"notes"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	nt.Task = core.CleanString(nt.Task)
	nt.Subject = core.CleanString(nt.Subject)
	nt.Deadline = core.CleanString(nt.Deadline)
	nt.Priority = core.CleanString(nt.Priority)
	if nt.Priority == "" {
		nt.Priority = PriorityMedium
	}
	return validate.Struct(nt)
}

// Focus is a pending task due soon, with the days left to its deadline.
type Focus struct {
	Index    int    `json:"index"`
	Task     Task   `json:"task"`
	DaysLeft int    `json:"days_left"`
	Urgency  string `json:"urgency"`
}
