package project

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

// Progress statuses
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

var (
	Statuses = []string{StatusNotStarted, StatusInProgress, StatusCompleted}

	Schema = table.Schema{
		Name:    "Assignments",
		Columns: []string{"Project Name", "Subject", "Team Members", "Status", "Due Date"},
	}
)

// Project is a group assignment.
type Project struct {
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Members []string  `json:"members"`
	Status  string    `json:"status"`
	DueDate time.Time `json:"due_date"`
}

func fromRow(r table.Row) Project {
	return Project{
		Name:    r.String("Project Name"),
		Subject: r.String("Subject"),
		Members: SplitMembers(r.String("Team Members")),
		Status:  r.String("Status"),
		DueDate: r.Date("Due Date"),
	}
}

func (p Project) row() table.Row {
	return table.Row{
		"Project Name": p.Name,
		"Subject":      p.Subject,
		"Team Members": strings.Join(p.Members, ", "),
		"Status":       p.Status,
		"Due Date":     core.FormatDate(p.DueDate),
	}
}

// SplitMembers reads a comma separated member list, dropping blanks.
func SplitMembers(s string) []string {
	members := make([]string, 0)
	for _, m := range strings.Split(s, ",") {
		if m = core.CleanString(m); m != "" {
			members = append(members, m)
		}
	}
	return members
}

// NewProject contains information needed to add a project. Members is comma separated.
type NewProject struct {
	Name    string `json:"name" validate:"notblank"`
	Subject string `json:"subject"`
	Members string `json:"members"`
	DueDate string `json:"due_date" validate:"omitempty,date"`
}

func (np *NewProject) Validate(validate *validator.Validate) error {
	np.Name = core.CleanString(np.Name)
	np.Subject = core.CleanString(np.Subject)
	np.DueDate = core.CleanString(np.DueDate)
	return validate.Struct(np)
}

// UpdateStatus sets a project's progress status.
type UpdateStatus struct {
	Status string `json:"status" validate:"required,project_status"`
}

func (us *UpdateStatus) Validate(validate *validator.Validate) error {
	us.Status = core.CleanString(us.Status)
	return validate.Struct(us)
}
