package scholarship

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

// Application statuses
const (
	AppNotStarted = "Not Started"
	AppInProgress = "In Progress"
	AppSubmitted  = "Application Submitted"
)

// Results
const (
	ResultPending      = "Pending Result"
	ResultInterview    = "Interview Stage"
	ResultSuccessful   = "Successful"
	ResultUnsuccessful = "Unsuccessful"
)

var (
	Bonds       = []string{"Yes", "No", "Unsure"}
	AppStatuses = []string{AppNotStarted, AppInProgress, AppSubmitted}
	Results     = []string{ResultPending, ResultInterview, ResultSuccessful, ResultUnsuccessful}

	Schema = table.Schema{
		Name:    "Scholarships",
		Columns: []string{"Scholarship Name", "Bond", "Due Date", "App Status", "Result"},
	}
)

type Scholarship struct {
	Name      string    `json:"name"`
	Bond      string    `json:"bond"`
	DueDate   time.Time `json:"due_date"`
	AppStatus string    `json:"app_status"`
	Result    string    `json:"result"`
}

func fromRow(r table.Row) Scholarship {
	return Scholarship{
		Name:      r.String("Scholarship Name"),
		Bond:      r.String("Bond"),
		DueDate:   r.Date("Due Date"),
		AppStatus: r.String("App Status"),
		Result:    r.String("Result"),
	}
}

func (s Scholarship) row() table.Row {
	return table.Row{
		"Scholarship Name": s.Name,
		"Bond":             s.Bond,
		"Due Date":         core.FormatDate(s.DueDate),
		"App Status":       s.AppStatus,
		"Result":           s.Result,
	}
}

// Decided reports whether the application got a final answer.
func (s Scholarship) Decided() bool {
	return s.Result == ResultSuccessful || s.Result == ResultUnsuccessful
}

// NewScholarship contains information needed to track an application.
// AppStatus and Result default to Not Started and Pending Result.
type NewScholarship struct {
	Name      string `json:"name" validate:"notblank"`
	Bond      string `json:"bond" validate:"required,bond"`
	DueDate   string `json:"due_date" validate:"omitempty,date"`
	AppStatus string `json:"app_status" validate:"required,app_status"`
	Result    string `json:"result" validate:"required,result"`
}

func (ns *NewScholarship) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Bond = core.CleanString(ns.Bond)
	ns.DueDate = core.CleanString(ns.DueDate)
	if ns.AppStatus = core.CleanString(ns.AppStatus); ns.AppStatus == "" {
		ns.AppStatus = AppNotStarted
	}
	if ns.Result = core.CleanString(ns.Result); ns.Result == "" {
		ns.Result = ResultPending
	}
	return validate.Struct(ns)
}

// UpdateScholarship changes the status and/or result; empty fields are left unchanged.
type UpdateScholarship struct {
	AppStatus string `json:"app_status" validate:"omitempty,app_status"`
	Result    string `json:"result" validate:"omitempty,result"`
}

func (us *UpdateScholarship) Validate(validate *validator.Validate) error {
	us.AppStatus = core.CleanString(us.AppStatus)
	us.Result = core.CleanString(us.Result)
	return validate.Struct(us)
}

// Change reports what an update did to the result.
type Change struct {
	Scholarship   Scholarship `json:"scholarship"`
	ResultChanged bool        `json:"result_changed"`
	PrevResult    string      `json:"prev_result"`
}
