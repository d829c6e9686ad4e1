package schedule

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

var (
	// Weekdays lists the class days in week order.
	Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

	Schema = table.Schema{
		Name:    "Schedule",
		Columns: []string{"Day", "Time", "Subject", "Location"},
	}
)

// Class is one weekly class session.
type Class struct {
	Day      string `json:"day"`
	Time     string `json:"time"`
	Subject  string `json:"subject"`
	Location string `json:"location"`
}

func fromRow(r table.Row) Class {
	return Class{
		Day:      r.String("Day"),
		Time:     r.String("Time"),
		Subject:  r.String("Subject"),
		Location: r.String("Location"),
	}
}

func (c Class) row() table.Row {
	return table.Row{"Day": c.Day, "Time": c.Time, "Subject": c.Subject, "Location": c.Location}
}

type NewClass struct {
	Day      string `json:"day" validate:"required,weekday"`
	Time     string `json:"time" validate:"notblank"`
	Subject  string `json:"subject" validate:"notblank"`
	Location string `json:"location"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Day = core.CleanString(nc.Day)
	nc.Time = core.CleanString(nc.Time)
	nc.Subject = core.CleanString(nc.Subject)
	nc.Location = core.CleanString(nc.Location)
	return validate.Struct(nc)
}

// Day groups the classes of one weekday.
type Day struct {
	Day     string  `json:"day"`
	Classes []Class `json:"classes"`
}
