package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/dashboard"
)

type dashboardApi struct {
	conf    *core.Config
	session *dashboard.Session
}

func registerDashboardAPI(g *echo.Group, deps ServerDeps) {
	api := dashboardApi{conf: deps.Conf, session: deps.Session}

	g.GET("/status", api.status)
	g.GET("/dashboard", api.metrics)
	g.GET("/notes", api.notes)
	g.PUT("/notes", api.setNotes)
	g.GET("/exam", api.exam)
	g.PUT("/exam", api.setExam)
}

type (
	Status struct {
		App       string `json:"app"`
		Build     string `json:"build"`
		Backend   string `json:"backend"`
		Connected bool   `json:"connected"`
	}

	Notes struct {
		Notes string `json:"notes"`
	}

	Exam struct {
		ExamDate  string `json:"exam_date"`
		Countdown int    `json:"countdown"`
	}
)

// Handlers

func (api *dashboardApi) status(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Status{
		App:       api.conf.AppName,
		Build:     api.conf.Build,
		Backend:   api.conf.Backend,
		Connected: api.session.Connected(),
	})
}

func (api *dashboardApi) metrics(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.session.Metrics())
}

func (api *dashboardApi) notes(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Notes{Notes: api.session.Notes()})
}

func (api *dashboardApi) setNotes(ctx echo.Context) error {
	var data Notes
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Notes")
	}
	api.session.SetNotes(data.Notes)
	return ctx.JSON(http.StatusOK, data)
}

func (api *dashboardApi) exam(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.examView())
}

func (api *dashboardApi) setExam(ctx echo.Context) error {
	var data Exam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Exam")
	}
	d, err := core.ParseDate(data.ExamDate)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "exam_date", Error: "must be a date formatted YYYY-MM-DD"})
	}
	api.session.SetExamDate(d)
	return ctx.JSON(http.StatusOK, api.examView())
}

func (api *dashboardApi) examView() Exam {
	d := api.session.ExamDate()
	return Exam{ExamDate: core.FormatDate(d), Countdown: core.DaysUntil(time.Now(), d)}
}
