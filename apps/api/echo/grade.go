package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core/grade"
)

type gradeApi struct {
	tracker  *grade.Tracker
	validate *validator.Validate
}

func registerGradeAPI(g *echo.Group, deps ServerDeps) {
	api := gradeApi{tracker: deps.Session.Grades, validate: deps.Validate}

	cg := g.Group("/cgpa")
	cg.GET("", api.overview)

	sg := cg.Group("/semesters/:sem")
	sg.GET("", api.semester)
	sg.DELETE("", api.reset)
	sg.POST("/target", api.initialize)
	sg.POST("/records", api.record)
}

type (
	Overview struct {
		CGPA              float64             `json:"cgpa"`
		SemestersRecorded int                 `json:"semesters_recorded"`
		Trend             []grade.SemesterGPA `json:"trend"`
		Semesters         []grade.Progress    `json:"semesters"`
	}

	SemesterView struct {
		grade.Progress
		Records  []grade.Record  `json:"records"`
		Standing *grade.Standing `json:"standing,omitempty"`
	}

	RecordView struct {
		Record   grade.Record    `json:"record"`
		Progress grade.Progress  `json:"progress"`
		Standing *grade.Standing `json:"standing,omitempty"`
	}
)

// view builds the semester view; the Dean's List standing is only checked once the semester is complete.
func (api *gradeApi) view(sem string) SemesterView {
	v := SemesterView{Progress: api.tracker.Progress(sem), Records: api.tracker.Records(sem)}
	if v.Records == nil {
		v.Records = []grade.Record{}
	}
	if v.State == grade.Complete {
		st := api.tracker.DeansList(sem)
		v.Standing = &st
	}
	return v
}

// Handlers

func (api *gradeApi) overview(ctx echo.Context) error {
	ov := Overview{
		CGPA:              grade.Round2(api.tracker.CGPA()),
		SemestersRecorded: api.tracker.SemestersRecorded(),
		Trend:             api.tracker.Trend(),
		Semesters:         make([]grade.Progress, 0),
	}
	for _, t := range api.tracker.Targets() {
		ov.Semesters = append(ov.Semesters, api.tracker.Progress(t.Semester))
	}
	return ctx.JSON(http.StatusOK, ov)
}

func (api *gradeApi) semester(ctx echo.Context) error {
	sem, err := grade.ParseSemester(ctx.Param("sem"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.view(sem))
}

func (api *gradeApi) initialize(ctx echo.Context) error {
	var data grade.NewTarget
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTarget")
	}
	data.Semester = ctx.Param("sem")
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	target, res, err := api.tracker.Initialize(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return written(ctx, http.StatusCreated, target, res)
}

func (api *gradeApi) record(ctx echo.Context) error {
	var data grade.NewRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	data.Semester = ctx.Param("sem")
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	rec, res, err := api.tracker.Record(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	v := api.view(data.Semester)
	return written(ctx, http.StatusCreated, RecordView{Record: rec, Progress: v.Progress, Standing: v.Standing}, res)
}

func (api *gradeApi) reset(ctx echo.Context) error {
	sem, err := grade.ParseSemester(ctx.Param("sem"))
	if err != nil {
		return err
	}
	results, err := api.tracker.Reset(ctx.Request().Context(), sem)
	if err != nil {
		return err
	}
	return written(ctx, http.StatusOK, api.tracker.Progress(sem), results...)
}
