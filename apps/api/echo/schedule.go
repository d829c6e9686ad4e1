package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core/schedule"
)

type scheduleApi struct {
	svc      *schedule.Service
	validate *validator.Validate
}

func registerScheduleAPI(g *echo.Group, deps ServerDeps) {
	api := scheduleApi{svc: deps.Session.Schedule, validate: deps.Validate}

	sg := g.Group("/schedule")
	sg.GET("", api.week)
	sg.POST("", api.create)
}

// Handlers

func (api *scheduleApi) week(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Week())
}

func (api *scheduleApi) create(ctx echo.Context) error {
	var data schedule.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	c, res := api.svc.Create(ctx.Request().Context(), data)
	return written(ctx, http.StatusCreated, c, res)
}
