package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core/project"
)

type projectApi struct {
	svc      *project.Service
	validate *validator.Validate
}

func registerProjectAPI(g *echo.Group, deps ServerDeps) {
	api := projectApi{svc: deps.Session.Projects, validate: deps.Validate}

	pg := g.Group("/projects")
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.PUT("/:idx", api.update)
}

// Handlers

func (api *projectApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.QueryAll())
}

func (api *projectApi) create(ctx echo.Context) error {
	var data project.NewProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	prj, res := api.svc.Create(ctx.Request().Context(), data)
	return written(ctx, http.StatusCreated, prj, res)
}

func (api *projectApi) update(ctx echo.Context) error {
	i, err := indexParam(ctx)
	if err != nil {
		return err
	}
	var data project.UpdateStatus
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStatus")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	prj, res, err := api.svc.SetStatus(ctx.Request().Context(), i, data.Status)
	if err != nil {
		return err
	}
	return written(ctx, http.StatusOK, prj, res)
}
