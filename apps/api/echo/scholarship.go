package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core/scholarship"
)

type scholarshipApi struct {
	svc      *scholarship.Service
	validate *validator.Validate
}

func registerScholarshipAPI(g *echo.Group, deps ServerDeps) {
	api := scholarshipApi{svc: deps.Session.Scholarships, validate: deps.Validate}

	sg := g.Group("/scholarships")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.PUT("/:idx", api.update)
}

// Handlers

func (api *scholarshipApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.QueryAll())
}

func (api *scholarshipApi) create(ctx echo.Context) error {
	var data scholarship.NewScholarship
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewScholarship")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	s, res := api.svc.Create(ctx.Request().Context(), data)
	return written(ctx, http.StatusCreated, s, res)
}

func (api *scholarshipApi) update(ctx echo.Context) error {
	i, err := indexParam(ctx)
	if err != nil {
		return err
	}
	var data scholarship.UpdateScholarship
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateScholarship")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	chg, res, err := api.svc.Update(ctx.Request().Context(), i, data)
	if err != nil {
		return err
	}
	return written(ctx, http.StatusOK, chg, res)
}
