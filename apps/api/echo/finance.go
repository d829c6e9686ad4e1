package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core/finance"
)

type financeApi struct {
	svc      *finance.Service
	validate *validator.Validate
}

func registerFinanceAPI(g *echo.Group, deps ServerDeps) {
	api := financeApi{svc: deps.Session.Finances, validate: deps.Validate}

	fg := g.Group("/finances")
	fg.GET("", api.query)
	fg.POST("", api.create)
	fg.GET("/summary", api.summary)
}

// Handlers

func (api *financeApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.QueryAll())
}

func (api *financeApi) create(ctx echo.Context) error {
	var data finance.NewTransaction
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTransaction")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	tx, res := api.svc.Create(ctx.Request().Context(), data)
	return written(ctx, http.StatusCreated, tx, res)
}

func (api *financeApi) summary(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Summary())
}
