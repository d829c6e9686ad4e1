package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
	"github.com/trezcool/somo/core/task"
)

type taskApi struct {
	svc      *task.Service
	validate *validator.Validate
}

func registerTaskAPI(g *echo.Group, deps ServerDeps) {
	api := taskApi{svc: deps.Session.Tasks, validate: deps.Validate}

	tg := g.Group("/tasks")
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.DELETE("/completed", api.clearCompleted)
	tg.PUT("/:idx", api.update)
}

// TaskView is a task with its position and urgency.
type TaskView struct {
	Index int `json:"index"`
	task.Task
	Urgency string `json:"urgency"`
}

// UpdateTask sets the done status; without it, the status is toggled.
type UpdateTask struct {
	Done *bool `json:"done"`
}

// Handlers

func (api *taskApi) query(ctx echo.Context) error {
	today := core.Today(time.Now())
	tasks := api.svc.QueryAll()
	views := make([]TaskView, 0, len(tasks))
	for i, tsk := range tasks {
		views = append(views, TaskView{Index: i, Task: tsk, Urgency: tsk.Urgency(today)})
	}

	var ord Ordering
	ord.Bind(ctx)
	ord.Sort(views, compareTasks)
	return ctx.JSON(http.StatusOK, views)
}

func (api *taskApi) create(ctx echo.Context) error {
	var data task.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	tsk, res := api.svc.Create(ctx.Request().Context(), data)
	return written(ctx, http.StatusCreated, tsk, res)
}

func (api *taskApi) update(ctx echo.Context) error {
	i, err := indexParam(ctx)
	if err != nil {
		return err
	}
	var data UpdateTask
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTask")
	}

	var (
		tsk  task.Task
		res  table.Result
		rCtx = ctx.Request().Context()
	)
	if data.Done == nil {
		tsk, res, err = api.svc.Toggle(rCtx, i)
	} else {
		tsk, res, err = api.svc.SetDone(rCtx, i, *data.Done)
	}
	if err != nil {
		return err
	}
	return written(ctx, http.StatusOK, tsk, res)
}

func (api *taskApi) clearCompleted(ctx echo.Context) error {
	n, res := api.svc.ClearCompleted(ctx.Request().Context())
	return written(ctx, http.StatusOK, echo.Map{"removed": n}, res)
}
