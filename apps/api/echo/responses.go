package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/somo/core/table"
)

// StoreResult reports how a write reached the backing store. A failed save does not fail the request.
type StoreResult struct {
	Table  string `json:"table"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func newStoreResult(res table.Result) StoreResult {
	sr := StoreResult{Table: res.Table, Status: res.Status.String()}
	if res.Err != nil {
		sr.Error = res.Err.Error()
	}
	return sr
}

type WriteResponse struct {
	Data  interface{}   `json:"data"`
	Store []StoreResult `json:"store"`
}

func written(ctx echo.Context, code int, data interface{}, results ...table.Result) error {
	resp := WriteResponse{Data: data, Store: make([]StoreResult, 0, len(results))}
	for _, res := range results {
		resp.Store = append(resp.Store, newStoreResult(res))
	}
	return ctx.JSON(code, resp)
}

// indexParam reads the `:idx` row index; anything but a non-negative integer is not found.
func indexParam(ctx echo.Context) (int, error) {
	i, err := strconv.Atoi(ctx.Param("idx"))
	if err != nil || i < 0 {
		return 0, errHttpNotFound
	}
	return i, nil
}
