package echoapi

import (
	"sync"

	"github.com/labstack/echo/v4"
)

func serialize() echo.MiddlewareFunc {
	var mu sync.Mutex
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			mu.Lock()
			defer mu.Unlock()
			return next(ctx)
		}
	}
}
