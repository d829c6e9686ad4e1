package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/grade"
	"github.com/trezcool/somo/core/project"
	"github.com/trezcool/somo/core/scholarship"
	"github.com/trezcool/somo/core/table"
)

var (
	errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

	// domain errors -> status codes, matched with errors.Is
	errorCodes = []struct {
		err  error
		code int
	}{
		{table.ErrRowNotFound, http.StatusNotFound},
		{grade.ErrInvalidGrade, http.StatusBadRequest},
		{grade.ErrUnknownSemester, http.StatusBadRequest},
		{grade.ErrNotInitialized, http.StatusConflict},
		{grade.ErrAlreadyInitialized, http.StatusConflict},
		{grade.ErrTargetReached, http.StatusConflict},
		{grade.ErrNotComplete, http.StatusConflict},
		{project.ErrInvalidStatus, http.StatusBadRequest},
		{scholarship.ErrInvalidAppStatus, http.StatusBadRequest},
		{scholarship.ErrInvalidResult, http.StatusBadRequest},
	}
)

func domainCode(err error) (int, bool) {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code, true
		}
	}
	return 0, false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = core.TranslateErrors(origErr, translator)
		case *core.ValidationError:
			if flds := origErr.FieldMap(); flds != nil {
				message = flds
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			if c, ok := domainCode(err); ok {
				code = c
				message = err.Error()
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{
				"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
				"path":       ctx.Path(),
			})
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
