package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/telemedika/teleconsult-api/internal/handler"
	apperrors "github.com/telemedika/teleconsult-api/pkg/errors"
)

// ErrorHandler converts errors attached to the context into the standard
// response envelope. Handlers push malformed-request errors here with
// gin.ErrorTypeBind; anything else unhandled surfaces as a logged 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		last := c.Errors.Last()

		if last.Type == gin.ErrorTypeBind {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(last.Error()))
			return
		}

		if appErr, ok := apperrors.AsAppError(last.Err); ok {
			c.JSON(appErr.HTTPStatus(), handler.NewErrorResponse(appErr.Message))
			return
		}

		log.Error().
			Err(last.Err).
			Str("request_id", GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("request error")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
	}
}
