package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"go-applytrack-backend/internal/delivery/http/response"
	"go-applytrack-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the context into the JSON
// envelope. AppErrors keep their status and field details; anything else
// is logged server-side and surfaces as a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			var details interface{}
			if len(appErr.Fields) > 0 {
				details = appErr.Fields
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}

		reqID, _ := c.Get("RequestID")
		slog.Error("unhandled request error",
			"error", err,
			"path", c.FullPath(),
			"request_id", reqID,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
