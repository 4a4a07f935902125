package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/localhire/internal/dto"
	"github.com/ignatzorin/localhire/internal/logger"
	"github.com/ignatzorin/localhire/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Ошибки приложения отдаются клиенту как есть, остальные маскируются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, body := RenderError(err)

		entry := logger.Component("http").WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": status,
		}).WithError(err)
		if status >= http.StatusInternalServerError {
			entry.Error("request error")
		} else {
			entry.Debug("request rejected")
		}

		c.JSON(status, body)
	}
}

// RenderError переводит ошибку в HTTP статус и тело ответа.
func RenderError(err error) (int, dto.ErrorResponse) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus, dto.ErrorResponse{
			Error: appErr.Message,
			Code:  string(appErr.Code),
			Field: appErr.Field,
		}
	}
	return http.StatusInternalServerError, dto.ErrorResponse{
		Error: apperror.SubmitFailedMessage,
		Code:  string(apperror.ErrCodeInternal),
	}
}
