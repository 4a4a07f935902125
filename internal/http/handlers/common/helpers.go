package common

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/localhire/internal/dto"
	"github.com/ignatzorin/localhire/internal/pkg/apperror"
	"github.com/ignatzorin/localhire/internal/service"
)

// ParseUUIDParam parses UUID from URL parameter.
// Prefers the value already parsed by middleware.UUIDValidator.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	if raw, ok := c.Get(paramName); ok {
		if id, ok := raw.(uuid.UUID); ok {
			return id, nil
		}
	}

	parsed, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		return uuid.Nil, apperror.Validation(paramName, paramName+" must be a valid UUID")
	}
	return parsed, nil
}

// BindJSON binds JSON request body, a malformed body is a validation error
func BindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "invalid request body")
	}
	return nil
}

// BindForm binds multipart form fields
func BindForm(c *gin.Context, req any) error {
	if err := c.ShouldBind(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "invalid form data")
	}
	return nil
}

// BindQuery binds query parameters
func BindQuery(c *gin.Context, req any) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "invalid query parameters")
	}
	return nil
}

// FormFile opens an optional multipart file. Returns nil upload when the field is absent.
// The caller must call the returned close function.
func FormFile(c *gin.Context, field string) (*service.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, apperror.Wrap(err, apperror.ErrCodeBadRequest, "invalid form data")
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*service.Upload, func(), error) {
	file, err := header.Open()
	if err != nil {
		return nil, func() {}, apperror.Wrap(err, apperror.ErrCodeBadRequest, "could not read uploaded file")
	}
	return &service.Upload{Name: header.Filename, Reader: file}, func() { _ = file.Close() }, nil
}

// RespondError sends a standardized error response
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// Fail hands the error to middleware.ErrorHandler
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
