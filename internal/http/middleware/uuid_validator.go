package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/localhire/internal/dto"
)

// UUIDValidator проверяет, что параметр с указанным именем является валидным UUID,
// и кладёт разобранное значение в контекст под тем же именем.
// Использование: router.GET("/jobs/:id", UUIDValidator("id"), handler.GetJob)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: paramName + " is required",
				Code:  "BAD_REQUEST",
				Field: paramName,
			})
			return
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: paramName + " must be a valid UUID",
				Code:  "BAD_REQUEST",
				Field: paramName,
			})
			return
		}

		c.Set(paramName, id)
		c.Next()
	}
}
