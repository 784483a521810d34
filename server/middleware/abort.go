package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/simplemovies/errors"
)

// abort stops the chain with an AppError envelope.
func abort(c *gin.Context, appErr *apperrors.AppError) {
	_ = c.Error(appErr)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
