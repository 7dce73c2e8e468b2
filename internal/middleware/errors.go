package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/growwgate/internal/domain/dto"
	"github.com/guttosm/growwgate/internal/domain/errs"
)

// AbortWithError attaches err to the context and aborts with a standard error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

// ErrorHandler renders errors that handlers pushed with c.Error but did not
// answer themselves. The status comes from errs.HTTPStatus.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	status := errs.HTTPStatus(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse("Request failed", err))
}
