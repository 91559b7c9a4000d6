package handler

import (
	"github.com/blues/sps/internal/errs"
	"github.com/blues/sps/internal/logger"
	"github.com/gin-gonic/gin"
)

// SuccessResponse writes the success envelope.
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the error envelope.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// DomainError maps a logic-layer error onto its HTTP status. Errors without
// a domain kind are logged and reported as 500.
func DomainError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	if status == 500 {
		logger.Error("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		ErrorResponse(c, status, "internal error")
		return
	}
	ErrorResponse(c, status, err.Error())
}
