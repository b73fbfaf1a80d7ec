package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Application error codes carried in the response envelope.
const (
	CodeOK = 0

	CodeInvalidJSON   = 10001
	CodeInvalidParams = 10002
	CodeInvalidQuery  = 10003

	CodeRouteNotFound   = 40400
	CodeItemNotFound    = 40401
	CodeProfileNotFound = 40402
	CodeOrderNotFound   = 40403

	CodeMethodNotAllowed = 40500
	CodeTooManyRequests  = 42901

	CodeInternal      = 50001
	CodeStoreError    = 50002
	CodeNotConfigured = 50010
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    CodeOK,
		"message": "ok",
		"data":    data,
	})
}

func Fail(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
		"data":    nil,
	})
}

// Abort is Fail for middleware: it stops the handler chain.
func Abort(c *gin.Context, httpStatus int, code int, msg string) {
	c.AbortWithStatusJSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
		"data":    nil,
	})
}
