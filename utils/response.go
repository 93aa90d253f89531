// file: utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Business codes shared by every handler.
const (
	CodeOK           = 0
	CodeInvalidParam = 1001
	CodeInvalidID    = 1002
	CodeUserExists   = 2001
	CodeBadLogin     = 2002
	CodeConflict     = 3001
	CodeLeaderLeave  = 3006
	CodeUnauthorized = 4001
	CodeForbidden    = 4003
	CodeNotFound     = 4004
	CodeRateLimited  = 4029
	CodeInternal     = 5000
	CodeTokenFailed  = 5002
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Msg: msg, Data: data})
}

// Error writes a business error with the HTTP status implied by the code.
func Error(c *gin.Context, code int, msg string) {
	c.JSON(StatusFor(code), Response{Code: code, Msg: msg})
}

// Abort is Error for middlewares.
func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(StatusFor(code), Response{Code: code, Msg: msg})
}

func StatusFor(code int) int {
	switch {
	case code == CodeRateLimited:
		return http.StatusTooManyRequests
	case code == CodeUnauthorized, code == CodeBadLogin:
		return http.StatusUnauthorized
	case code == CodeForbidden:
		return http.StatusForbidden
	case code == CodeNotFound:
		return http.StatusNotFound
	case code == CodeConflict, code == CodeUserExists, code == CodeLeaderLeave:
		return http.StatusConflict
	case code >= 5000:
		return http.StatusInternalServerError
	case code >= 1000 && code < 2000:
		return http.StatusBadRequest
	}
	return http.StatusOK
}
