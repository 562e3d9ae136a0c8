package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// WriteDomain maps a business error to its HTTP status. Anything that
// is not a BusinessError is an infrastructure failure and surfaces as
// a generic 500.
func WriteDomain(c *gin.Context, err error) {
	be, ok := AsBusiness(err)
	if !ok {
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch be.Kind {
	case KindConflict:
		Conflict(c, be.Code, "The requested time is no longer available.")
	case KindInvalidState:
		Unprocessable(c, be.Code, "The booking is not in a state that allows this operation.")
	case KindNotFound:
		NotFound(c, be.Code, "Resource not found.")
	case KindValidation:
		BadRequest(c, be.Code, "Invalid request.")
	default:
		Internal(c, "internal_error", "Something went wrong.")
	}
}
