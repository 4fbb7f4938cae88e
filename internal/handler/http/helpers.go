package http

import (
	"errors"
	"net/http"

	"github.com/classbrand/brandnet/internal/domain/entity"
	"github.com/classbrand/brandnet/internal/handler/http/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// StatusForError maps a domain error to the HTTP status of its category.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrSelfRelation),
		errors.Is(err, entity.ErrInvalidRelation),
		errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrUserBanned),
		errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrBrandNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict),
		errors.Is(err, entity.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, entity.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes err as an error body with its mapped status. Messages of
// server-side failures are not exposed.
func HandleError(c *gin.Context, err error) {
	status := StatusForError(err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		msg = "internal server error"
	case http.StatusServiceUnavailable:
		msg = "service temporarily unavailable, please retry"
	case http.StatusConflict:
		if errors.Is(err, entity.ErrConflict) {
			msg = "too many concurrent updates, please retry"
		}
	}
	_ = c.Error(err)
	ErrorHandler(c, status, msg)
}
