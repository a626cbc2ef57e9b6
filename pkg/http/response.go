package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SuccessResponse writes a successful envelope with data.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// CreatedResponse writes a successful envelope with 201 status.
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// ListResponse writes a successful envelope wrapping rows and total.
func ListResponse(c echo.Context, rows interface{}, total int64) error {
	return SuccessResponse(c, &ListData{Rows: rows, Total: total})
}

// ErrorResponse writes a failed envelope with the given status and message.
func ErrorResponse(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, APIResponse{Success: false, Error: message})
}

// BadRequestResponse writes a failed envelope for an invalid request.
// Validation details, when present, ride along in data.
func BadRequestResponse(c echo.Context, details interface{}) error {
	return c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Error:   http.StatusText(http.StatusBadRequest),
		Data:    details,
	})
}

// NotFoundResponse writes a failed envelope for a missing resource.
func NotFoundResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusNotFound, message)
}

// InternalServerErrorResponse writes a failed envelope with a fixed message.
// The message is intentionally opaque; details go to the logs only.
func InternalServerErrorResponse(c echo.Context, message string) error {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}
	return ErrorResponse(c, http.StatusInternalServerError, message)
}

// AppErrorResponse maps an AppError to the envelope, or falls back to 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Status, appErr.Message)
	}
	return InternalServerErrorResponse(c, "")
}
