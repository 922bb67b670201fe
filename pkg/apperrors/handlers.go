package apperrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform failure envelope. Every error leaves the API
// as {"success": false, "error": "...", "code": "..."}.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Code    ErrorCode   `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// GinErrorHandler renders AppErrors for Gin. Debug controls whether internal
// causes are surfaced in 5xx responses.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	message := appErr.Message
	details := appErr.Details
	if appErr.HTTPCode >= 500 && !h.Debug {
		message = "Internal server error"
		details = nil
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    appErr.Code,
		Details: details,
	})
}

var defaultHandler = &GinErrorHandler{}

// SetDebug configures the package-level responder, called once at startup.
func SetDebug(debug bool) {
	defaultHandler.Debug = debug
}

// HandleError renders err through the package-level responder.
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

// AsAppError attempts to unwrap err into an *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
