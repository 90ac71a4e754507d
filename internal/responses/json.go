package responses

import "github.com/gin-gonic/gin"

// Error codes surfaced alongside error messages.
const (
	CodeValidation  = "VALIDATION"
	CodeNotFound    = "NOT_FOUND"
	CodeUnsupported = "UNSUPPORTED"
	CodeInternal    = "INTERNAL"
)

// APIResponse is the envelope every endpoint returns: successful bodies carry
// data under "data", failures carry a user-displayable "error" string and a
// machine-readable "code".
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   message,
		Code:    code,
	})
}
