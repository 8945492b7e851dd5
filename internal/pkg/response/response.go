package response

import "github.com/gin-gonic/gin"

// Every response uses the same envelope:
//
//	{"success": true, "data": ...}
//	{"success": false, "error": {"code": ..., "message": ..., "details": ...}}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, failure(code, message, nil))
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	c.AbortWithStatusJSON(statusCode, failure(code, message, nil))
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, failure(code, message, details))
}

// BindError reports a request body that failed to decode or bind.
func BindError(c *gin.Context, statusCode int, err error) {
	c.JSON(statusCode, failure("VALIDATION_ERROR", "Invalid request body", err.Error()))
}

func failure(code, message string, details any) gin.H {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	return gin.H{
		"success": false,
		"error":   body,
	}
}
