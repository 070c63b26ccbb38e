package utils

import "github.com/gin-gonic/gin"

// Response helpers. Every endpoint answers with the same envelope:
// {success, data?, message?, errors?}.

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// JSONValidationError reports field-level validation failures.
func JSONValidationError(c *gin.Context, code int, message string, errors map[string]string) {
	c.JSON(code, gin.H{"success": false, "message": message, "errors": errors})
}
