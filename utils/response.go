package utils

import "github.com/gin-gonic/gin"

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// JSONValidationError reports field-keyed validation messages with 422.
func JSONValidationError(c *gin.Context, fields map[string][]string) {
	c.JSON(422, gin.H{"errors": fields})
}
