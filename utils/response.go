// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope: {success, data} on the happy
// path, {success, error} otherwise.

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

func RespondWithData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}
