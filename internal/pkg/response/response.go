// Package response keeps every endpoint on the same JSON envelope:
// {"success": true, "data": ...} or {"success": false, "error": {code, message}}.
package response

import "github.com/gin-gonic/gin"

// ErrorBody is the {kind, message} shape the boundary layer translates into
// HTTP status codes.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   ErrorBody{Code: code, Message: message},
	})
}
