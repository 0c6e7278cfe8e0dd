// Package api defines the JSON response envelope shared by every endpoint:
// {"success": true, "data": ...} or {"success": false, "error": "..."}.
package api

import "github.com/gin-gonic/gin"

func OK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// MsgUnknownError is the opaque message for internal failures; internals
// are never leaked to the client.
const MsgUnknownError = "Unknown error"
