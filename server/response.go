package server

import "github.com/gin-gonic/gin"

// envelope is the uniform response shape of every endpoint.
type envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{
		Success: true,
		Data:    data,
	})
}

func respondError(c *gin.Context, status int, message string, errs ...string) {
	c.JSON(status, envelope{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}
