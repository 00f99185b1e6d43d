package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every body is {success, message?, ...payload}; payload keys sit next to
// success, e.g. {"success":true,"job":{...}}.

func write(c *gin.Context, status int, success bool, message string, payload gin.H) {
	body := gin.H{"success": success}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// OK sends a 200 response
func OK(c *gin.Context, message string, payload gin.H) {
	write(c, http.StatusOK, true, message, payload)
}

// Created sends a 201 response for successfully created resources
func Created(c *gin.Context, message string, payload gin.H) {
	write(c, http.StatusCreated, true, message, payload)
}

// Message sends a success response with just a message
func Message(c *gin.Context, message string) {
	write(c, http.StatusOK, true, message, nil)
}

// --- Error Responses ---

func errorResponse(c *gin.Context, status int, message string) {
	write(c, status, false, message, nil)
}

// Abort is errorResponse for middleware; it stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "User not authenticated"
	}
	errorResponse(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "resource not found"
	}
	errorResponse(c, http.StatusNotFound, message)
}

// InternalError sends a 500 response
// Note: Never expose internal error details to clients
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal Server Error"
	}
	errorResponse(c, http.StatusInternalServerError, message)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context) {
	Abort(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
}
