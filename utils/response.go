package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse carries the user-visible warning for a failed request.
// The Error field plays the role a flash message has in a rendered UI:
// one notification the client shows and discards.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

func SendValidationError(c *gin.Context, err string) {
	SendError(c, http.StatusBadRequest, err)
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	response := SuccessResponse{Message: message}
	if data != nil {
		response.Data = data
	}
	c.JSON(http.StatusOK, response)
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	response := SuccessResponse{Message: message}
	if data != nil {
		response.Data = data
	}
	c.JSON(http.StatusCreated, response)
}
