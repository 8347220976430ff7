package utils

import (
	"net/http"

	"staybook/models"

	"github.com/gin-gonic/gin"
)

// MsgSuccess is the default message of a successful response.
const MsgSuccess = "Success"

// Envelope is the success response body shared by every endpoint.
type Envelope struct {
	Status     string             `json:"status"`
	Message    string             `json:"message,omitempty"`
	Token      string             `json:"token,omitempty"`
	Results    *int               `json:"results,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Data       any                `json:"data,omitempty"`
}

// JSONSuccess writes a {status: "success"} envelope.
func JSONSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Status: "success", Message: message, Data: data})
}

// JSONList writes items under data[key] together with a results count.
func JSONList[T any](c *gin.Context, key string, items []T, pagination *models.Pagination) {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	c.JSON(http.StatusOK, Envelope{
		Status:     "success",
		Message:    MsgSuccess,
		Results:    &n,
		Pagination: pagination,
		Data:       gin.H{key: items},
	})
}
