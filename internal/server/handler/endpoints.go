package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/afaqulislam/todo-full-stack-web-application/internal/endpoints"
)

// Endpoints serves the endpoint table so the browser bundle can pick up
// the base URL chosen for this deployment.
func Endpoints(table endpoints.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, table)
	}
}
