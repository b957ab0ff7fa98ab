package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health is the public liveness endpoint. Dependency checks live on the
// internal metrics port.
func Health(c *gin.Context) {
	respond(c, http.StatusOK, "Server is running", nil)
}
