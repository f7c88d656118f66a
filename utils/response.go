package utils

import (
	"errors"
	"log"
	"net/http"

	"hotelhub-backend/services"

	"github.com/gin-gonic/gin"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": gin.H{"message": message}})
}

// JSONServiceError translates a service error into the HTTP response the
// adapter layer owes the client: a status from the error kind plus a stable
// machine-readable code. Unknown errors become an opaque 500.
func JSONServiceError(c *gin.Context, err error) {
	var se *services.Error
	if errors.As(err, &se) {
		c.JSON(services.HTTPStatus(err), gin.H{
			"success": false,
			"error":   gin.H{"code": se.Code, "message": se.Message},
		})
		return
	}

	log.Printf("❌ unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   gin.H{"code": "internal", "message": "internal server error"},
	})
}
