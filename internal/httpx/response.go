package httpx

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foody-app/foody-api/internal/apperr"
)

// OK writes {success:true, ...payload}.
func OK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Message writes a success envelope carrying a message.
func Message(c *gin.Context, status int, msg string, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["message"] = msg
	OK(c, status, payload)
}

// Fail maps err onto the failure envelope. Unclassified errors are logged
// and reported with a generic message.
func Fail(c *gin.Context, err error) {
	if e, ok := apperr.As(err); ok && e.Kind != apperr.KindInternal {
		c.AbortWithStatusJSON(e.Status(), gin.H{"success": false, "message": e.Message})
		return
	}
	rid, _ := c.Get("rid")
	log.Printf("[http] rid=%v %s %s error: %v", rid, c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
}
