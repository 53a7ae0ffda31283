package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lotfi029/FreelancerAssignment/internal/apperrors"
)

// writeError renders a coded error as {code, message} with its HTTP status.
// Anything without a code was already logged by the service layer and comes
// out as an opaque 500.
func writeError(c *gin.Context, err error) {
	if appErr := apperrors.AsError(err); appErr != nil {
		c.AbortWithStatusJSON(appErr.Status, gin.H{"code": appErr.Code, "message": appErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

func writeBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"code": "ValidationError", "message": err.Error()})
}
