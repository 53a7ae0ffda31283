package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lotfi029/FreelancerAssignment/internal/server/services"
)

// UserController serves the authenticated user's account endpoints.
type UserController struct {
	sessions *services.SessionService
}

func NewUserController(sessions *services.SessionService) *UserController {
	return &UserController{sessions: sessions}
}

func (ctrl *UserController) Profile(c *gin.Context) {
	profile, err := ctrl.sessions.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
