package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lotfi029/FreelancerAssignment/internal/apperrors"
	"github.com/lotfi029/FreelancerAssignment/internal/server/services"
)

// AuthController handles the authentication endpoints. Successful register,
// login, and refresh respond 204 with the token pair delivered in cookies.
type AuthController struct {
	sessions *services.SessionService
}

func NewAuthController(sessions *services.SessionService) *AuthController {
	return &AuthController{sessions: sessions}
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		writeBindError(c, err)
		return
	}

	creds, err := ctrl.sessions.Register(c.Request.Context(), form.Username, form.Password, form.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	setAuthCookies(c, creds)
	c.Status(http.StatusNoContent)
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		writeBindError(c, err)
		return
	}

	creds, err := ctrl.sessions.Login(c.Request.Context(), form.UsernameOrEmail, form.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	setAuthCookies(c, creds)
	c.Status(http.StatusNoContent)
}

// Refresh rotates the cookie-held token pair. Missing cookies short-circuit
// to NoRefreshToken without hitting the service.
func (ctrl *AuthController) Refresh(c *gin.Context) {
	accessToken, refreshToken, err := authCookies(c)
	if err != nil {
		writeError(c, err)
		return
	}

	creds, err := ctrl.sessions.RefreshToken(c.Request.Context(), accessToken, refreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	setAuthCookies(c, creds)
	c.Status(http.StatusNoContent)
}

// Revoke kills the cookie-held refresh token and clears both cookies.
func (ctrl *AuthController) Revoke(c *gin.Context) {
	accessToken, refreshToken, err := authCookies(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := ctrl.sessions.RevokeRefreshToken(c.Request.Context(), accessToken, refreshToken); err != nil {
		writeError(c, err)
		return
	}

	clearAuthCookies(c)
	c.Status(http.StatusNoContent)
}

// CheckAuthStatus reports whether the caller holds a live access token. The
// guard already validated it, so reaching the handler means yes.
func (ctrl *AuthController) CheckAuthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "id": currentUserID(c)})
}

func authCookies(c *gin.Context) (accessToken, refreshToken string, err error) {
	accessToken, err = c.Cookie(accessTokenCookie)
	if err != nil || accessToken == "" {
		return "", "", apperrors.ErrInvalidToken
	}
	refreshToken, err = c.Cookie(refreshTokenCookie)
	if err != nil || refreshToken == "" {
		return "", "", apperrors.ErrNoRefreshToken
	}
	return accessToken, refreshToken, nil
}
