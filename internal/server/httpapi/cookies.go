package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lotfi029/FreelancerAssignment/internal/server/services"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// setAuthCookies stores the token pair in HttpOnly cookies. Both cookies
// expire with the refresh token; SameSite=None keeps them usable from a
// cross-site frontend, which in turn requires Secure.
func setAuthCookies(c *gin.Context, creds *services.Credentials) {
	writeAuthCookie(c, accessTokenCookie, creds.AccessToken, creds.RefreshTokenExpiration)
	writeAuthCookie(c, refreshTokenCookie, creds.RefreshToken, creds.RefreshTokenExpiration)
}

// clearAuthCookies expires both cookies immediately.
func clearAuthCookies(c *gin.Context) {
	expired := time.Unix(0, 0)
	writeAuthCookie(c, accessTokenCookie, "", expired)
	writeAuthCookie(c, refreshTokenCookie, "", expired)
}

func writeAuthCookie(c *gin.Context, name, value string, expires time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
