// Package httpapi exposes the application over HTTP with gin. Routing,
// middleware, and the cookie contract live here; all business rules stay in
// the services layer.
package httpapi

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/lotfi029/FreelancerAssignment/internal/logging"
	"github.com/lotfi029/FreelancerAssignment/internal/server/auth"
	"github.com/lotfi029/FreelancerAssignment/internal/server/services"
)

// NewRouter builds the gin engine with the full middleware chain and route
// table.
func NewRouter(sessions *services.SessionService, products *services.ProductService, issuer *auth.Issuer, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())
	r.Use(requestid.New(requestid.WithCustomHeaderStrKey("X-Request-Id")))
	r.Use(LoggingMiddleware(logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	guard := GuardMiddleware(issuer)

	authCtrl := NewAuthController(sessions)
	userCtrl := NewUserController(sessions)
	productCtrl := NewProductController(products)

	api := r.Group("/api")

	auths := api.Group("/auths")
	auths.POST("/register", authCtrl.Register)
	auths.POST("/login", authCtrl.Login)
	auths.POST("/refresh", authCtrl.Refresh)
	auths.POST("/revoke-refresh-token", authCtrl.Revoke)
	auths.GET("/check-auth-status", guard, authCtrl.CheckAuthStatus)

	users := api.Group("/users", guard)
	users.GET("/profile", userCtrl.Profile)

	catalog := api.Group("/products", guard)
	catalog.POST("", productCtrl.Add)
	catalog.GET("", productCtrl.GetAll)
	catalog.GET("/categories", productCtrl.Categories)
	catalog.GET("/categories/:category", productCtrl.GetByCategory)
	catalog.GET("/:id", productCtrl.GetByID)
	catalog.PUT("/:id", productCtrl.Update)
	catalog.DELETE("/:id", productCtrl.Delete)
	catalog.POST("/:id/image", productCtrl.AddImage)
	catalog.GET("/:id/image", productCtrl.Image)

	return r
}
