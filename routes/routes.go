package routes

import (
	"ontheway-api/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	r.POST("/login", handlers.Login)
	r.POST("/register", handlers.Register)
	r.PUT("/user/profile", handlers.UpdateProfile)
	r.PUT("/user/password", handlers.ChangePassword)

	r.GET("/places", handlers.GetPlaces)
	r.GET("/delegates", handlers.GetDelegates)
	r.GET("/delegates/:placeName", handlers.GetDelegatesForPlace)

	// ── Admin catalog routes ───────────────────────────────────────
	// Authorization happens in the catalog service: the actor email is
	// resolved server-side and checked against the users table on every
	// mutation, regardless of which route reached it.
	admin := r.Group("/admin")
	{
		admin.POST("/place", handlers.AddPlace)
		admin.PUT("/place/:placeId", handlers.UpdatePlace)
		admin.DELETE("/place/:placeId", handlers.DeletePlace)

		admin.POST("/delegate", handlers.AddDelegate)
		admin.PUT("/delegate/:delegateId", handlers.UpdateDelegate)
		admin.DELETE("/delegate/:delegateId", handlers.DeleteDelegate)
	}
}
