package routes

import (
	"net/http"
	"time"

	"hospitalpanel/handlers"
	"hospitalpanel/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers the OTP login flow endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/session")
	{
		api.POST("/request-otp", hb.RequestOTPHandler)
		api.POST("/resend-otp", hb.ResendOTPHandler)
		api.POST("/verify-otp", hb.VerifyOTPHandler)
		api.POST("/logout", hb.LogoutHandler)

		// Protected routes (require a session)
		api.Use(middleware.RequireSession(hb.Codec))
		api.GET("/me", hb.MeHandler)
	}
}

// RegisterBillRoutes sets up the endpoints for the bill workflow engine.
func RegisterBillRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bills")
	{
		api.Use(middleware.RequireSession(hb.Codec))
		api.GET("/records", hb.ListBillRecordsHandler)
		api.POST("", hb.CreateBillHandler)
		api.GET("/:id", hb.GetBillHandler)
		api.POST("/:id/items", hb.AddLineItemHandler)
		api.PATCH("/:id/items/:index", hb.UpdateLineItemHandler)
		api.DELETE("/:id/items/:index", hb.RemoveLineItemHandler)
		api.POST("/:id/confirm", hb.ConfirmBillHandler)
		api.POST("/:id/edit", hb.EditBillHandler)
		api.POST("/:id/upload", hb.UploadBillHandler)
	}
}

// RegisterAccountsRoutes registers the accounts area endpoints.
func RegisterAccountsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.RequireSession(hb.Codec))
		api.GET("/details", hb.GetPatientDetailsHandler)
	}
}

// RegisterPageRoutes wires the navigation-level route guard: /login and
// /register are public-only, everything else under the panel requires a
// session and bounces to /login without one.
func RegisterPageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	view := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"view": name})
		}
	}

	r.GET("/login", middleware.RouteGuard(hb.Codec, true, ""), view("login"))
	r.GET("/register", middleware.RouteGuard(hb.Codec, true, ""), view("register"))
	r.GET("/", middleware.RouteGuard(hb.Codec, false, ""), view("dashboard"))
	r.GET("/accounts", middleware.RouteGuard(hb.Codec, false, ""), view("accounts"))
	r.GET("/accounts/create-bill", middleware.RouteGuard(hb.Codec, false, ""), view("create-bill"))
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "hospital panel up"})
	})
}

// RegisterRoutes wires CORS and every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPageRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterBillRoutes(r, hb)
	RegisterAccountsRoutes(r, hb)
}
