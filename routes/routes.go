package routes

import (
	"os"
	"strings"

	"salon-dina-backend/config"
	"salon-dina-backend/controllers"
	"salon-dina-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Therapist routes
		therapists := api.Group("/therapists")
		{
			therapists.POST("", controllers.CreateTherapist)
			therapists.GET("", controllers.GetTherapists)
			therapists.GET("/:id", controllers.GetTherapist)
			therapists.PUT("/:id", controllers.UpdateTherapist)
			therapists.DELETE("/:id", controllers.DeleteTherapist)
		}

		// Treatment catalog routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", controllers.GetCategories)
			categories.POST("", controllers.CreateCategory)
		}

		// Daily treatment routes
		treatments := api.Group("/treatments")
		{
			treatments.GET("", controllers.GetTreatments)
			treatments.POST("", controllers.CreateTreatment)
			treatments.GET("/:id", controllers.GetTreatment)
			treatments.PUT("/:id", controllers.UpdateTreatment)
			treatments.DELETE("/:id", controllers.DeleteTreatment)
			treatments.POST("/:id/complete", controllers.CompleteTreatment)
			treatments.POST("/:id/feedback/skip", controllers.SkipFeedback)
		}

		// Feedback routes
		feedback := api.Group("/feedback")
		{
			feedback.POST("", controllers.CreateFeedback)
			feedback.POST("/check", controllers.CheckFeedback)
		}

		// Monthly bookkeeping (Pembukuan Bulanan) routes
		bookkeeping := api.Group("/monthly-bookkeeping")
		{
			bookkeeping.GET("", controllers.GetMonthlyBookkeeping)
			bookkeeping.POST("", controllers.CreateMonthlyBookkeeping)
			bookkeeping.PUT("/:id", controllers.UpdateMonthlyBookkeeping)
			bookkeeping.DELETE("/:id", controllers.DeleteMonthlyBookkeeping)
		}

		// Reports routes
		api.GET("/reports", controllers.GetReport)
		api.GET("/reports/export", controllers.ExportMonthlyReport)
		api.GET("/reports/therapists", controllers.GetTherapistMonthlyStats)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
