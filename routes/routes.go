package routes

import (
	"flareguard/controllers"
	"flareguard/middlewares"
	"flareguard/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(rt *services.RealtimeHub, ps *services.PushService) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Public landing-page signup
	r.POST("/waitlist", controllers.JoinWaitlist)

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.PUT("/sources", controllers.UpdateSources)
	}

	// Daily check-ins
	checkins := r.Group("/checkins")
	checkins.Use(middlewares.AuthMiddleware())
	{
		checkins.POST("", controllers.SubmitCheckIn)
		checkins.GET("", controllers.ListCheckIns)
	}

	// Meal journal
	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", controllers.SubmitMeal)
		meals.GET("", controllers.ListMeals)
		meals.POST("/photo-tags", controllers.SuggestMealTags)
	}

	// Derived insights
	insights := r.Group("/insights")
	insights.Use(middlewares.AuthMiddleware())
	{
		insights.GET("/weekly", controllers.GetWeeklySummary)
		insights.GET("/correlations", controllers.GetCorrelations)
		insights.GET("/highlights", controllers.GetHighlights)
		insights.GET("/outlook", controllers.GetTodayOutlook)
		insights.POST("/email-summary", controllers.EmailClinicianSummary)
	}

	// Alerts: history, realtime stream, push devices
	alerts := r.Group("/alerts")
	alerts.Use(middlewares.AuthMiddleware())
	{
		alerts.GET("", controllers.ListAlerts)

		rc := controllers.NewRealtimeController(rt)
		alerts.GET("/ws", rc.AlertsWS)

		dc := controllers.NewDeviceController(ps)
		alerts.POST("/devices", dc.RegisterDevice)
		alerts.PUT("/devices/enabled", dc.TogglePush)
	}

	// Waitlist analytics for the founding team
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	{
		admin.GET("/waitlist/analytics", controllers.GetWaitlistAnalytics)
	}

	return r
}
