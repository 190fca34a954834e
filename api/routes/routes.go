package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rohingrover/absuma/api/handlers"
	"github.com/rohingrover/absuma/api/middleware"
	"github.com/rohingrover/absuma/config"
	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/service"
)

// Services bundles the service layer for route wiring
type Services struct {
	Auth     service.AuthService
	Vehicles service.VehicleService
	Yards    service.YardService
	Clients  service.ClientService
	Vendors  service.VendorService
	Trips    service.TripService
}

// SetupRoutes sets up all the routes for the server
func SetupRoutes(r *gin.Engine, svcs Services, uploads config.UploadConfig, log *logrus.Logger) {
	// Health check
	r.GET("/health", handlers.HealthCheck)

	authHandler := handlers.NewAuthHandler(svcs.Auth, log)
	vehicleHandler := handlers.NewVehicleHandler(svcs.Vehicles, uploads, log)
	yardHandler := handlers.NewYardHandler(svcs.Yards, log)
	clientHandler := handlers.NewClientHandler(svcs.Clients, log)
	vendorHandler := handlers.NewVendorHandler(svcs.Vendors, log)
	tripHandler := handlers.NewTripHandler(svcs.Trips, log)

	api := r.Group("/api/v1")

	// Login is the only unauthenticated endpoint besides the health check
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(svcs.Auth, log))
	{
		authed.GET("/auth/me", authHandler.Me)

		vehicles := authed.Group("/vehicles")
		{
			vehicles.POST("", vehicleHandler.Create)
			vehicles.GET("", vehicleHandler.List)
			vehicles.GET("/search", vehicleHandler.Search)
			vehicles.GET("/:id", vehicleHandler.Get)
			vehicles.PUT("/:id", vehicleHandler.Update)
			vehicles.DELETE("/:id", vehicleHandler.Delete)
			vehicles.POST("/:id/documents", vehicleHandler.UploadDocument)
			vehicles.GET("/:id/documents", vehicleHandler.ListDocuments)
		}

		yards := authed.Group("/yards")
		{
			yards.POST("", yardHandler.Create)
			yards.GET("", yardHandler.List)
			yards.GET("/:id", yardHandler.Get)
			yards.PUT("/:id", yardHandler.Update)
			yards.DELETE("/:id", yardHandler.Delete)
		}
		authed.GET("/locations", yardHandler.ListLocations)

		clients := authed.Group("/clients")
		{
			clients.POST("", clientHandler.Create)
			clients.GET("", clientHandler.List)
			clients.GET("/:id", clientHandler.Get)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Delete)
			clients.GET("/:id/rates", clientHandler.Rates)
			clients.POST("/:id/rates", clientHandler.AddRate)
			clients.POST("/:id/contacts", clientHandler.AddContact)
		}

		vendors := authed.Group("/vendors")
		{
			vendors.POST("", vendorHandler.Create)
			vendors.GET("", vendorHandler.List)
			vendors.GET("/vehicles/search", vendorHandler.SearchVehicles)
			vendors.GET("/:id", vendorHandler.Get)
			vendors.PUT("/:id", vendorHandler.Update)
			vendors.POST("/:id/vehicles", vendorHandler.AddVehicle)
		}

		trips := authed.Group("/trips")
		{
			trips.GET("", tripHandler.List)
			trips.GET("/:id", tripHandler.Get)
		}
		authed.GET("/dashboard", tripHandler.Dashboard)

		// Admin-only operations
		admin := authed.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/users", authHandler.CreateUser)
			admin.POST("/vendors/:id/approval", vendorHandler.Decide)
		}
	}
}
