package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rohingrover/absuma/api/middleware"
	"github.com/rohingrover/absuma/api/routes"
	"github.com/rohingrover/absuma/config"
	"github.com/rohingrover/absuma/internal/cache"
	"github.com/rohingrover/absuma/internal/repository"
	"github.com/rohingrover/absuma/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	config     *config.Config
	httpServer *http.Server
	log        *logrus.Logger
}

// NewServer creates a new HTTP server wired to the service layer
func NewServer(
	cfg *config.Config,
	log *logrus.Logger,
	nrApp *newrelic.Application,
	db *gorm.DB,
	cacheClient cache.Client,
) *Server {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	if nrApp != nil {
		router.Use(nrgin.Middleware(nrApp))
	}

	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	yardRepo := repository.NewYardRepository(db)
	clientRepo := repository.NewClientRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	tripRepo := repository.NewTripRepository(db)

	svcs := routes.Services{
		Auth:     service.NewAuthService(userRepo, &cfg.Auth),
		Vehicles: service.NewVehicleService(vehicleRepo, driverRepo, cacheClient, log),
		Yards:    service.NewYardService(yardRepo),
		Clients:  service.NewClientService(clientRepo, cacheClient, log),
		Vendors:  service.NewVendorService(vendorRepo),
		Trips:    service.NewTripService(tripRepo, vendorRepo),
	}

	routes.SetupRoutes(router, svcs, cfg.Uploads, log)

	return &Server{
		router: router,
		config: cfg,
		log:    log,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: router,
		},
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Infof("Starting server on port %d", s.config.Server.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
