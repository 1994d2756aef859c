package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/OldStager01/resource-sentinel/api/handlers"
	"github.com/OldStager01/resource-sentinel/api/middleware"
	"github.com/OldStager01/resource-sentinel/api/websocket"
	"github.com/OldStager01/resource-sentinel/internal/auth"
	"github.com/OldStager01/resource-sentinel/internal/collector"
	"github.com/OldStager01/resource-sentinel/internal/events"
	"github.com/OldStager01/resource-sentinel/internal/metrics"
	"github.com/OldStager01/resource-sentinel/internal/monitor"
	"github.com/OldStager01/resource-sentinel/pkg/config"
	"github.com/gin-gonic/gin"
)

// Deps carries the engine components the server exposes.
type Deps struct {
	Engine    *monitor.Engine
	Collector collector.Collector
	Bus       *events.EventBus
	Publisher *events.Publisher
}

type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	config      config.APIConfig
	wsConfig    config.WebSocketConfig
	deps        Deps
	authService *auth.Service
	wsHub       *websocket.Hub
	wsBridge    *websocket.EventBridge
}

func NewServer(cfg config.APIConfig, wsCfg config.WebSocketConfig, mode string, deps Deps) *Server {
	if mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	jwtDuration := cfg.JWTDuration
	if jwtDuration <= 0 {
		jwtDuration = 24 * time.Hour
	}

	s := &Server{
		router:      gin.New(),
		config:      cfg,
		wsConfig:    wsCfg,
		deps:        deps,
		authService: auth.NewService(cfg.JWTSecret, jwtDuration),
		wsHub:       websocket.NewHub(&wsCfg),
	}

	s.setupMiddleware()
	s.setupRoutes()

	go s.wsHub.Run()

	if deps.Bus != nil {
		s.wsBridge = websocket.NewEventBridge(s.wsHub, deps.Bus.SubscribeAll())
		s.wsBridge.Start()
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   s.config.CORS.AllowedOrigins,
		AllowedMethods:   s.config.CORS.AllowedMethods,
		AllowedHeaders:   s.config.CORS.AllowedHeaders,
		ExposedHeaders:   s.config.CORS.ExposedHeaders,
		AllowCredentials: s.config.CORS.AllowCredentials,
	}))
	s.router.Use(middleware.TraceID())
	s.router.Use(middleware.RequestLogger())
	s.router.Use(middleware.RequestSizeLimit(1 << 20))
}

func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.deps.Engine, s.deps.Collector)
	authHandler := handlers.NewAuthHandler(s.authService, s.config.AdminUsername, s.config.AdminPasswordHash)
	metricsHandler := handlers.NewMetricsHandler(s.deps.Engine, &s.config)
	alertsHandler := handlers.NewAlertsHandler(s.deps.Engine.Registry(), s.deps.Publisher)

	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/ready", healthHandler.Ready)
	s.router.GET("/health/live", healthHandler.Live)

	s.router.GET("/metrics", gin.WrapH(metrics.Get().Handler()))

	s.router.POST("/auth/login", middleware.AuthRateLimiter(), authHandler.Login)

	s.router.GET("/ws", websocket.ServeWebSocket(s.wsHub))

	protected := s.router.Group("/api/v1")
	protected.Use(middleware.JWTAuth(s.authService))
	{
		protected.GET("/metrics/current", metricsHandler.GetCurrent)
		protected.GET("/metrics/history", metricsHandler.GetHistory)

		protected.GET("/trends", metricsHandler.GetTrends)
		protected.GET("/trends/:resource", metricsHandler.GetTrend)

		protected.GET("/predictions", metricsHandler.GetPredictions)
		protected.GET("/predictions/:resource", metricsHandler.GetPrediction)

		protected.GET("/recommendations", metricsHandler.GetRecommendations)

		protected.GET("/alerts", alertsHandler.List)
		protected.POST("/alerts", alertsHandler.Create)
		protected.POST("/alerts/:id/acknowledge", alertsHandler.Acknowledge)
		protected.DELETE("/alerts/acknowledged", alertsHandler.ClearAcknowledged)
		protected.DELETE("/alerts/stale", alertsHandler.ClearStale)
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	idleTimeout := s.config.IdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = 60 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.wsBridge != nil {
		s.wsBridge.Stop()
	}

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}
