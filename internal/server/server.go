package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"anoa.com/magangportal/internal/config"
	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/internal/metrics"
	"anoa.com/magangportal/internal/middleware"
	"anoa.com/magangportal/pkg/ratelimiter"
	"anoa.com/magangportal/pkg/response"
	"anoa.com/magangportal/pkg/storage"

	applicationHttp "anoa.com/magangportal/internal/modules/application/delivery/http"
	applicationRepo "anoa.com/magangportal/internal/modules/application/repository"
	applicationService "anoa.com/magangportal/internal/modules/application/service"

	dashboardHttp "anoa.com/magangportal/internal/modules/dashboard/delivery/http"
	dashboardRepo "anoa.com/magangportal/internal/modules/dashboard/repository"
	dashboardService "anoa.com/magangportal/internal/modules/dashboard/service"

	departmentHttp "anoa.com/magangportal/internal/modules/department/delivery/http"
	departmentRepo "anoa.com/magangportal/internal/modules/department/repository"
	departmentService "anoa.com/magangportal/internal/modules/department/service"

	postingHttp "anoa.com/magangportal/internal/modules/posting/delivery/http"
	postingRepo "anoa.com/magangportal/internal/modules/posting/repository"
	postingService "anoa.com/magangportal/internal/modules/posting/service"

	searchService "anoa.com/magangportal/internal/modules/search/service"

	userHttp "anoa.com/magangportal/internal/modules/user/delivery/http"
	userRepo "anoa.com/magangportal/internal/modules/user/repository"
	userService "anoa.com/magangportal/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	submitAction = "submit_application"
	// submitBodyLimit leaves room for the form fields around a 2 MiB CV.
	submitBodyLimit = 3 << 20
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewServer wires repositories, services and handlers and registers every
// route. redisClient may be nil, which disables submission rate limiting.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, fileStorage storage.FileStorage, logger *zap.Logger) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	index := searchService.NewMeiliSearchService(cfg.MeiliSearchHost, cfg.MeiliMasterKey, logger)

	userRepo := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, logger)
	authHandler := userHttp.NewAuthHandler(authSvc)

	postingRepo := postingRepo.NewPostingRepository(db)
	departmentRepo := departmentRepo.NewDepartmentRepository(db)

	departmentSvc := departmentService.NewDepartmentService(departmentRepo, postingRepo, index, logger)
	departmentHandler := departmentHttp.NewDepartmentHandler(departmentSvc)

	postingSvc := postingService.NewPostingService(postingRepo, departmentRepo, index, cfg.Timezone, logger)
	postingHandler := postingHttp.NewPostingHandler(postingSvc)

	applicationSvc := applicationService.NewApplicationService(
		applicationRepo.NewApplicationRepository(db),
		applicationRepo.NewTransactor(db),
		fileStorage,
		applicationService.Config{CVFolder: cfg.CloudinaryUploadFolder, Location: cfg.Timezone},
		m,
		logger,
	)
	applicationHandler := applicationHttp.NewApplicationHandler(applicationSvc)

	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo.NewDashboardRepository(db), cfg.Timezone)
	dashboardHandler := dashboardHttp.NewDashboardHandler(dashboardSvc)

	var limiter *ratelimiter.Limiter
	if redisClient != nil {
		limiter = ratelimiter.New(redisClient)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(m))

	router.GET("/healthz", healthz(db, redisClient))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes
	api.GET("/postings", postingHandler.GetAllPostings)
	api.GET("/postings/search", postingHandler.SearchPostings)
	api.GET("/postings/:id", postingHandler.GetPosting)
	api.GET("/departments", departmentHandler.GetAllDepartments)
	api.POST("/applications",
		middleware.BodyLimit(submitBodyLimit),
		middleware.RateLimit(limiter, submitAction, cfg.RateLimitSubmission, logger),
		applicationHandler.Submit,
	)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
	}

	// Staff routes
	admin := api.Group("/admin")
	admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.StaffRoles...))
	{
		admin.GET("/dashboard/stats", dashboardHandler.GetStats)
		admin.GET("/dashboard/trend", dashboardHandler.GetTrend)
		admin.GET("/dashboard/departments", dashboardHandler.GetDepartmentDistribution)
		admin.GET("/dashboard/recent-applications", dashboardHandler.GetRecentApplications)

		admin.GET("/postings", postingHandler.GetAllPostings)
		admin.POST("/postings", postingHandler.CreatePosting)
		admin.GET("/postings/:id", postingHandler.GetPosting)
		admin.PUT("/postings/:id", postingHandler.UpdatePosting)
		admin.DELETE("/postings/:id", postingHandler.DeletePosting)

		admin.GET("/departments", departmentHandler.GetAllDepartments)
		admin.POST("/departments", departmentHandler.CreateDepartment)
		admin.GET("/departments/:id", departmentHandler.GetDepartment)
		admin.PUT("/departments/:id", departmentHandler.UpdateDepartment)
		admin.DELETE("/departments/:id", departmentHandler.DeleteDepartment)

		admin.GET("/applications/pending", applicationHandler.GetPendingApplications)
		admin.GET("/applications/history", applicationHandler.GetHistory)
		admin.GET("/applications/export", applicationHandler.ExportHistory)
		admin.GET("/applications/:id", applicationHandler.GetApplication)
		admin.PATCH("/applications/:id/status", applicationHandler.UpdateStatus)
		admin.DELETE("/applications/:id", applicationHandler.DeleteApplication)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func healthz(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok"}
		healthy := true

		if sqlDB, err := db.DB(); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else if err := sqlDB.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}

		if redisClient != nil {
			checks["redis"] = "ok"
			if err := redisClient.Ping(ctx).Err(); err != nil {
				// Redis only backs rate limiting.
				checks["redis"] = err.Error()
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, response.Envelope{Success: healthy, Data: checks})
	}
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		for _, o := range strings.Split(allowedOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Retry-After", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
