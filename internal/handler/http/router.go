package http

import (
	"time"

	"github.com/classbrand/brandnet/internal/domain/contract"
	"github.com/classbrand/brandnet/internal/handler/http/middleware"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds the use cases and settings the HTTP layer is built from.
type RouterDeps struct {
	UserUsecase   usecasecontract.IUserUseCase
	BrandUsecase  usecasecontract.IBrandUseCase
	ToggleUsecase usecasecontract.IMembershipToggleUseCase
	AdminUsecase  usecasecontract.IAdminUseCase
	Config        usecasecontract.IConfigProvider
	RandomGen     contract.IRandomGenerator
	Logger        zerolog.Logger
}

type Router struct {
	userHandler        *UserHandler
	brandHandler       *BrandHandler
	interactionHandler *InteractionHandler
	adminHandler       *AdminHandler
	authHandler        *AuthHandler
	userUsecase        usecasecontract.IUserUseCase
	rateLimitPerSecond float64
	logger             zerolog.Logger
}

func NewRouter(deps RouterDeps) *Router {
	return &Router{
		userHandler:        NewUserHandler(deps.UserUsecase),
		brandHandler:       NewBrandHandler(deps.BrandUsecase),
		interactionHandler: NewInteractionHandler(deps.ToggleUsecase, deps.BrandUsecase),
		adminHandler:       NewAdminHandler(deps.AdminUsecase, deps.BrandUsecase),
		authHandler:        NewAuthHandler(deps.UserUsecase, deps.Config, deps.RandomGen),
		userUsecase:        deps.UserUsecase,
		rateLimitPerSecond: deps.Config.GetRateLimitPerSecond(),
		logger:             deps.Logger,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.RequestLogger(r.logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimiter(middleware.NewLimiter(r.rateLimitPerSecond)))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { MessageHandler(c, 200, "ok") })

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.userHandler.CreateUser)
		auth.POST("/login", r.userHandler.Login)
		auth.POST("/refresh-token", r.userHandler.RefreshToken)

		// Google OAuth endpoints
		auth.GET("/google/login", r.authHandler.HandleGoogleLogin)
		auth.GET("/google/callback", r.authHandler.HandleGoogleCallback)
	}

	// Public reads; a token, when present, fills the viewer flags
	public := v1.Group("/")
	public.Use(middleware.OptionalAuth(r.userUsecase))
	{
		public.GET("/users/profile/:id", r.userHandler.GetUser)
		public.GET("/users/:id/brands", r.brandHandler.ListOwnerBrandsHandler)
		public.GET("/brands", r.brandHandler.ListBrandsHandler)
		public.GET("/brands/:brandID", r.brandHandler.GetBrandHandler)
	}

	// Protected routes (authentication required)
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleWare(r.userUsecase))
	{
		protected.GET("/me", r.userHandler.GetCurrentUser)
		protected.GET("/me/brands", r.brandHandler.ListOwnerBrandsHandler)

		protected.POST("/brands", r.brandHandler.CreateBrandHandler)
		protected.PUT("/brands/:brandID", r.brandHandler.UpdateBrandHandler)
		protected.DELETE("/brands/:brandID", r.brandHandler.DeleteBrandHandler)

		// Interaction routes
		protected.POST("/brands/:brandID/follow", r.interactionHandler.FollowBrandHandler)
		protected.POST("/brands/:brandID/like", r.interactionHandler.LikeBrandHandler)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleWare(r.userUsecase), middleware.AdminOnly())
	{
		admin.GET("/stats", r.adminHandler.StatsHandler)
		admin.GET("/users", r.adminHandler.ListUsersHandler)
		admin.PUT("/users/:id/ban", r.adminHandler.ToggleBanHandler)
		admin.PUT("/users/:id/admin", r.adminHandler.MakeAdminHandler)
		admin.DELETE("/users/:id", r.adminHandler.DeleteUserHandler)
		admin.GET("/brands", r.adminHandler.ListBrandsHandler)
		admin.DELETE("/brands/:brandID", r.adminHandler.DeleteBrandHandler)
	}
}
