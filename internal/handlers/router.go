package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aps-academy/admin-service/internal/auth"
	"github.com/aps-academy/admin-service/internal/config"
	"github.com/aps-academy/admin-service/internal/metrics"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/utils"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	userHandler        *UserHandler
	bannerHandler      *BannerHandler
	categoryHandler    *CategoryHandler
	courseHandler      *CourseHandler
	classHandler       *ClassHandler
	eventHandler       *EventHandler
	locationHandler    *LocationHandler
	testimonialHandler *TestimonialHandler
	authMiddleware     *AuthMiddleware

	services    services.ServiceManager
	metrics     *metrics.Metrics
	serviceName string
}

func NewHandlerManager(serviceManager services.ServiceManager, cfg *config.Config, logger utils.Logger, m *metrics.Metrics) *HandlerManager {
	production := cfg.IsProduction()
	cookies := auth.CookieOptions{MaxAge: cfg.Cookie.MaxAge, Secure: cfg.Cookie.Secure}
	media := serviceManager.Media()

	authHandler := NewAuthHandler(serviceManager.Auth(), serviceManager.User(), cookies, logger, production)

	return &HandlerManager{
		authHandler:        authHandler,
		userHandler:        NewUserHandler(serviceManager.User(), authHandler, logger, production),
		bannerHandler:      NewBannerHandler(serviceManager.Banner(), media, logger, production),
		categoryHandler:    NewCategoryHandler(serviceManager.Category(), logger, production),
		courseHandler:      NewCourseHandler(serviceManager.Course(), media, logger, production),
		classHandler:       NewClassHandler(serviceManager.Class(), logger, production),
		eventHandler:       NewEventHandler(serviceManager.Event(), media, logger, production),
		locationHandler:    NewLocationHandler(serviceManager.Location(), logger, production),
		testimonialHandler: NewTestimonialHandler(serviceManager.Testimonial(), logger, production),
		authMiddleware:     NewAuthMiddleware(serviceManager.Auth(), logger, production),
		services:           serviceManager,
		metrics:            m,
		serviceName:        cfg.ServiceName,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	authenticated := hm.authMiddleware.Authenticate()
	adminOnly := []gin.HandlerFunc{authenticated, hm.authMiddleware.AdminOnly()}

	v1 := router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", hm.authHandler.Register)
			authRoutes.POST("/login", hm.authHandler.Login)
			authRoutes.POST("/logout", authenticated, hm.authHandler.Logout)
			authRoutes.GET("/me", authenticated, hm.authHandler.Me)
		}

		users := v1.Group("/users", authenticated)
		{
			admin := hm.authMiddleware.AdminOnly()

			users.POST("/admin", admin, hm.userHandler.CreateFamily)
			users.POST("/staff", admin, hm.userHandler.CreateStaff)
			users.GET("", admin, hm.userHandler.ListUsers)
			users.GET("/export", admin, hm.userHandler.ExportUsers)
			users.PUT("/me/children", hm.authMiddleware.RequireRoles(services.ErrNotGuardian.Message, models.RoleParent), hm.userHandler.UpsertMyChildren)

			// Ownership is checked in the handlers
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id/password", hm.userHandler.ChangePassword)
			users.GET("/:id/family", hm.authMiddleware.AdminOrParent(), hm.userHandler.GetFamily)

			users.PUT("/:id", admin, hm.userHandler.UpdateUser)
			users.PATCH("/:id/deactivate", admin, hm.userHandler.DeactivateUser)
		}

		banners := v1.Group("/banners")
		{
			banners.GET("", hm.bannerHandler.ListBanners)
			banners.GET("/:id", hm.bannerHandler.GetBanner)
			banners.POST("", append(adminOnly, hm.bannerHandler.CreateBanner)...)
			banners.PUT("/:id", append(adminOnly, hm.bannerHandler.UpdateBanner)...)
			banners.DELETE("/:id", append(adminOnly, hm.bannerHandler.DeleteBanner)...)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", hm.categoryHandler.ListCategories)
			categories.GET("/:id", hm.categoryHandler.GetCategory)
			categories.POST("", append(adminOnly, hm.categoryHandler.CreateCategory)...)
			categories.PUT("/:id", append(adminOnly, hm.categoryHandler.UpdateCategory)...)
			categories.DELETE("/:id", append(adminOnly, hm.categoryHandler.DeleteCategory)...)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.POST("", append(adminOnly, hm.courseHandler.CreateCourse)...)
			courses.PUT("/:id", append(adminOnly, hm.courseHandler.UpdateCourse)...)
			courses.DELETE("/:id", append(adminOnly, hm.courseHandler.DeleteCourse)...)
		}

		// Timetables and venues are internal data
		classes := v1.Group("/classes", adminOnly...)
		{
			classes.POST("", hm.classHandler.CreateClass)
			classes.GET("", hm.classHandler.ListClasses)
			classes.GET("/:id", hm.classHandler.GetClass)
			classes.PUT("/:id", hm.classHandler.UpdateClass)
			classes.DELETE("/:id", hm.classHandler.DeleteClass)
		}

		events := v1.Group("/events")
		{
			events.GET("", hm.eventHandler.ListEvents)
			events.GET("/:id", hm.eventHandler.GetEvent)
			events.POST("", append(adminOnly, hm.eventHandler.CreateEvent)...)
			events.PUT("/:id", append(adminOnly, hm.eventHandler.UpdateEvent)...)
			events.PATCH("/:id/deactivate", append(adminOnly, hm.eventHandler.DeactivateEvent)...)
		}

		locations := v1.Group("/locations", adminOnly...)
		{
			locations.POST("", hm.locationHandler.CreateLocation)
			locations.GET("", hm.locationHandler.ListLocations)
			locations.GET("/:id", hm.locationHandler.GetLocation)
			locations.PUT("/:id", hm.locationHandler.UpdateLocation)
			locations.PATCH("/:id/deactivate", hm.locationHandler.DeactivateLocation)
		}

		testimonials := v1.Group("/testimonials")
		{
			testimonials.GET("", hm.testimonialHandler.ListTestimonials)
			testimonials.POST("/sync", append(adminOnly, hm.testimonialHandler.SyncTestimonials)...)
		}
	}

	router.GET("/health", hm.health)
	if hm.metrics != nil {
		router.GET("/metrics", gin.WrapH(hm.metrics.Handler()))
	}
}

func (hm *HandlerManager) health(c *gin.Context) {
	if err := hm.services.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": hm.serviceName,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": hm.serviceName,
	})
}
