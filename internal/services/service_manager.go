package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/auth"
	"github.com/aps-academy/admin-service/internal/cache"
	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/metrics"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/storage"
	"github.com/aps-academy/admin-service/internal/validator"
)

// Dependencies are the collaborators shared by the services
type Dependencies struct {
	DB        *gorm.DB
	Repo      repositories.Repository
	Logger    *slog.Logger
	Validator *validator.Validator
	Tokens    *auth.TokenIssuer
	Cache     *cache.CacheManager
	Publisher events.EventPublisher
	Storage   storage.Storage
	Places    PlaceFetcher
	Metrics   *metrics.Metrics
	Reviews   ReviewSyncOptions
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	deps Dependencies

	// Service instances
	userService        UserService
	authService        AuthService
	bannerService      BannerService
	categoryService    CategoryService
	courseService      CourseService
	classService       ClassService
	eventService       EventService
	locationService    LocationService
	testimonialService TestimonialService
	mediaService       MediaService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(deps Dependencies) ServiceManager {
	if deps.Cache == nil {
		deps.Cache = cache.NewCacheManager(nil)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &serviceManager{deps: deps}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.deps.Logger.Info("Initializing service manager")

	if err := sm.initializeServices(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized successfully")
	return nil
}

func (sm *serviceManager) initializeServices() error {
	d := sm.deps
	if d.DB == nil || d.Repo == nil || d.Validator == nil {
		return fmt.Errorf("database, repository and validator are required")
	}
	if d.Tokens == nil {
		return fmt.Errorf("token issuer is required")
	}

	sm.authService = NewAuthService(d.Repo, d.DB, d.Logger, d.Tokens)
	sm.userService = NewUserService(d.Repo, d.DB, d.Logger, d.Validator, sm.authService, d.Publisher, d.Metrics)
	sm.deps.Logger.Info("User services initialized")

	sm.bannerService = NewBannerService(d.Repo, d.DB, d.Logger, d.Validator, d.Cache)
	sm.categoryService = NewCategoryService(d.Repo, d.DB, d.Logger, d.Validator, d.Cache)
	sm.courseService = NewCourseService(d.Repo, d.DB, d.Logger, d.Validator)
	sm.classService = NewClassService(d.Repo, d.DB, d.Logger, d.Validator)
	sm.eventService = NewEventService(d.Repo, d.DB, d.Logger, d.Validator, d.Publisher)
	sm.locationService = NewLocationService(d.Repo, d.DB, d.Logger, d.Validator, d.Publisher)
	sm.deps.Logger.Info("Catalogue services initialized")

	sm.testimonialService = NewTestimonialService(d.Repo, d.DB, d.Logger, d.Places, d.Cache, d.Publisher, d.Metrics, d.Reviews)
	if d.Storage != nil {
		sm.mediaService = NewMediaService(d.Storage, d.Logger)
	}
	sm.deps.Logger.Info("Content services initialized", "media_enabled", d.Storage != nil)

	return nil
}

// Service getters
func (sm *serviceManager) User() UserService {
	return getService(sm, sm.userService, "user")
}

func (sm *serviceManager) Auth() AuthService {
	return getService(sm, sm.authService, "auth")
}

func (sm *serviceManager) Banner() BannerService {
	return getService(sm, sm.bannerService, "banner")
}

func (sm *serviceManager) Category() CategoryService {
	return getService(sm, sm.categoryService, "category")
}

func (sm *serviceManager) Course() CourseService {
	return getService(sm, sm.courseService, "course")
}

func (sm *serviceManager) Class() ClassService {
	return getService(sm, sm.classService, "class")
}

func (sm *serviceManager) Event() EventService {
	return getService(sm, sm.eventService, "event")
}

func (sm *serviceManager) Location() LocationService {
	return getService(sm, sm.locationService, "location")
}

func (sm *serviceManager) Testimonial() TestimonialService {
	return getService(sm, sm.testimonialService, "testimonial")
}

// Media returns nil when no object storage is configured.
func (sm *serviceManager) Media() MediaService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.mediaService
}

func getService[T any](sm *serviceManager, svc T, name string) T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic(name + " service requested before the service manager was initialized")
	}
	return svc
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	if sm.deps.Cache.Enabled() {
		if err := sm.deps.Cache.HealthCheck(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}
	if sm.deps.Storage != nil {
		if err := sm.deps.Storage.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close object storage", "error", err)
		}
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")
	return nil
}
