package repositories

import "context"

// Repository groups every entity repository behind one handle
type Repository interface {
	// Accounts
	User() UserRepository

	// Catalogue
	Category() CategoryRepository
	Course() CourseRepository
	Class() ClassRepository
	Location() LocationRepository
	Event() EventRepository

	// Site content
	Banner() BannerRepository
	Testimonial() TestimonialRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
