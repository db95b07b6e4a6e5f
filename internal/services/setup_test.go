package services

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/auth"
	"github.com/aps-academy/admin-service/internal/cache"
	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/metrics"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/places"
	"github.com/aps-academy/admin-service/internal/repositories/postgres"
	"github.com/aps-academy/admin-service/internal/storage"
	"github.com/aps-academy/admin-service/internal/testutil"
	"github.com/aps-academy/admin-service/internal/validator"
)

type testEnv struct {
	db        *gorm.DB
	manager   ServiceManager
	publisher *events.MockEventPublisher
	storage   *storage.MemoryStorage
	tokens    *auth.TokenIssuer
	places    *fakePlaces
}

type envOption func(*Dependencies)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	db := testutil.OpenTestDB(t)
	logger := testutil.DiscardLogger()

	env := &testEnv{
		db:        db,
		publisher: events.NewMockEventPublisher(logger),
		storage:   storage.NewMemoryStorage("test-bucket"),
		tokens:    auth.NewTokenIssuer("test-secret", "admin-service", time.Hour),
		places:    &fakePlaces{},
	}

	deps := Dependencies{
		DB:        db,
		Repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		Logger:    logger,
		Validator: validator.New(),
		Tokens:    env.tokens,
		Cache:     cache.NewCacheManager(nil),
		Publisher: env.publisher,
		Storage:   env.storage,
		Places:    env.places,
		Metrics:   metrics.New(prometheus.NewRegistry()),
		Reviews:   ReviewSyncOptions{RetryCount: 3, RetryDelay: time.Millisecond, CacheTTL: time.Hour},
	}
	for _, opt := range opts {
		opt(&deps)
	}

	env.manager = NewServiceManager(deps)
	require.NoError(t, env.manager.Initialize(context.Background()))
	return env
}

func adminActor() *Actor {
	return &Actor{ID: "admin-1", Role: models.RoleAdmin}
}

func adult(first, email string) PersonRecord {
	return PersonRecord{FirstName: first, LastName: "Lee", Email: email, Password: "pw", DOB: "15-03-1990"}
}

func child(first, dob string) PersonRecord {
	return PersonRecord{FirstName: first, LastName: "Lee", Password: "pw", DOB: dob}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func floatPtr(f float64) *float64 { return &f }

func countUsers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	return n
}

// seedVenue creates an active category and an active location with rooms.
func seedVenue(t *testing.T, db *gorm.DB) (*models.CourseCategory, *models.Location) {
	t.Helper()
	category := &models.CourseCategory{Name: "Robotics", IsActive: true}
	require.NoError(t, db.Create(category).Error)

	location := &models.Location{
		Name: "Carlton Hall", AddressLine1: "1 Main St", Suburb: "Carlton", City: "Melbourne",
		State: "VIC", Country: "Australia", Postcode: "3053",
		Rooms: datatypes.JSONSlice[string]{"Room A", "Room B"}, IsActive: true,
	}
	require.NoError(t, db.Create(location).Error)
	return category, location
}

// fakePlaces serves a canned place, failing the first failures calls.
type fakePlaces struct {
	place    *places.Place
	failures int
	err      error
	calls    int
	disabled bool
}

func (f *fakePlaces) Configured() bool { return !f.disabled }

func (f *fakePlaces) FetchPlace(ctx context.Context) (*places.Place, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return f.place, nil
}
