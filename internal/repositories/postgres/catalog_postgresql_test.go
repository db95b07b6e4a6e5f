package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/testutil"
)

func seedLocationWithEvents(t *testing.T, db *gorm.DB) (*models.Location, *models.CourseCategory) {
	t.Helper()
	category := &models.CourseCategory{Name: "Chess", IsActive: true}
	require.NoError(t, db.Create(category).Error)

	location := &models.Location{
		Name: "Hall", AddressLine1: "1 Main St", Suburb: "Carlton", City: "Melbourne",
		State: "VIC", Country: "Australia", Postcode: "3053",
		Rooms: datatypes.JSONSlice[string]{"Room A"}, IsActive: true,
	}
	require.NoError(t, db.Create(location).Error)

	for i, day := range []int{20, 5, 12} {
		event := &models.Event{
			LocationID: location.ID, CategoryID: category.ID, Title: "Event",
			MediaURL: "u", MediaType: "image/png", Room: "Room A", Timezone: models.DefaultEventTimezone,
			StartDate: datatypes.Date(time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)),
			EndDate:   datatypes.Date(time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)),
			IsActive:  i != 2,
		}
		require.NoError(t, db.Create(event).Error)
	}
	return location, category
}

func TestLocationEventsOrderedByStartDate(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	location, _ := seedLocationWithEvents(t, db)

	got, err := NewLocationPostgreSQL(db).GetByIDWithEvents(ctx, nil, location.ID)
	require.NoError(t, err)
	require.Len(t, got.Events, 3)
	assert.Equal(t, 5, time.Time(got.Events[0].StartDate).Day())
	assert.Equal(t, 20, time.Time(got.Events[2].StartDate).Day())
	assert.Equal(t, []string{"Room A"}, []string(got.Rooms))
}

func TestEventCountActiveByLocation(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	location, category := seedLocationWithEvents(t, db)
	repo := NewEventPostgreSQL(db)

	n, err := repo.CountActiveByLocation(ctx, nil, location.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	active := true
	events, err := repo.List(ctx, nil, repositories.EventFilters{IsActive: &active, CategoryID: &category.ID})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, time.Time(events[0].StartDate).Before(time.Time(events[1].StartDate)))
	require.NotNil(t, events[0].Location)
	assert.Equal(t, "Hall", events[0].Location.Name)
}

func TestCategoryNameExistsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewCategoryPostgreSQL(db)

	category := &models.CourseCategory{Name: "Robotics", IsActive: true}
	require.NoError(t, repo.Create(ctx, nil, category))

	exists, err := repo.NameExists(ctx, nil, "  ROBOTICS ", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.NameExists(ctx, nil, "robotics", category.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteMissingReportsNotFound(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)

	assert.True(t, repositories.IsNotFoundError(NewBannerPostgreSQL(db).Delete(ctx, nil, "missing")))
	assert.True(t, repositories.IsNotFoundError(NewCategoryPostgreSQL(db).Delete(ctx, nil, "missing")))
	assert.True(t, repositories.IsNotFoundError(NewCoursePostgreSQL(db).Delete(ctx, nil, "missing")))
	assert.True(t, repositories.IsNotFoundError(NewClassPostgreSQL(db).Delete(ctx, nil, "missing")))
}

func TestBannerListOrder(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewBannerPostgreSQL(db)

	for _, order := range []int{3, 1, 2} {
		require.NoError(t, repo.Create(ctx, nil, &models.Banner{Title: "b", MediaURL: "u", MediaType: "image/png", Order: order}))
	}

	banners, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, banners, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{banners[0].Order, banners[1].Order, banners[2].Order})
}

func TestTestimonialReplaceAllIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewPostgreSQLRepository(RepositoryConfig{DB: db})

	first := []*models.Testimonial{{Author: "A", Text: "great", Rating: 5}}
	require.NoError(t, repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return tx.Testimonial().ReplaceAll(ctx, nil, first)
	}))

	failure := errors.New("abort")
	err := repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Testimonial().ReplaceAll(ctx, nil, []*models.Testimonial{{Author: "B", Text: "ok", Rating: 4}}); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	reviews, err := repo.Testimonial().List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "A", reviews[0].Author)
}
