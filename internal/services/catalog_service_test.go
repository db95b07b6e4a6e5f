package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
)

func TestBannerService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Banner()

	_, err := svc.Create(ctx, &validator.BannerRequest{Title: "No media"}, adminActor())
	assert.Equal(t, utils.KindBadInput, utils.KindOf(err))

	second, err := svc.Create(ctx, &validator.BannerRequest{Title: "Second", MediaURL: "https://cdn/b.jpg", MediaType: "image/jpeg", Order: intPtr(2)}, adminActor())
	require.NoError(t, err)
	first, err := svc.Create(ctx, &validator.BannerRequest{Title: "First", MediaURL: "https://cdn/a.jpg", MediaType: "image/jpeg", Order: intPtr(1)}, adminActor())
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	updated, err := svc.Update(ctx, second.ID, &validator.BannerRequest{Title: "Top", MediaURL: "https://cdn/b.jpg", MediaType: "image/jpeg", Order: intPtr(0)}, adminActor())
	require.NoError(t, err)
	assert.Equal(t, "Top", updated.Title)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, list[0].ID)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), ErrBannerNotFound)
	_, err = svc.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrBannerNotFound)
}

func TestCategoryService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Category()

	robotics, err := svc.Create(ctx, &validator.CategoryRequest{Name: "Robotics"}, adminActor())
	require.NoError(t, err)
	assert.True(t, robotics.IsActive)

	_, err = svc.Create(ctx, &validator.CategoryRequest{Name: " Robotics "}, adminActor())
	assert.ErrorIs(t, err, ErrCategoryNameExists)

	coding, err := svc.Create(ctx, &validator.CategoryRequest{Name: "Coding", IsActive: boolPtr(false)}, adminActor())
	require.NoError(t, err)

	active, err := svc.List(ctx, repositories.CategoryFilters{IsActive: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, robotics.ID, active[0].ID)

	_, err = svc.Update(ctx, coding.ID, &validator.CategoryRequest{Name: "Robotics"}, adminActor())
	assert.ErrorIs(t, err, ErrCategoryNameExists)

	_, err = svc.Update(ctx, coding.ID, &validator.CategoryRequest{Name: "Coding", IsActive: boolPtr(true)}, adminActor())
	require.NoError(t, err)
	active, err = svc.List(ctx, repositories.CategoryFilters{IsActive: boolPtr(true)})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	_, err = env.manager.Course().Create(ctx, &validator.CourseRequest{
		Title: "Lego League", CourseCategoryID: robotics.ID, MediaURL: "https://cdn/c.jpg", MediaType: "image/jpeg",
	}, adminActor())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, robotics.ID), ErrCategoryInUse)
	require.NoError(t, svc.Delete(ctx, coding.ID))
	assert.ErrorIs(t, svc.Delete(ctx, coding.ID), ErrCategoryNotFound)
}

func TestCourseService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Course()
	category, _ := seedVenue(t, env.db)

	_, err := svc.Create(ctx, &validator.CourseRequest{
		Title: "Lego League", CourseCategoryID: "missing", MediaURL: "https://cdn/c.jpg", MediaType: "image/jpeg",
	}, adminActor())
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	course, err := svc.Create(ctx, &validator.CourseRequest{
		Title: "Lego League", CourseCategoryID: category.ID, AgeRange: strPtr("8-12"), MediaURL: "https://cdn/c.jpg", MediaType: "image/jpeg",
	}, adminActor())
	require.NoError(t, err)
	assert.True(t, course.IsActive)

	got, err := svc.GetByID(ctx, course.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Robotics", got.Category.Name)

	list, err := svc.List(ctx, repositories.CourseFilters{CategoryID: &category.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, course.ID))
	_, err = svc.GetByID(ctx, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func classRequest(courseID, locationID, room string) *validator.ClassRequest {
	return &validator.ClassRequest{
		CourseID: courseID, TermID: "term-1", LocationID: locationID, TutorID: "tutor-1",
		Day: "Saturday", StartDate: "01-02-2026", EndDate: "30-03-2026",
		StartTime: "09:00", EndTime: "10:30", Room: room, AvailableSeats: intPtr(12),
	}
}

func TestClassService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Class()
	category, location := seedVenue(t, env.db)
	course := &models.Course{Title: "Lego", CourseCategoryID: category.ID, MediaURL: "u", MediaType: "image/png", IsActive: true}
	require.NoError(t, env.db.Create(course).Error)

	_, err := svc.Create(ctx, classRequest(course.ID, location.ID, "Room Z"), adminActor())
	require.Error(t, err)
	assert.Equal(t, `Room "Room Z" does not exist in this location`, err.Error())

	_, err = svc.Create(ctx, classRequest("missing", location.ID, "Room A"), adminActor())
	assert.ErrorIs(t, err, ErrCourseNotFound)

	backwards := classRequest(course.ID, location.ID, "Room A")
	backwards.EndDate = "01-01-2026"
	_, err = svc.Create(ctx, backwards, adminActor())
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	badTime := classRequest(course.ID, location.ID, "Room A")
	badTime.StartTime = "9am"
	_, err = svc.Create(ctx, badTime, adminActor())
	assert.Equal(t, utils.KindBadInput, utils.KindOf(err))

	class, err := svc.Create(ctx, classRequest(course.ID, location.ID, "Room A"), adminActor())
	require.NoError(t, err)
	assert.Equal(t, 12, class.AvailableSeats)

	moved, err := svc.Update(ctx, class.ID, classRequest(course.ID, location.ID, "Room B"), adminActor())
	require.NoError(t, err)
	assert.Equal(t, "Room B", moved.Room)

	list, err := svc.List(ctx, repositories.ClassFilters{LocationID: &location.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, class.ID))
	assert.ErrorIs(t, svc.Delete(ctx, class.ID), ErrClassNotFound)
}

func eventRequest(categoryID, locationID string) *validator.EventRequest {
	return &validator.EventRequest{
		LocationID: locationID, CategoryID: categoryID, Title: "Holiday Camp",
		MediaURL: "https://cdn/e.jpg", MediaType: "image/jpeg",
		StartDate: "06-04-2026", EndDate: "10-04-2026", StartTime: "09:00", EndTime: "15:00",
		Room: "Room A", AvailableSeats: intPtr(20), Fees: floatPtr(250),
	}
}

func TestEventService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Event()
	category, location := seedVenue(t, env.db)

	event, err := svc.Create(ctx, eventRequest(category.ID, location.ID), adminActor())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultEventTimezone, event.Timezone)
	assert.True(t, event.IsActive)
	assert.False(t, event.CanEnroll)
	require.NotNil(t, event.Location)
	assert.Equal(t, location.Name, event.Location.Name)
	assert.Len(t, env.publisher.EventsOfType(events.EventCreated), 1)

	negative := eventRequest(category.ID, location.ID)
	negative.AvailableSeats = intPtr(-1)
	_, err = svc.Create(ctx, negative, adminActor())
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	wrongRoom := eventRequest(category.ID, location.ID)
	wrongRoom.Room = "Hall"
	_, err = svc.Create(ctx, wrongRoom, adminActor())
	assert.Equal(t, utils.KindBadInput, utils.KindOf(err))

	_, err = svc.Create(ctx, eventRequest(category.ID, "missing"), adminActor())
	assert.ErrorIs(t, err, ErrLocationNotFound)

	require.NoError(t, env.db.Model(category).Update("is_active", false).Error)
	_, err = svc.Create(ctx, eventRequest(category.ID, location.ID), adminActor())
	assert.ErrorIs(t, err, ErrCategoryInactive)

	require.NoError(t, env.db.Model(location).Update("is_active", false).Error)
	_, err = svc.Create(ctx, eventRequest(category.ID, location.ID), adminActor())
	assert.ErrorIs(t, err, ErrLocationInactive)
}

func TestEventService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Event()
	category, location := seedVenue(t, env.db)

	event, err := svc.Create(ctx, eventRequest(category.ID, location.ID), adminActor())
	require.NoError(t, err)

	other := &models.Location{
		Name: "Docklands", AddressLine1: "2 Dock Rd", Suburb: "Docklands", City: "Melbourne",
		State: "VIC", Country: "Australia", Postcode: "3008", Rooms: []string{"Studio"}, IsActive: true,
	}
	require.NoError(t, env.db.Create(other).Error)

	_, err = svc.Update(ctx, event.ID, &validator.EventUpdateRequest{LocationID: &other.ID}, adminActor())
	require.Error(t, err)
	assert.Equal(t, `Room "Room A" does not exist in the new location`, err.Error())

	moved, err := svc.Update(ctx, event.ID, &validator.EventUpdateRequest{LocationID: &other.ID, Room: strPtr("Studio")}, adminActor())
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.LocationID)
	assert.Equal(t, "Studio", moved.Room)

	_, err = svc.Update(ctx, event.ID, &validator.EventUpdateRequest{CategoryID: strPtr("missing")}, adminActor())
	assert.ErrorIs(t, err, ErrNewCategoryNotFound)

	_, err = svc.Update(ctx, event.ID, &validator.EventUpdateRequest{EndDate: strPtr("01-04-2026")}, adminActor())
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	renamed, err := svc.Update(ctx, event.ID, &validator.EventUpdateRequest{Title: strPtr("Winter Camp"), Fees: floatPtr(300)}, adminActor())
	require.NoError(t, err)
	assert.Equal(t, "Winter Camp", renamed.Title)
	assert.Equal(t, 300.0, renamed.Fees)

	deactivated, err := svc.Deactivate(ctx, event.ID, adminActor())
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}

func locationRequest(rooms interface{}) *validator.LocationRequest {
	return &validator.LocationRequest{
		Name: "Carlton Hall", AddressLine1: "1 Main St", Suburb: "Carlton", City: "Melbourne",
		State: "VIC", Postcode: "3053", Rooms: rooms,
	}
}

func TestLocationService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Location()

	location, err := svc.Create(ctx, locationRequest([]interface{}{"Room A", "Room B"}), adminActor())
	require.NoError(t, err)
	assert.Equal(t, "Australia", location.Country)
	assert.Equal(t, []string{"Room A", "Room B"}, []string(location.Rooms))
	assert.True(t, location.IsActive)

	bare, err := svc.Create(ctx, locationRequest(nil), adminActor())
	require.NoError(t, err)
	assert.Empty(t, bare.Rooms)

	_, err = svc.Create(ctx, locationRequest("Room A"), adminActor())
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Rooms must be an array", verrs.Summary())

	missing := locationRequest(nil)
	missing.Postcode = ""
	_, err = svc.Create(ctx, missing, adminActor())
	assert.Equal(t, utils.KindBadInput, utils.KindOf(err))
}

func TestLocationService_Deactivate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Location()
	category, location := seedVenue(t, env.db)

	event, err := env.manager.Event().Create(ctx, eventRequest(category.ID, location.ID), adminActor())
	require.NoError(t, err)

	_, err = svc.Deactivate(ctx, location.ID, adminActor())
	assert.ErrorIs(t, err, ErrLocationHasEvents)
	got, err := svc.GetByID(ctx, location.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Len(t, got.Events, 1)

	_, err = env.manager.Event().Deactivate(ctx, event.ID, adminActor())
	require.NoError(t, err)

	deactivated, err := svc.Deactivate(ctx, location.ID, adminActor())
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
	assert.Len(t, env.publisher.EventsOfType(events.LocationDeactivated), 1)

	_, err = svc.Deactivate(ctx, "missing", adminActor())
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestLocationService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Location()
	_, location := seedVenue(t, env.db)

	updated, err := svc.Update(ctx, location.ID, &validator.LocationRequest{Name: "Carlton Annex", Rooms: []interface{}{"Room C"}}, adminActor())
	require.NoError(t, err)
	assert.Equal(t, "Carlton Annex", updated.Name)
	assert.Equal(t, "Carlton", updated.Suburb)
	assert.Equal(t, []string{"Room C"}, []string(updated.Rooms))

	_, err = svc.Update(ctx, location.ID, &validator.LocationRequest{Rooms: 5}, adminActor())
	assert.Error(t, err)
}

func TestLocationService_UpdateInactiveWithActiveEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Location()
	category, location := seedVenue(t, env.db)

	event, err := env.manager.Event().Create(ctx, eventRequest(category.ID, location.ID), adminActor())
	require.NoError(t, err)

	_, err = svc.Update(ctx, location.ID, &validator.LocationRequest{IsActive: boolPtr(false)}, adminActor())
	assert.ErrorIs(t, err, ErrLocationHasEvents)
	got, err := svc.GetByID(ctx, location.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	_, err = env.manager.Event().Deactivate(ctx, event.ID, adminActor())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, location.ID, &validator.LocationRequest{IsActive: boolPtr(false)}, adminActor())
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}
