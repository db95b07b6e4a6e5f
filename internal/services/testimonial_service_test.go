package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/eapache/go-resiliency/retrier"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aps-academy/admin-service/internal/cache"
	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/places"
)

func samplePlace() *places.Place {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	review := func(author, text string, rating int, age time.Duration) places.Review {
		return places.Review{
			Rating:                         rating,
			Text:                           places.LocalizedText{Text: text},
			AuthorAttribution:              places.AuthorAttribution{DisplayName: author},
			RelativePublishTimeDescription: "a week ago",
			PublishTime:                    base.Add(-age),
		}
	}
	return &places.Place{
		DisplayName: places.LocalizedText{Text: "APS Academy"},
		Rating:      4.8,
		Reviews: []places.Review{
			review("Old", "Good classes", 4, 72*time.Hour),
			review("Silent", "   ", 5, time.Hour),
			review("New", "Brilliant tutors", 5, 0),
			review("Mid", "Kids love it", 5, 24*time.Hour),
		},
	}
}

func TestSyncReviews_FiltersAndSorts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.places.place = samplePlace()

	result, err := env.manager.Testimonial().SyncReviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, "APS Academy", result.PlaceName)

	reviews, err := env.manager.Testimonial().GetReviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, []string{"New", "Mid", "Old"}, []string{reviews[0].Author, reviews[1].Author, reviews[2].Author})
	assert.Equal(t, 4.8, reviews[0].PlaceRating)

	assert.Len(t, env.publisher.EventsOfType(events.ReviewsSynced), 1)
}

func TestSyncReviews_ReplacesSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.places.place = samplePlace()

	_, err := env.manager.Testimonial().SyncReviews(ctx)
	require.NoError(t, err)

	env.places.place = &places.Place{
		DisplayName: places.LocalizedText{Text: "APS Academy"},
		Reviews:     []places.Review{{Text: places.LocalizedText{Text: "Only one"}, Rating: 5}},
	}
	_, err = env.manager.Testimonial().SyncReviews(ctx)
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&models.Testimonial{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSyncReviews_RetriesTransientFailures(t *testing.T) {
	env := newTestEnv(t)
	env.places.place = samplePlace()
	env.places.failures = 2
	env.places.err = &places.StatusError{StatusCode: http.StatusServiceUnavailable}

	_, err := env.manager.Testimonial().SyncReviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, env.places.calls)
}

func TestSyncReviews_GivesUpAfterRetryCount(t *testing.T) {
	env := newTestEnv(t)
	env.places.place = samplePlace()
	env.places.failures = 10
	env.places.err = errors.New("connection reset")

	_, err := env.manager.Testimonial().SyncReviews(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, env.places.calls)

	var count int64
	require.NoError(t, env.db.Model(&models.Testimonial{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSyncReviews_ClientErrorIsNotRetried(t *testing.T) {
	env := newTestEnv(t)
	env.places.failures = 10
	env.places.err = &places.StatusError{StatusCode: http.StatusForbidden}

	_, err := env.manager.Testimonial().SyncReviews(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, env.places.calls)
}

func TestSyncReviews_NotConfigured(t *testing.T) {
	env := newTestEnv(t)
	env.places.disabled = true

	_, err := env.manager.Testimonial().SyncReviews(context.Background())
	assert.ErrorIs(t, err, ErrReviewsNotConfigured)
	assert.Zero(t, env.places.calls)
}

func TestGetReviews_UsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := newTestEnv(t, func(d *Dependencies) { d.Cache = cache.NewCacheManager(client) })
	ctx := context.Background()
	env.places.place = samplePlace()

	_, err := env.manager.Testimonial().SyncReviews(ctx)
	require.NoError(t, err)

	reviews, err := env.manager.Testimonial().GetReviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.True(t, mr.Exists("reviews:latest"))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("reviews:latest").Seconds(), 1)

	// rows changed behind the cache are not visible until the next sync
	require.NoError(t, env.db.Where("1 = 1").Delete(&models.Testimonial{}).Error)
	cached, err := env.manager.Testimonial().GetReviews(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 3)

	_, err = env.manager.Testimonial().SyncReviews(ctx)
	require.NoError(t, err)
	assert.False(t, mr.Exists("reviews:latest"))
}

func TestTransientClassifier(t *testing.T) {
	c := transientClassifier{}
	assert.Equal(t, retrier.Succeed, c.Classify(nil))
	assert.Equal(t, retrier.Retry, c.Classify(&places.StatusError{StatusCode: http.StatusTooManyRequests}))
	assert.Equal(t, retrier.Retry, c.Classify(&places.StatusError{StatusCode: http.StatusBadGateway}))
	assert.Equal(t, retrier.Fail, c.Classify(&places.StatusError{StatusCode: http.StatusNotFound}))
	assert.Equal(t, retrier.Fail, c.Classify(places.ErrNotConfigured))
	assert.Equal(t, retrier.Fail, c.Classify(context.Canceled))
	assert.Equal(t, retrier.Retry, c.Classify(errors.New("dial tcp: timeout")))
}
