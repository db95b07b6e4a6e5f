package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/cache"
	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/metrics"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/places"
	"github.com/aps-academy/admin-service/internal/repositories"
)

const reviewsCacheKey = "latest"

// PlaceFetcher is the review source. *places.Client satisfies it.
type PlaceFetcher interface {
	Configured() bool
	FetchPlace(ctx context.Context) (*places.Place, error)
}

// ReviewSyncOptions tune fetching and caching of reviews
type ReviewSyncOptions struct {
	RetryCount int
	RetryDelay time.Duration
	CacheTTL   time.Duration
}

type testimonialService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	places    PlaceFetcher
	cache     *cache.CacheManager
	publisher events.EventPublisher
	metrics   *metrics.Metrics
	opts      ReviewSyncOptions
}

func NewTestimonialService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, source PlaceFetcher,
	cm *cache.CacheManager, publisher events.EventPublisher, m *metrics.Metrics, opts ReviewSyncOptions) TestimonialService {
	if opts.RetryCount < 1 {
		opts.RetryCount = 1
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.ReviewsCacheConfig.TTL
	}
	return &testimonialService{
		repo:      repo,
		db:        db,
		logger:    logger,
		places:    source,
		cache:     cm,
		publisher: publisher,
		metrics:   m,
		opts:      opts,
	}
}

// SyncReviews replaces the stored snapshot with the current reviews of the
// place. The fetch is retried a fixed number of times with a fixed delay.
func (s *testimonialService) SyncReviews(ctx context.Context) (result *SyncResult, err error) {
	defer func() { s.metrics.ReviewSync(err) }()

	if s.places == nil || !s.places.Configured() {
		return nil, ErrReviewsNotConfigured
	}

	s.logger.Info("Syncing reviews", "attempts", s.opts.RetryCount)

	var place *places.Place
	r := retrier.New(retrier.ConstantBackoff(s.opts.RetryCount-1, s.opts.RetryDelay), transientClassifier{})
	attempt := 0
	err = r.Run(func() error {
		attempt++
		var fetchErr error
		place, fetchErr = s.places.FetchPlace(ctx)
		if fetchErr != nil {
			s.logger.Warn("Review fetch failed", "attempt", attempt, "error", fetchErr)
		}
		return fetchErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	syncedAt := timeNow().UTC()
	reviews := testimonialsFromPlace(place, syncedAt)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Testimonial().ReplaceAll(ctx, tx, reviews)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store reviews: %w", err)
	}

	cache.DropReviews(ctx, s.cache, reviewsCacheKey)

	result = &SyncResult{Count: len(reviews), PlaceName: place.DisplayName.Text, SyncedAt: syncedAt}
	publish(ctx, s.publisher, s.logger, events.NewEvent(events.ReviewsSynced, "testimonial-service", events.ReviewsSyncedData{
		Count:     result.Count,
		PlaceName: result.PlaceName,
		SyncedAt:  syncedAt,
	}))
	s.logger.Info("Reviews synced", "count", result.Count, "place", result.PlaceName, "attempts", attempt)

	return result, nil
}

// GetReviews returns the latest snapshot, newest first, through the cache.
func (s *testimonialService) GetReviews(ctx context.Context) ([]*models.Testimonial, error) {
	var reviews []*models.Testimonial
	err := s.cache.Reviews.CacheOrExecute(ctx, reviewsCacheKey, &reviews, s.opts.CacheTTL, func() (interface{}, error) {
		return s.repo.Testimonial().List(ctx, s.db)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	if reviews == nil {
		reviews = []*models.Testimonial{}
	}
	return reviews, nil
}

// testimonialsFromPlace drops reviews without text and orders the rest by
// publish time, newest first.
func testimonialsFromPlace(place *places.Place, syncedAt time.Time) []*models.Testimonial {
	kept := make([]places.Review, 0, len(place.Reviews))
	for _, r := range place.Reviews {
		if strings.TrimSpace(r.Text.Text) != "" {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].PublishTime.After(kept[j].PublishTime)
	})

	out := make([]*models.Testimonial, 0, len(kept))
	for _, r := range kept {
		t := &models.Testimonial{
			Author:         r.AuthorAttribution.DisplayName,
			AuthorPhotoURL: nilIfEmpty(r.AuthorAttribution.PhotoURI),
			Text:           strings.TrimSpace(r.Text.Text),
			Rating:         r.Rating,
			RelativeTime:   r.RelativePublishTimeDescription,
			PlaceName:      place.DisplayName.Text,
			PlaceRating:    place.Rating,
			SyncedAt:       syncedAt,
		}
		if !r.PublishTime.IsZero() {
			published := r.PublishTime.UTC()
			t.PublishedAt = &published
		}
		out = append(out, t)
	}
	return out
}

// transientClassifier gives up on client errors and retries everything else
type transientClassifier struct{}

func (transientClassifier) Classify(err error) retrier.Action {
	if err == nil {
		return retrier.Succeed
	}

	var statusErr *places.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Temporary() {
			return retrier.Retry
		}
		return retrier.Fail
	}
	if errors.Is(err, places.ErrNotConfigured) || errors.Is(err, context.Canceled) {
		return retrier.Fail
	}
	return retrier.Retry
}
