package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
)

// publish sends a domain event. Delivery failures are logged and never fail
// the operation that produced the event.
func publish(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event *events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish event", "type", event.Type, "event_id", event.ID, "error", err)
	}
}

// fieldSource is a request that exposes its fields by JSON name
type fieldSource interface {
	Fields() map[string]interface{}
}

// validateRequest checks required fields first, then struct tags.
func validateRequest(v *validator.Validator, req fieldSource, required []string) error {
	if err := utils.ValidateRequiredFields(req.Fields(), required, ""); err != nil {
		return err
	}
	return v.Validate(req)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

var timeNow = time.Now
