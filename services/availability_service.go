// file: services/availability_service.go
package services

import (
	"context"
	"fmt"

	"MYR/models"

	"go.uber.org/zap"
)

// AvailabilityService reads and saves a member's own weekly schedule.
type AvailabilityService struct {
	users   UserStore
	overlap *OverlapService
	log     *zap.Logger
}

func NewAvailabilityService(users UserStore, overlap *OverlapService, log *zap.Logger) *AvailabilityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AvailabilityService{users: users, overlap: overlap, log: log}
}

// Get returns the stored schedule, empty when none was saved.
func (s *AvailabilityService) Get(ctx context.Context, userID uint32) (models.WeeklyAvailability, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	avail, err := models.ParseWeeklyAvailability(user.ScheduleJSON)
	if err != nil {
		s.log.Warn("stored availability unreadable", zap.Uint32("user_id", userID), zap.Error(err))
		return models.WeeklyAvailability{}, nil
	}
	return avail, nil
}

// Save replaces the days present in update and keeps the others.
func (s *AvailabilityService) Save(ctx context.Context, userID uint32, update models.WeeklyAvailability) (models.WeeklyAvailability, error) {
	if len(update) == 0 {
		return nil, invalid("schedule", "at least one day is required")
	}
	merged, err := s.users.UpdateSchedule(ctx, userID, func(current models.WeeklyAvailability) models.WeeklyAvailability {
		return current.Merge(update)
	})
	if err != nil {
		return nil, fmt.Errorf("save availability: %w", err)
	}
	s.overlap.Invalidate(ctx)
	s.log.Debug("availability saved", zap.Uint32("user_id", userID), zap.Int("days", len(update)))
	return merged, nil
}
