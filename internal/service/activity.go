package service

import (
	"context"

	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
)

// DefaultFeedLimit caps the activity feed when caller supplies no limit
const DefaultFeedLimit = 10

// ActivityService exposes the read-only activity feed,
// newest entries first
type ActivityService interface {
	Feed(ctx context.Context, limit int) ([]*model.Activity, error)
}

type activityService struct {
	activityRps repository.ActivityRepository
}

// NewActivityService builds new ActivityService
func NewActivityService(activityRps repository.ActivityRepository) ActivityService {
	return &activityService{activityRps: activityRps}
}

func (s *activityService) Feed(ctx context.Context, limit int) ([]*model.Activity, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	activities, err := s.activityRps.FindLatest(ctx, limit)
	if err != nil {
		return nil, err
	}
	return activities, nil
}
