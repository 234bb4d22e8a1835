package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/store"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

// ScoutService encapsulates scout profiles and their append-only activity log.
type ScoutService struct {
	engine *store.Engine
}

// NewScoutService creates a new ScoutService instance.
func NewScoutService(engine *store.Engine) *ScoutService {
	return &ScoutService{engine: engine}
}

// CreateProfile stores a scout profile for an account.
func (ss *ScoutService) CreateProfile(ctx context.Context, userID, name, region, bio string) (*models.ScoutProfile, error) {
	if userID == "" || name == "" {
		return nil, fmt.Errorf("%w: scout user id and name are required", ErrInvalidInput)
	}
	now := time.Now()
	profile := &models.ScoutProfile{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Region:    region,
		Bio:       bio,
		CreatedAt: &now,
	}
	if err := ss.engine.Put(ctx, store.ScoutProfiles, profile); err != nil {
		return nil, fmt.Errorf("service failed to create scout profile: %w", err)
	}
	return profile, nil
}

// GetProfile retrieves a scout profile by id.
func (ss *ScoutService) GetProfile(ctx context.Context, id string) (*models.ScoutProfile, error) {
	profile, err := store.Get[models.ScoutProfile](ctx, ss.engine, store.ScoutProfiles, id)
	if err != nil {
		return nil, fmt.Errorf("service failed to get scout profile: %w", err)
	}
	if profile == nil {
		return nil, ErrScoutNotFound
	}
	return profile, nil
}

// LogActivity appends one entry to a scout's activity log.
func (ss *ScoutService) LogActivity(ctx context.Context, scoutID, playerID, action, note string) (*models.ScoutActivity, error) {
	if scoutID == "" || action == "" {
		return nil, fmt.Errorf("%w: scout id and action are required", ErrInvalidInput)
	}
	now := time.Now()
	activity := &models.ScoutActivity{
		ID:        uuid.NewString(),
		ScoutID:   scoutID,
		PlayerID:  playerID,
		Action:    action,
		Note:      note,
		CreatedAt: &now,
	}
	if err := ss.engine.Put(ctx, store.ScoutActivities, activity); err != nil {
		return nil, fmt.Errorf("service failed to log scout activity: %w", err)
	}
	return activity, nil
}

// ActivitiesByScout lists a scout's activities via the scout index.
func (ss *ScoutService) ActivitiesByScout(ctx context.Context, scoutID string) ([]models.ScoutActivity, error) {
	activities, err := store.GetAllByIndex[models.ScoutActivity](ctx, ss.engine, store.ScoutActivities, "scoutId", scoutID)
	if err != nil {
		return nil, fmt.Errorf("service failed to list activities for scout %s: %w", scoutID, err)
	}
	return activities, nil
}
