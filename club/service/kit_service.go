package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/store"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

// KitService encapsulates team kits and the kit request workflow. Kit request
// statuses are monotonic like every other request in the system.
type KitService struct {
	engine        *store.Engine
	notifications *NotificationService
}

// NewKitService creates a new KitService instance.
func NewKitService(engine *store.Engine, ns *NotificationService) *KitService {
	return &KitService{engine: engine, notifications: ns}
}

// CreateKit stores a kit design for a team.
func (ks *KitService) CreateKit(ctx context.Context, teamID, name, primary, secondary, season string) (*models.Kit, error) {
	if teamID == "" || name == "" {
		return nil, fmt.Errorf("%w: kit team id and name are required", ErrInvalidInput)
	}
	now := time.Now()
	kit := &models.Kit{
		ID:             uuid.NewString(),
		TeamID:         teamID,
		Name:           name,
		PrimaryColor:   primary,
		SecondaryColor: secondary,
		Season:         season,
		CreatedAt:      &now,
	}
	if err := ks.engine.Put(ctx, store.Kits, kit); err != nil {
		return nil, fmt.Errorf("service failed to create kit: %w", err)
	}
	return kit, nil
}

// KitsByTeam lists a team's kits via the team index.
func (ks *KitService) KitsByTeam(ctx context.Context, teamID string) ([]models.Kit, error) {
	kits, err := store.GetAllByIndex[models.Kit](ctx, ks.engine, store.Kits, "teamId", teamID)
	if err != nil {
		return nil, fmt.Errorf("service failed to list kits for team %s: %w", teamID, err)
	}
	return kits, nil
}

// SubmitRequest stores a pending kit request.
func (ks *KitService) SubmitRequest(ctx context.Context, teamID, kitID, requester string) (*models.KitRequest, error) {
	if teamID == "" || requester == "" {
		return nil, fmt.Errorf("%w: kit request team id and requester are required", ErrInvalidInput)
	}
	now := time.Now()
	req := &models.KitRequest{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		KitID:     kitID,
		Requester: requester,
		Status:    models.RequestPending,
		CreatedAt: &now,
	}
	if err := ks.engine.Put(ctx, store.KitRequests, req); err != nil {
		return nil, fmt.Errorf("service failed to submit kit request: %w", err)
	}
	return req, nil
}

// ApproveRequest flips a pending kit request to approved and tells the
// team's captain.
func (ks *KitService) ApproveRequest(ctx context.Context, id string) (*models.KitRequest, error) {
	return ks.closeRequest(ctx, id, models.RequestApproved)
}

// RejectRequest flips a pending kit request to rejected and tells the
// team's captain.
func (ks *KitService) RejectRequest(ctx context.Context, id string) (*models.KitRequest, error) {
	return ks.closeRequest(ctx, id, models.RequestRejected)
}

func (ks *KitService) closeRequest(ctx context.Context, id string, status models.RequestStatus) (*models.KitRequest, error) {
	req, err := store.Get[models.KitRequest](ctx, ks.engine, store.KitRequests, id)
	if err != nil {
		return nil, fmt.Errorf("service failed to get kit request: %w", err)
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != models.RequestPending {
		return nil, ErrRequestClosed
	}
	req.Status = status
	if err := ks.engine.Put(ctx, store.KitRequests, req); err != nil {
		return nil, fmt.Errorf("service failed to update kit request %s: %w", id, err)
	}

	if team, err := store.Get[models.Team](ctx, ks.engine, store.Teams, req.TeamID); err == nil && team != nil && team.CaptainID != "" {
		if _, err := ks.notifications.Create(ctx, models.Notification{
			UserID:  team.CaptainID,
			Type:    models.NotificationKitRequest,
			Title:   fmt.Sprintf("Kit request %s", status),
			Message: fmt.Sprintf("The kit request for %s is now %s", team.Name, status),
			TeamID:  team.ID,
		}); err != nil {
			log.Printf("WARN: Kit request %s closed but notifying captain failed: %v", id, err)
		}
	}
	return req, nil
}
