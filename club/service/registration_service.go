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

// RegistrationService handles the "ask for a card" workflow. Approval is the
// canonical multi-collection saga: flip the request, issue the card, link the
// user - with no transaction across the three, a late failure leaves a
// partial state the operator is told about.
type RegistrationService struct {
	engine        *store.Engine
	players       *PlayerService
	notifications *NotificationService
}

// NewRegistrationService creates a new RegistrationService instance.
func NewRegistrationService(engine *store.Engine, ps *PlayerService, ns *NotificationService) *RegistrationService {
	return &RegistrationService{engine: engine, players: ps, notifications: ns}
}

// Submit stores a pending registration request.
func (rs *RegistrationService) Submit(ctx context.Context, userID, playerName string, role models.Role, attrs models.Attributes) (*models.RegistrationRequest, error) {
	if userID == "" || playerName == "" {
		return nil, fmt.Errorf("%w: user id and player name are required", ErrInvalidInput)
	}
	now := time.Now()
	req := &models.RegistrationRequest{
		ID:         uuid.NewString(),
		UserID:     userID,
		PlayerName: playerName,
		Role:       role,
		Attributes: attrs,
		Status:     models.RequestPending,
		CreatedAt:  &now,
	}
	if err := rs.engine.Put(ctx, store.RegistrationRequests, req); err != nil {
		return nil, fmt.Errorf("service failed to submit registration request: %w", err)
	}
	return req, nil
}

// Approve flips the request to approved, then issues the card (which links
// the user). If card issuance fails after the flip, the request stays
// approved and the returned error says what is left to re-run.
func (rs *RegistrationService) Approve(ctx context.Context, id string) (*models.Player, error) {
	req, err := rs.getPending(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Status = models.RequestApproved
	if err := rs.engine.Put(ctx, store.RegistrationRequests, req); err != nil {
		return nil, fmt.Errorf("service failed to approve request %s: %w", id, err)
	}

	player, err := rs.players.IssueCard(ctx, IssueCardInput{
		UserID:     req.UserID,
		Name:       req.PlayerName,
		Role:       req.Role,
		Attributes: req.Attributes,
	})
	if err != nil {
		log.Printf("ERROR: Request %s approved but card issuance failed: %v", id, err)
		return player, fmt.Errorf("request approved but card issuance incomplete, re-run issuance for user %s: %w", req.UserID, err)
	}

	if _, err := rs.notifications.Create(ctx, models.Notification{
		UserID:  req.UserID,
		Type:    models.NotificationRegistration,
		Title:   "Registration approved",
		Message: fmt.Sprintf("Your player card %s has been issued", req.PlayerName),
	}); err != nil {
		log.Printf("WARN: Request %s approved but notifying user failed: %v", id, err)
	}
	return player, nil
}

// Reject flips the request to rejected and tells the user.
func (rs *RegistrationService) Reject(ctx context.Context, id string) (*models.RegistrationRequest, error) {
	req, err := rs.getPending(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Status = models.RequestRejected
	if err := rs.engine.Put(ctx, store.RegistrationRequests, req); err != nil {
		return nil, fmt.Errorf("service failed to reject request %s: %w", id, err)
	}
	if _, err := rs.notifications.Create(ctx, models.Notification{
		UserID:  req.UserID,
		Type:    models.NotificationRegistration,
		Title:   "Registration rejected",
		Message: fmt.Sprintf("Your registration request for %s was rejected", req.PlayerName),
	}); err != nil {
		log.Printf("WARN: Request %s rejected but notifying user failed: %v", id, err)
	}
	return req, nil
}

// Pending lists all open requests via the status index.
func (rs *RegistrationService) Pending(ctx context.Context) ([]models.RegistrationRequest, error) {
	reqs, err := store.GetAllByIndex[models.RegistrationRequest](ctx, rs.engine, store.RegistrationRequests, "status", string(models.RequestPending))
	if err != nil {
		return nil, fmt.Errorf("service failed to list pending requests: %w", err)
	}
	return reqs, nil
}

func (rs *RegistrationService) getPending(ctx context.Context, id string) (*models.RegistrationRequest, error) {
	req, err := store.Get[models.RegistrationRequest](ctx, rs.engine, store.RegistrationRequests, id)
	if err != nil {
		return nil, fmt.Errorf("service failed to get request: %w", err)
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != models.RequestPending {
		return nil, ErrRequestClosed
	}
	return req, nil
}
