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

// InvitationService encapsulates the business logic for team invitations.
// Status transitions are monotonic: once accepted or rejected, an invitation
// never returns to pending.
type InvitationService struct {
	engine        *store.Engine
	notifications *NotificationService
}

// NewInvitationService creates a new InvitationService instance.
func NewInvitationService(engine *store.Engine, ns *NotificationService) *InvitationService {
	return &InvitationService{engine: engine, notifications: ns}
}

// Create stores a pending invitation. Captain, team and player names are
// captured at creation time so later renames do not rewrite history.
func (is *InvitationService) Create(ctx context.Context, teamID, playerID string) (*models.TeamInvitation, error) {
	team, err := store.Get[models.Team](ctx, is.engine, store.Teams, teamID)
	if err != nil {
		return nil, fmt.Errorf("service failed to load team: %w", err)
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	player, err := store.Get[models.Player](ctx, is.engine, store.Players, playerID)
	if err != nil {
		return nil, fmt.Errorf("service failed to load player: %w", err)
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	captainName := ""
	if captain, err := store.Get[models.User](ctx, is.engine, store.Users, team.CaptainID); err == nil && captain != nil {
		captainName = captain.Username
	}

	now := time.Now()
	inv := &models.TeamInvitation{
		ID:          uuid.NewString(),
		TeamID:      teamID,
		PlayerID:    playerID,
		CaptainName: captainName,
		TeamName:    team.Name,
		PlayerName:  player.Name,
		Status:      models.InvitationPending,
		CreatedAt:   &now,
	}
	if err := is.engine.Put(ctx, store.Invitations, inv); err != nil {
		return nil, fmt.Errorf("service failed to create invitation: %w", err)
	}

	if player.UserID != "" {
		if _, err := is.notifications.Create(ctx, models.Notification{
			UserID:       player.UserID,
			Type:         models.NotificationInvitation,
			Title:        "Team invitation",
			Message:      fmt.Sprintf("%s invited you to join %s", captainName, team.Name),
			TeamID:       teamID,
			InvitationID: inv.ID,
		}); err != nil {
			log.Printf("WARN: Invitation %s created but notifying player failed: %v", inv.ID, err)
		}
	}
	return inv, nil
}

// Accept closes the invitation, assigns the player to the team, credits the
// captain's recruitment counter and tells the captain. The steps after the
// status flip are best-effort saga steps.
func (is *InvitationService) Accept(ctx context.Context, id string) (*models.TeamInvitation, error) {
	inv, err := is.getPending(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Status = models.InvitationAccepted
	if err := is.engine.Put(ctx, store.Invitations, inv); err != nil {
		return nil, fmt.Errorf("service failed to accept invitation %s: %w", id, err)
	}

	player, err := store.Get[models.Player](ctx, is.engine, store.Players, inv.PlayerID)
	if err == nil && player != nil {
		player.TeamID = inv.TeamID
		err = is.engine.Put(ctx, store.Players, player)
	}
	if err != nil {
		log.Printf("ERROR: Invitation %s accepted but assigning player %s to team %s failed: %v", id, inv.PlayerID, inv.TeamID, err)
		return inv, fmt.Errorf("invitation accepted but team assignment failed, re-assign manually: %w", err)
	}

	if err := is.creditRecruitment(ctx, inv.TeamID); err != nil {
		log.Printf("WARN: Invitation %s accepted but crediting captain failed: %v", id, err)
	}
	is.notifyCaptain(ctx, inv, "accepted")
	return inv, nil
}

// Reject closes the invitation and tells the captain.
func (is *InvitationService) Reject(ctx context.Context, id string) (*models.TeamInvitation, error) {
	inv, err := is.getPending(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Status = models.InvitationRejected
	if err := is.engine.Put(ctx, store.Invitations, inv); err != nil {
		return nil, fmt.Errorf("service failed to reject invitation %s: %w", id, err)
	}
	is.notifyCaptain(ctx, inv, "rejected")
	return inv, nil
}

// ByPlayer lists a player's invitations via the player index.
func (is *InvitationService) ByPlayer(ctx context.Context, playerID string) ([]models.TeamInvitation, error) {
	invitations, err := store.GetAllByIndex[models.TeamInvitation](ctx, is.engine, store.Invitations, "playerId", playerID)
	if err != nil {
		return nil, fmt.Errorf("service failed to list invitations for player %s: %w", playerID, err)
	}
	return invitations, nil
}

func (is *InvitationService) getPending(ctx context.Context, id string) (*models.TeamInvitation, error) {
	inv, err := store.Get[models.TeamInvitation](ctx, is.engine, store.Invitations, id)
	if err != nil {
		return nil, fmt.Errorf("service failed to get invitation: %w", err)
	}
	if inv == nil {
		return nil, ErrInvitationNotFound
	}
	if inv.Status != models.InvitationPending {
		return nil, ErrInvitationClosed
	}
	return inv, nil
}

func (is *InvitationService) creditRecruitment(ctx context.Context, teamID string) error {
	team, err := store.Get[models.Team](ctx, is.engine, store.Teams, teamID)
	if err != nil || team == nil || team.CaptainID == "" {
		return err
	}
	stats, err := store.Get[models.CaptainStats](ctx, is.engine, store.CaptainStats, team.CaptainID)
	if err != nil {
		return err
	}
	if stats == nil {
		stats = &models.CaptainStats{UserID: team.CaptainID, Rank: models.CaptainRookie}
	}
	stats.PlayersRecruited++
	stats.RankPoints += pointsRecruit
	stats.Rank = RankForPoints(stats.RankPoints)
	return is.engine.Put(ctx, store.CaptainStats, stats)
}

func (is *InvitationService) notifyCaptain(ctx context.Context, inv *models.TeamInvitation, verdict string) {
	team, err := store.Get[models.Team](ctx, is.engine, store.Teams, inv.TeamID)
	if err != nil || team == nil || team.CaptainID == "" {
		return
	}
	if _, err := is.notifications.Create(ctx, models.Notification{
		UserID:       team.CaptainID,
		Type:         models.NotificationInvitation,
		Title:        "Invitation " + verdict,
		Message:      fmt.Sprintf("%s %s the invitation to %s", inv.PlayerName, verdict, inv.TeamName),
		TeamID:       inv.TeamID,
		InvitationID: inv.ID,
	}); err != nil {
		log.Printf("WARN: Failed to notify captain about invitation %s: %v", inv.ID, err)
	}
}
