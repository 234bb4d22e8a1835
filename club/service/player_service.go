package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/rating"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/store"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

// PlayerService encapsulates the business logic for player cards. Every path
// that touches attributes or performance recomputes the rating through the
// rating engine before persisting - a card never carries a hand-edited rating.
type PlayerService struct {
	engine *store.Engine
}

// NewPlayerService creates a new PlayerService instance.
func NewPlayerService(engine *store.Engine) *PlayerService {
	return &PlayerService{engine: engine}
}

// IssueCardInput is what a privileged caller provides to mint a card.
type IssueCardInput struct {
	UserID     string
	Name       string
	Role       models.Role
	Attributes models.Attributes
	TeamID     string
}

// IssueCard creates a player card for an account and links the account back
// to it. The two puts are independent: if the back-link fails after the card
// was created, the card stays and the caller gets a partial-success error to
// reconcile (see the saga note in the store contract).
func (ps *PlayerService) IssueCard(ctx context.Context, in IssueCardInput) (*models.Player, error) {
	if in.Name == "" || in.UserID == "" {
		return nil, fmt.Errorf("%w: player name and user id are required", ErrInvalidInput)
	}

	user, err := store.Get[models.User](ctx, ps.engine, store.Users, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("service failed to load owning user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	score, tier := rating.Evaluate(in.Attributes, in.Role, models.Performance{})
	now := time.Now()
	player := &models.Player{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		Name:       in.Name,
		Role:       in.Role,
		TeamID:     in.TeamID,
		Attributes: in.Attributes,
		Rating:     score,
		Tier:       tier,
		CreatedAt:  &now,
		UpdatedAt:  &now,
	}
	if err := ps.engine.Put(ctx, store.Players, player); err != nil {
		return nil, fmt.Errorf("service failed to create player card: %w", err)
	}

	user.PlayerID = player.ID
	if err := ps.engine.Put(ctx, store.Users, user); err != nil {
		log.Printf("ERROR: Card %s created but linking user %s failed: %v", player.ID, in.UserID, err)
		return player, fmt.Errorf("card created but user link failed, re-link user %s manually: %w", in.UserID, err)
	}

	return player, nil
}

// GetPlayer retrieves a player card by id.
func (ps *PlayerService) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	player, err := store.Get[models.Player](ctx, ps.engine, store.Players, id)
	if err != nil {
		return nil, fmt.Errorf("service failed to get player: %w", err)
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

// AllPlayers returns every card.
func (ps *PlayerService) AllPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := store.GetAll[models.Player](ctx, ps.engine, store.Players)
	if err != nil {
		return nil, fmt.Errorf("service failed to list players: %w", err)
	}
	return players, nil
}

// PlayersByTeam returns every card assigned to a team, via the team index.
func (ps *PlayerService) PlayersByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	players, err := store.GetAllByIndex[models.Player](ctx, ps.engine, store.Players, "teamId", teamID)
	if err != nil {
		return nil, fmt.Errorf("service failed to list players for team %s: %w", teamID, err)
	}
	return players, nil
}

// UpdateAttributes replaces the attribute vector and re-derives the rating.
func (ps *PlayerService) UpdateAttributes(ctx context.Context, playerID string, attrs models.Attributes) (*models.Player, error) {
	player, err := ps.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	player.Attributes = attrs
	player.Rating, player.Tier = rating.Evaluate(player.Attributes, player.Role, player.Performance)
	now := time.Now()
	player.UpdatedAt = &now

	if err := ps.engine.Put(ctx, store.Players, player); err != nil {
		return nil, fmt.Errorf("service failed to update attributes for player %s: %w", playerID, err)
	}
	return player, nil
}

// RecordPerformance adds the (non-negative) counter deltas from one or more
// matches onto the card's cumulative counters and re-derives the rating.
func (ps *PlayerService) RecordPerformance(ctx context.Context, playerID string, delta models.Performance) (*models.Player, error) {
	for _, n := range []int{
		delta.Goals, delta.Assists, delta.DefensiveActions, delta.CleanSheets,
		delta.Saves, delta.PenaltySaves, delta.OwnGoals, delta.GoalsConceded,
		delta.PenaltiesMissed, delta.MatchesPlayed,
	} {
		if n < 0 {
			return nil, fmt.Errorf("%w: performance counters only grow", ErrInvalidInput)
		}
	}

	player, err := ps.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	p := &player.Performance
	p.Goals += delta.Goals
	p.Assists += delta.Assists
	p.DefensiveActions += delta.DefensiveActions
	p.CleanSheets += delta.CleanSheets
	p.Saves += delta.Saves
	p.PenaltySaves += delta.PenaltySaves
	p.OwnGoals += delta.OwnGoals
	p.GoalsConceded += delta.GoalsConceded
	p.PenaltiesMissed += delta.PenaltiesMissed
	p.MatchesPlayed += delta.MatchesPlayed

	player.Rating, player.Tier = rating.Evaluate(player.Attributes, player.Role, player.Performance)
	now := time.Now()
	player.UpdatedAt = &now

	if err := ps.engine.Put(ctx, store.Players, player); err != nil {
		return nil, fmt.Errorf("service failed to record performance for player %s: %w", playerID, err)
	}
	return player, nil
}

// Like records a like from likerID. Liking twice is a no-op.
func (ps *PlayerService) Like(ctx context.Context, playerID, likerID string) (*models.Player, error) {
	if likerID == "" {
		return nil, fmt.Errorf("%w: liker id is required", ErrInvalidInput)
	}
	player, err := ps.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	for _, id := range player.LikedBy {
		if id == likerID {
			return player, nil
		}
	}
	player.LikedBy = append(player.LikedBy, likerID)
	player.Likes = len(player.LikedBy)
	if err := ps.engine.Put(ctx, store.Players, player); err != nil {
		return nil, fmt.Errorf("service failed to like player %s: %w", playerID, err)
	}
	return player, nil
}

// Unlike removes likerID's like if present.
func (ps *PlayerService) Unlike(ctx context.Context, playerID, likerID string) (*models.Player, error) {
	player, err := ps.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	kept := player.LikedBy[:0]
	for _, id := range player.LikedBy {
		if id != likerID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(player.LikedBy) {
		return player, nil
	}
	player.LikedBy = kept
	player.Likes = len(player.LikedBy)
	if err := ps.engine.Put(ctx, store.Players, player); err != nil {
		return nil, fmt.Errorf("service failed to unlike player %s: %w", playerID, err)
	}
	return player, nil
}

// DeleteCard removes a card (administrative removal) and clears the owning
// account's back-reference. The second put is best-effort: a failure leaves a
// dangling reference for the operator to reconcile.
func (ps *PlayerService) DeleteCard(ctx context.Context, playerID string) error {
	player, err := ps.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	if err := ps.engine.Delete(ctx, store.Players, playerID); err != nil {
		return fmt.Errorf("service failed to delete player %s: %w", playerID, err)
	}

	if player.UserID != "" {
		user, err := store.Get[models.User](ctx, ps.engine, store.Users, player.UserID)
		if err == nil && user != nil && user.PlayerID == playerID {
			user.PlayerID = ""
			err = ps.engine.Put(ctx, store.Users, user)
		}
		if err != nil {
			log.Printf("ERROR: Card %s deleted but clearing back-reference on user %s failed: %v", playerID, player.UserID, err)
			return fmt.Errorf("card deleted but user %s still references it, clear manually: %w", player.UserID, err)
		}
	}
	return nil
}
