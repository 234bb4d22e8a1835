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

// Experience awarded per finalized result.
const (
	xpWin  = 100
	xpDraw = 40
	xpLoss = 10
)

// TeamService encapsulates the business logic for teams and match results.
type TeamService struct {
	engine        *store.Engine
	notifications *NotificationService
}

// NewTeamService creates a new TeamService instance.
func NewTeamService(engine *store.Engine, ns *NotificationService) *TeamService {
	return &TeamService{engine: engine, notifications: ns}
}

// CreateTeamInput is what a captain provides to found a team.
type CreateTeamInput struct {
	Name         string
	Abbreviation string
	Color        string
	CaptainID    string
}

// CreateTeam stores a new team and seeds the captain's stats row if this is
// the captain's first team.
func (ts *TeamService) CreateTeam(ctx context.Context, in CreateTeamInput) (*models.Team, error) {
	if in.Name == "" || in.CaptainID == "" {
		return nil, fmt.Errorf("%w: team name and captain id are required", ErrInvalidInput)
	}

	now := time.Now()
	team := &models.Team{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Abbreviation: in.Abbreviation,
		Color:        in.Color,
		CaptainID:    in.CaptainID,
		CreatedAt:    &now,
		LastUpdated:  &now,
	}
	if err := ts.engine.Put(ctx, store.Teams, team); err != nil {
		return nil, fmt.Errorf("service failed to create team: %w", err)
	}

	if err := ts.ensureCaptainStats(ctx, in.CaptainID); err != nil {
		log.Printf("WARN: Team %s created but seeding captain stats for %s failed: %v", team.ID, in.CaptainID, err)
	}
	return team, nil
}

// GetTeam retrieves a team by id.
func (ts *TeamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := store.Get[models.Team](ctx, ts.engine, store.Teams, id)
	if err != nil {
		return nil, fmt.Errorf("service failed to get team: %w", err)
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	return team, nil
}

// AllTeams returns every team.
func (ts *TeamService) AllTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := store.GetAll[models.Team](ctx, ts.engine, store.Teams)
	if err != nil {
		return nil, fmt.Errorf("service failed to list teams: %w", err)
	}
	return teams, nil
}

// MatchResult is a finalized score between two teams.
type MatchResult struct {
	HomeTeamID string
	AwayTeamID string
	HomeGoals  int
	AwayGoals  int
}

// FinalizeResult records a match and fans its consequences out: both teams'
// counters and experience, the ranking positions of every team, both
// captains' stats, and a notification per captain. The steps are independent
// puts with no cross-collection transaction; a failing step is logged, the
// remaining steps still run, and the first failure is reported so the
// operator knows the result was only partially applied.
func (ts *TeamService) FinalizeResult(ctx context.Context, res MatchResult) (*models.Match, error) {
	if res.HomeTeamID == "" || res.AwayTeamID == "" || res.HomeTeamID == res.AwayTeamID {
		return nil, fmt.Errorf("%w: a result needs two distinct teams", ErrInvalidInput)
	}
	home, err := ts.GetTeam(ctx, res.HomeTeamID)
	if err != nil {
		return nil, err
	}
	away, err := ts.GetTeam(ctx, res.AwayTeamID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	match := &models.Match{
		ID:         uuid.NewString(),
		TeamID:     res.HomeTeamID,
		OpponentID: res.AwayTeamID,
		HomeGoals:  res.HomeGoals,
		AwayGoals:  res.AwayGoals,
		PlayedAt:   &now,
		CreatedAt:  &now,
	}
	if err := ts.engine.Put(ctx, store.Matches, match); err != nil {
		return nil, fmt.Errorf("service failed to record match: %w", err)
	}

	homeOutcome, awayOutcome := outcomes(res.HomeGoals, res.AwayGoals)
	applyOutcome(home, homeOutcome, &now)
	applyOutcome(away, awayOutcome, &now)

	var firstErr error
	keep := func(step string, err error) {
		if err != nil {
			log.Printf("ERROR: Match %s: %s failed: %v", match.ID, step, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s failed: %w", step, err)
			}
		}
	}

	keep("updating home team", ts.engine.Put(ctx, store.Teams, home))
	keep("updating away team", ts.engine.Put(ctx, store.Teams, away))
	keep("recomputing rankings", ts.RecomputeRankings(ctx))
	keep("updating home captain stats", ts.bumpCaptainStats(ctx, home.CaptainID, homeOutcome))
	keep("updating away captain stats", ts.bumpCaptainStats(ctx, away.CaptainID, awayOutcome))

	for _, side := range []*models.Team{home, away} {
		_, err := ts.notifications.Create(ctx, models.Notification{
			UserID:  side.CaptainID,
			Type:    models.NotificationMatchResult,
			Title:   "Match result recorded",
			Message: fmt.Sprintf("%s %d - %d %s", home.Name, res.HomeGoals, res.AwayGoals, away.Name),
			TeamID:  side.ID,
			MatchID: match.ID,
		})
		keep("notifying captain", err)
	}

	if firstErr != nil {
		return match, fmt.Errorf("match recorded but result only partially applied: %w", firstErr)
	}
	return match, nil
}

// Rankings returns all teams ordered by their current ranking position.
func (ts *TeamService) Rankings(ctx context.Context) ([]models.Team, error) {
	teams, err := ts.AllTeams(ctx)
	if err != nil {
		return nil, err
	}
	sortByStrength(teams)
	return teams, nil
}

// RecomputeRankings re-derives every team's ranking position from scratch and
// writes back only the teams whose position actually changed. Writing only on
// change keeps the recompute convergent: the change signals it emits cannot
// trigger an endless recompute loop.
func (ts *TeamService) RecomputeRankings(ctx context.Context) error {
	teams, err := ts.AllTeams(ctx)
	if err != nil {
		return err
	}
	sortByStrength(teams)

	for i := range teams {
		position := i + 1
		if teams[i].Position == position {
			continue
		}
		teams[i].Position = position
		if err := ts.engine.Put(ctx, store.Teams, &teams[i]); err != nil {
			return fmt.Errorf("service failed to store ranking position for team %s: %w", teams[i].ID, err)
		}
	}
	return nil
}

type outcome int

const (
	outcomeWin outcome = iota
	outcomeDraw
	outcomeLoss
)

func outcomes(homeGoals, awayGoals int) (outcome, outcome) {
	switch {
	case homeGoals > awayGoals:
		return outcomeWin, outcomeLoss
	case homeGoals < awayGoals:
		return outcomeLoss, outcomeWin
	default:
		return outcomeDraw, outcomeDraw
	}
}

func applyOutcome(team *models.Team, o outcome, now *time.Time) {
	team.Matches++
	team.LastUpdated = now
	switch o {
	case outcomeWin:
		team.Wins++
		team.Experience += xpWin
	case outcomeDraw:
		team.Draws++
		team.Experience += xpDraw
	case outcomeLoss:
		team.Losses++
		team.Experience += xpLoss
	}
}

// ensureCaptainStats seeds an empty stats row for a captain if absent.
func (ts *TeamService) ensureCaptainStats(ctx context.Context, captainID string) error {
	stats, err := store.Get[models.CaptainStats](ctx, ts.engine, store.CaptainStats, captainID)
	if err != nil {
		return err
	}
	if stats != nil {
		return nil
	}
	return ts.engine.Put(ctx, store.CaptainStats, &models.CaptainStats{
		UserID: captainID,
		Rank:   models.CaptainRookie,
	})
}

// bumpCaptainStats advances a captain's monotonic counters and re-derives the
// rank label from the accumulated points.
func (ts *TeamService) bumpCaptainStats(ctx context.Context, captainID string, o outcome) error {
	if captainID == "" {
		return nil
	}
	stats, err := store.Get[models.CaptainStats](ctx, ts.engine, store.CaptainStats, captainID)
	if err != nil {
		return err
	}
	if stats == nil {
		stats = &models.CaptainStats{UserID: captainID, Rank: models.CaptainRookie}
	}

	stats.MatchesManaged++
	switch o {
	case outcomeWin:
		stats.Wins++
		stats.RankPoints += pointsWin
	case outcomeDraw:
		stats.Draws++
		stats.RankPoints += pointsDraw
	case outcomeLoss:
		stats.Losses++
		stats.RankPoints += pointsLoss
	}
	stats.Rank = RankForPoints(stats.RankPoints)

	return ts.engine.Put(ctx, store.CaptainStats, stats)
}
