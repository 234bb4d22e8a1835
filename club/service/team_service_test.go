package service

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/store"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

func TestCreateTeam(t *testing.T) {
	ctx := context.Background()

	Convey("Given a captain account", t, func() {
		env := newTestEnv(t)
		captain := env.seedUser(t, "cap1", "captain", models.UserRoleCaptain)

		Convey("Creating a team seeds the captain's stats row", func() {
			team, err := env.teams.CreateTeam(ctx, CreateTeamInput{
				Name:      "Reds",
				CaptainID: captain.ID,
			})
			So(err, ShouldBeNil)
			So(team.ID, ShouldNotBeEmpty)

			stats, err := store.Get[models.CaptainStats](ctx, env.engine, store.CaptainStats, captain.ID)
			So(err, ShouldBeNil)
			So(stats, ShouldNotBeNil)
			So(stats.Rank, ShouldEqual, models.CaptainRookie)

			Convey("And a second team does not reset the stats", func() {
				stats.RankPoints = 42
				So(env.engine.Put(ctx, store.CaptainStats, stats), ShouldBeNil)

				_, err := env.teams.CreateTeam(ctx, CreateTeamInput{Name: "Blues", CaptainID: captain.ID})
				So(err, ShouldBeNil)

				kept, err := store.Get[models.CaptainStats](ctx, env.engine, store.CaptainStats, captain.ID)
				So(err, ShouldBeNil)
				So(kept.RankPoints, ShouldEqual, 42)
			})
		})

		Convey("A team without a name or captain is invalid", func() {
			_, err := env.teams.CreateTeam(ctx, CreateTeamInput{CaptainID: captain.ID})
			So(err, ShouldWrap, ErrInvalidInput)

			_, err = env.teams.CreateTeam(ctx, CreateTeamInput{Name: "Reds"})
			So(err, ShouldWrap, ErrInvalidInput)
		})
	})
}

func TestFinalizeResult(t *testing.T) {
	ctx := context.Background()

	Convey("Given two teams with captains", t, func() {
		env := newTestEnv(t)
		env.seedUser(t, "cap-home", "home", models.UserRoleCaptain)
		env.seedUser(t, "cap-away", "away", models.UserRoleCaptain)
		env.seedTeam(t, "t-home", "Reds", "cap-home")
		env.seedTeam(t, "t-away", "Blues", "cap-away")

		Convey("A home win fans out to counters, experience, stats and inboxes", func() {
			match, err := env.teams.FinalizeResult(ctx, MatchResult{
				HomeTeamID: "t-home", AwayTeamID: "t-away", HomeGoals: 3, AwayGoals: 1,
			})
			So(err, ShouldBeNil)
			So(match.HomeGoals, ShouldEqual, 3)

			home, err := env.teams.GetTeam(ctx, "t-home")
			So(err, ShouldBeNil)
			So(home.Wins, ShouldEqual, 1)
			So(home.Matches, ShouldEqual, 1)
			So(home.Experience, ShouldEqual, 100)
			So(home.Points(), ShouldEqual, 3)

			away, err := env.teams.GetTeam(ctx, "t-away")
			So(err, ShouldBeNil)
			So(away.Losses, ShouldEqual, 1)
			So(away.Experience, ShouldEqual, 10)
			So(away.Points(), ShouldEqual, 0)

			winnerStats, err := store.Get[models.CaptainStats](ctx, env.engine, store.CaptainStats, "cap-home")
			So(err, ShouldBeNil)
			So(winnerStats.Wins, ShouldEqual, 1)
			So(winnerStats.RankPoints, ShouldEqual, pointsWin)

			loserStats, err := store.Get[models.CaptainStats](ctx, env.engine, store.CaptainStats, "cap-away")
			So(err, ShouldBeNil)
			So(loserStats.Losses, ShouldEqual, 1)
			So(loserStats.RankPoints, ShouldEqual, pointsLoss)

			inbox, err := env.notifications.ByUser(ctx, "cap-home")
			So(err, ShouldBeNil)
			So(inbox, ShouldHaveLength, 1)
			So(inbox[0].Type, ShouldEqual, models.NotificationMatchResult)

			Convey("And ranking positions are re-derived", func() {
				home, _ := env.teams.GetTeam(ctx, "t-home")
				away, _ := env.teams.GetTeam(ctx, "t-away")
				So(home.Position, ShouldEqual, 1)
				So(away.Position, ShouldEqual, 2)
			})
		})

		Convey("A draw credits both sides equally", func() {
			_, err := env.teams.FinalizeResult(ctx, MatchResult{
				HomeTeamID: "t-home", AwayTeamID: "t-away", HomeGoals: 2, AwayGoals: 2,
			})
			So(err, ShouldBeNil)

			home, _ := env.teams.GetTeam(ctx, "t-home")
			away, _ := env.teams.GetTeam(ctx, "t-away")
			So(home.Draws, ShouldEqual, 1)
			So(away.Draws, ShouldEqual, 1)
			So(home.Experience, ShouldEqual, 40)
			So(away.Experience, ShouldEqual, 40)
			So(home.Points(), ShouldEqual, 1)
		})

		Convey("A team cannot play itself", func() {
			_, err := env.teams.FinalizeResult(ctx, MatchResult{
				HomeTeamID: "t-home", AwayTeamID: "t-home", HomeGoals: 1, AwayGoals: 0,
			})
			So(err, ShouldWrap, ErrInvalidInput)
		})

		Convey("An unknown opponent reports not found", func() {
			_, err := env.teams.FinalizeResult(ctx, MatchResult{
				HomeTeamID: "t-home", AwayTeamID: "ghost", HomeGoals: 1, AwayGoals: 0,
			})
			So(err, ShouldWrap, ErrTeamNotFound)
		})
	})
}

func TestRankings(t *testing.T) {
	ctx := context.Background()

	Convey("Given teams with different records", t, func() {
		env := newTestEnv(t)
		// 2 wins, 1 win + 1 draw, 1 draw.
		So(env.engine.Put(ctx, store.Teams, &models.Team{ID: "a", Name: "Alpha", Wins: 2}), ShouldBeNil)
		So(env.engine.Put(ctx, store.Teams, &models.Team{ID: "b", Name: "Beta", Wins: 1, Draws: 1}), ShouldBeNil)
		So(env.engine.Put(ctx, store.Teams, &models.Team{ID: "c", Name: "Gamma", Draws: 1}), ShouldBeNil)

		Convey("Rankings order by points, then wins, then name", func() {
			ranked, err := env.teams.Rankings(ctx)
			So(err, ShouldBeNil)
			So(ranked, ShouldHaveLength, 3)
			So(ranked[0].ID, ShouldEqual, "a")
			So(ranked[1].ID, ShouldEqual, "b")
			So(ranked[2].ID, ShouldEqual, "c")
		})

		Convey("Equal records tie-break on name", func() {
			So(env.engine.Put(ctx, store.Teams, &models.Team{ID: "d", Name: "Aardvark", Draws: 1}), ShouldBeNil)

			ranked, err := env.teams.Rankings(ctx)
			So(err, ShouldBeNil)
			So(ranked[2].Name, ShouldEqual, "Aardvark")
			So(ranked[3].Name, ShouldEqual, "Gamma")
		})

		Convey("RecomputeRankings persists positions and converges", func() {
			So(env.teams.RecomputeRankings(ctx), ShouldBeNil)

			first, err := env.teams.GetTeam(ctx, "a")
			So(err, ShouldBeNil)
			So(first.Position, ShouldEqual, 1)

			// A second pass finds nothing to change and writes nothing.
			var signals int
			unsubscribe := env.bus.Subscribe(func() { signals++ })
			defer unsubscribe()

			So(env.teams.RecomputeRankings(ctx), ShouldBeNil)
			So(signals, ShouldEqual, 0)
		})
	})
}

func TestRankForPoints(t *testing.T) {
	Convey("Captain rank thresholds", t, func() {
		So(RankForPoints(0), ShouldEqual, models.CaptainRookie)
		So(RankForPoints(99), ShouldEqual, models.CaptainRookie)
		So(RankForPoints(100), ShouldEqual, models.CaptainExperienced)
		So(RankForPoints(250), ShouldEqual, models.CaptainVeteran)
		So(RankForPoints(500), ShouldEqual, models.CaptainElite)
		So(RankForPoints(1000), ShouldEqual, models.CaptainLegendary)
	})
}
