package service

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/store"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

func TestRankingsRefresher(t *testing.T) {
	ctx := context.Background()

	Convey("Given a running refresher subscribed to the change bus", t, func() {
		env := newTestEnv(t)

		refresher := NewRankingsRefresher(env.engine, env.teams, env.bus, time.Hour)
		refresher.Start()
		defer refresher.Stop()

		Convey("A change signal triggers a recompute without waiting for the tick", func() {
			// The put itself broadcasts on the bus; the refresher picks the
			// signal up and derives positions in the background.
			So(env.engine.Put(ctx, store.Teams, &models.Team{ID: "a", Name: "Alpha", Wins: 3}), ShouldBeNil)
			So(env.engine.Put(ctx, store.Teams, &models.Team{ID: "b", Name: "Beta", Wins: 1}), ShouldBeNil)

			deadline := time.Now().Add(5 * time.Second)
			for {
				team, err := env.teams.GetTeam(ctx, "a")
				So(err, ShouldBeNil)
				if team.Position == 1 || time.Now().After(deadline) {
					So(team.Position, ShouldEqual, 1)
					break
				}
				time.Sleep(10 * time.Millisecond)
			}
		})

		Convey("Publishing after the subscriber detaches does not panic", func() {
			So(func() { env.bus.Publish(ctx) }, ShouldNotPanic)
		})
	})
}

func TestRefresherUpdatesCaptainRanks(t *testing.T) {
	ctx := context.Background()

	Convey("Given captain stats whose label drifted from its points", t, func() {
		env := newTestEnv(t)

		So(env.engine.Put(ctx, store.CaptainStats, &models.CaptainStats{
			UserID:     "cap1",
			RankPoints: 120,
			Rank:       models.CaptainRookie,
		}), ShouldBeNil)

		refresher := NewRankingsRefresher(env.engine, env.teams, env.bus, 20*time.Millisecond)
		refresher.Start()
		defer refresher.Stop()

		Convey("The periodic pass re-derives the label", func() {
			deadline := time.Now().Add(5 * time.Second)
			for {
				stats, err := store.Get[models.CaptainStats](ctx, env.engine, store.CaptainStats, "cap1")
				So(err, ShouldBeNil)
				if stats.Rank == models.CaptainExperienced || time.Now().After(deadline) {
					So(stats.Rank, ShouldEqual, models.CaptainExperienced)
					break
				}
				time.Sleep(10 * time.Millisecond)
			}
		})
	})
}
