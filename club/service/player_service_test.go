package service

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

func uniformAttrs(v int) models.Attributes {
	return models.Attributes{
		Pace: v, Shooting: v, Passing: v, Dribbling: v, Defending: v,
		Physical: v, Diving: v, Handling: v, Reflexes: v,
	}
}

func TestIssueCard(t *testing.T) {
	ctx := context.Background()

	Convey("Given an existing account", t, func() {
		env := newTestEnv(t)
		user := env.seedUser(t, "u1", "omar", models.UserRolePlayer)

		Convey("Issuing a card rates it and links the account back", func() {
			player, err := env.players.IssueCard(ctx, IssueCardInput{
				UserID:     user.ID,
				Name:       "Omar",
				Role:       models.RoleDefender,
				Attributes: uniformAttrs(85),
			})
			So(err, ShouldBeNil)
			So(player.Rating, ShouldEqual, 85)
			So(player.Tier, ShouldEqual, models.TierGold)

			owner, err := env.users.GetUser(ctx, user.ID)
			So(err, ShouldBeNil)
			So(owner.PlayerID, ShouldEqual, player.ID)
		})

		Convey("Issuing a card for an unknown account fails", func() {
			_, err := env.players.IssueCard(ctx, IssueCardInput{UserID: "ghost", Name: "X", Role: models.RoleForward})
			So(err, ShouldWrap, ErrUserNotFound)
		})

		Convey("A nameless card is invalid", func() {
			_, err := env.players.IssueCard(ctx, IssueCardInput{UserID: user.ID})
			So(err, ShouldWrap, ErrInvalidInput)
		})
	})
}

func TestRecordPerformance(t *testing.T) {
	ctx := context.Background()

	Convey("Given an issued goalkeeper card", t, func() {
		env := newTestEnv(t)
		user := env.seedUser(t, "u1", "keeper", models.UserRolePlayer)
		player, err := env.players.IssueCard(ctx, IssueCardInput{
			UserID:     user.ID,
			Name:       "Keeper",
			Role:       models.RoleGoalkeeper,
			Attributes: uniformAttrs(70),
		})
		So(err, ShouldBeNil)
		So(player.Rating, ShouldEqual, 70)

		Convey("Recording counters accumulates and re-derives the rating", func() {
			got, err := env.players.RecordPerformance(ctx, player.ID, models.Performance{
				Saves: 12, GoalsConceded: 8, PenaltySaves: 1, MatchesPlayed: 5,
			})
			So(err, ShouldBeNil)
			So(got.Performance.Saves, ShouldEqual, 12)
			So(got.Performance.MatchesPlayed, ShouldEqual, 5)
			So(got.Rating, ShouldEqual, 71)
			So(got.Tier, ShouldEqual, models.TierSilver)

			Convey("And a second delta stacks on top", func() {
				got, err := env.players.RecordPerformance(ctx, player.ID, models.Performance{Saves: 6})
				So(err, ShouldBeNil)
				So(got.Performance.Saves, ShouldEqual, 18)
				So(got.Rating, ShouldEqual, 72)
			})
		})

		Convey("Negative deltas are rejected, counters only grow", func() {
			_, err := env.players.RecordPerformance(ctx, player.ID, models.Performance{Goals: -1})
			So(err, ShouldWrap, ErrInvalidInput)
		})
	})
}

func TestUpdateAttributes(t *testing.T) {
	ctx := context.Background()

	Convey("Given an issued card", t, func() {
		env := newTestEnv(t)
		user := env.seedUser(t, "u1", "omar", models.UserRolePlayer)
		player, err := env.players.IssueCard(ctx, IssueCardInput{
			UserID:     user.ID,
			Name:       "Omar",
			Role:       models.RoleForward,
			Attributes: uniformAttrs(60),
		})
		So(err, ShouldBeNil)

		Convey("Replacing the attributes re-derives rating and tier", func() {
			got, err := env.players.UpdateAttributes(ctx, player.ID, uniformAttrs(91))
			So(err, ShouldBeNil)
			So(got.Rating, ShouldEqual, 91)
			So(got.Tier, ShouldEqual, models.TierLegend)
		})
	})
}

func TestLikes(t *testing.T) {
	ctx := context.Background()

	Convey("Given a card", t, func() {
		env := newTestEnv(t)
		player := env.seedPlayer(t, "p1", "u1", "Omar", models.RoleForward)

		Convey("Liking counts each account once", func() {
			got, err := env.players.Like(ctx, player.ID, "fan1")
			So(err, ShouldBeNil)
			So(got.Likes, ShouldEqual, 1)

			got, err = env.players.Like(ctx, player.ID, "fan1")
			So(err, ShouldBeNil)
			So(got.Likes, ShouldEqual, 1)

			got, err = env.players.Like(ctx, player.ID, "fan2")
			So(err, ShouldBeNil)
			So(got.Likes, ShouldEqual, 2)
		})

		Convey("Unliking removes only the caller's like and is idempotent", func() {
			_, err := env.players.Like(ctx, player.ID, "fan1")
			So(err, ShouldBeNil)
			_, err = env.players.Like(ctx, player.ID, "fan2")
			So(err, ShouldBeNil)

			got, err := env.players.Unlike(ctx, player.ID, "fan1")
			So(err, ShouldBeNil)
			So(got.Likes, ShouldEqual, 1)

			got, err = env.players.Unlike(ctx, player.ID, "fan1")
			So(err, ShouldBeNil)
			So(got.Likes, ShouldEqual, 1)
		})

		Convey("Liking without a liker id is invalid", func() {
			_, err := env.players.Like(ctx, player.ID, "")
			So(err, ShouldWrap, ErrInvalidInput)
		})
	})
}

func TestDeleteCard(t *testing.T) {
	ctx := context.Background()

	Convey("Given an issued card", t, func() {
		env := newTestEnv(t)
		user := env.seedUser(t, "u1", "omar", models.UserRolePlayer)
		player, err := env.players.IssueCard(ctx, IssueCardInput{
			UserID:     user.ID,
			Name:       "Omar",
			Role:       models.RoleForward,
			Attributes: uniformAttrs(60),
		})
		So(err, ShouldBeNil)

		Convey("Deleting removes the card and clears the account's reference", func() {
			So(env.players.DeleteCard(ctx, player.ID), ShouldBeNil)

			_, err := env.players.GetPlayer(ctx, player.ID)
			So(err, ShouldWrap, ErrPlayerNotFound)

			owner, err := env.users.GetUser(ctx, user.ID)
			So(err, ShouldBeNil)
			So(owner.PlayerID, ShouldBeEmpty)
		})

		Convey("Deleting an unknown card reports not found", func() {
			err := env.players.DeleteCard(ctx, "ghost")
			So(err, ShouldWrap, ErrPlayerNotFound)
		})
	})
}
