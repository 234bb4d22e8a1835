package service

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()

	Convey("Given the account service", t, func() {
		env := newTestEnv(t)

		Convey("Registering a fresh username succeeds", func() {
			user, err := env.users.Register(ctx, "omar", "secret", models.UserRoleCaptain)
			So(err, ShouldBeNil)
			So(user.ID, ShouldNotBeEmpty)
			So(user.Role, ShouldEqual, models.UserRoleCaptain)

			Convey("And the same username again is rejected", func() {
				_, err := env.users.Register(ctx, "omar", "other", models.UserRolePlayer)
				So(err, ShouldWrap, ErrUsernameTaken)
			})

			Convey("And the account authenticates with its secret", func() {
				got, err := env.users.Authenticate(ctx, "omar", "secret")
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, user.ID)
			})

			Convey("And a wrong secret is rejected", func() {
				_, err := env.users.Authenticate(ctx, "omar", "wrong")
				So(err, ShouldWrap, ErrInvalidCredentials)
			})
		})

		Convey("Registering without a username or secret is invalid", func() {
			_, err := env.users.Register(ctx, "", "secret", models.UserRolePlayer)
			So(err, ShouldWrap, ErrInvalidInput)

			_, err = env.users.Register(ctx, "nour", "", models.UserRolePlayer)
			So(err, ShouldWrap, ErrInvalidInput)
		})

		Convey("Authenticating an unknown username is rejected", func() {
			_, err := env.users.Authenticate(ctx, "ghost", "secret")
			So(err, ShouldWrap, ErrInvalidCredentials)
		})

		Convey("Fetching an unknown account reports not found", func() {
			_, err := env.users.GetUser(ctx, "nobody")
			So(err, ShouldWrap, ErrUserNotFound)
		})

		Convey("Linking a player writes the back-reference", func() {
			user := env.seedUser(t, "u-link", "linked", models.UserRolePlayer)
			So(env.users.LinkPlayer(ctx, user.ID, "p9"), ShouldBeNil)

			got, err := env.users.GetUser(ctx, user.ID)
			So(err, ShouldBeNil)
			So(got.PlayerID, ShouldEqual, "p9")
		})
	})
}
