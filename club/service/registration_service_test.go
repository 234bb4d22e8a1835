package service

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

func TestRegistrationLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given an account wanting a player card", t, func() {
		env := newTestEnv(t)
		user := env.seedUser(t, "u1", "omar", models.UserRolePlayer)

		Convey("Submitting queues a pending request", func() {
			req, err := env.registrations.Submit(ctx, user.ID, "Omar", models.RoleMidfielder, uniformAttrs(72))
			So(err, ShouldBeNil)
			So(req.Status, ShouldEqual, models.RequestPending)

			pending, err := env.registrations.Pending(ctx)
			So(err, ShouldBeNil)
			So(pending, ShouldHaveLength, 1)

			Convey("Approving issues the card and drains the queue", func() {
				player, err := env.registrations.Approve(ctx, req.ID)
				So(err, ShouldBeNil)
				So(player.Name, ShouldEqual, "Omar")
				So(player.Rating, ShouldEqual, 72)

				owner, err := env.users.GetUser(ctx, user.ID)
				So(err, ShouldBeNil)
				So(owner.PlayerID, ShouldEqual, player.ID)

				pending, err := env.registrations.Pending(ctx)
				So(err, ShouldBeNil)
				So(pending, ShouldBeEmpty)

				inbox, err := env.notifications.ByUser(ctx, user.ID)
				So(err, ShouldBeNil)
				So(inbox, ShouldHaveLength, 1)
				So(inbox[0].Type, ShouldEqual, models.NotificationRegistration)

				Convey("And the closed request cannot change again", func() {
					_, err := env.registrations.Approve(ctx, req.ID)
					So(err, ShouldWrap, ErrRequestClosed)
				})
			})

			Convey("Rejecting leaves the account cardless and tells it", func() {
				rejected, err := env.registrations.Reject(ctx, req.ID)
				So(err, ShouldBeNil)
				So(rejected.Status, ShouldEqual, models.RequestRejected)

				owner, err := env.users.GetUser(ctx, user.ID)
				So(err, ShouldBeNil)
				So(owner.PlayerID, ShouldBeEmpty)

				inbox, err := env.notifications.ByUser(ctx, user.ID)
				So(err, ShouldBeNil)
				So(inbox, ShouldHaveLength, 1)
			})
		})

		Convey("Approving a request for a deleted account reports the partial state", func() {
			req, err := env.registrations.Submit(ctx, "ghost", "Ghost", models.RoleForward, uniformAttrs(50))
			So(err, ShouldBeNil)

			_, err = env.registrations.Approve(ctx, req.ID)
			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, ErrUserNotFound)

			// The flip sticks; reconciliation is the operator's job.
			_, err = env.registrations.Approve(ctx, req.ID)
			So(err, ShouldWrap, ErrRequestClosed)
		})

		Convey("A submission without a user or name is invalid", func() {
			_, err := env.registrations.Submit(ctx, "", "Omar", models.RoleForward, models.Attributes{})
			So(err, ShouldWrap, ErrInvalidInput)
		})
	})
}
