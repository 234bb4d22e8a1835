package rating

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

// uniform builds an attribute vector where every component has the same value,
// so the weighted base score equals that value for every role.
func uniform(v int) models.Attributes {
	return models.Attributes{
		Pace: v, Shooting: v, Passing: v, Dribbling: v, Defending: v,
		Physical: v, Diving: v, Handling: v, Reflexes: v,
	}
}

func TestComputeBaseScore(t *testing.T) {
	Convey("Given uniform attribute vectors", t, func() {
		Convey("Every role scores the uniform value", func() {
			for _, role := range []models.Role{models.RoleForward, models.RoleMidfielder, models.RoleDefender, models.RoleGoalkeeper} {
				So(ComputeBaseScore(uniform(70), role), ShouldEqual, 70)
			}
		})

		Convey("An unknown role falls back to the default components", func() {
			So(ComputeBaseScore(uniform(60), models.Role("COACH")), ShouldEqual, 60)
		})
	})

	Convey("Given a vector with one out-of-range component", t, func() {
		attrs := uniform(70)
		attrs.Reflexes = 150

		Convey("The component counts as zero and drags a keeper's score down", func() {
			So(ComputeBaseScore(attrs, models.RoleGoalkeeper), ShouldBeLessThan, 70)
		})

		Convey("A forward barely notices, reflexes carry only the minor weight", func() {
			So(ComputeBaseScore(attrs, models.RoleForward), ShouldBeBetweenOrEqual, 68, 70)
		})
	})

	Convey("The computation is pure", t, func() {
		attrs := models.Attributes{Pace: 81, Shooting: 92, Passing: 67, Dribbling: 85, Defending: 30, Physical: 74}
		first := ComputeBaseScore(attrs, models.RoleForward)
		for i := 0; i < 5; i++ {
			So(ComputeBaseScore(attrs, models.RoleForward), ShouldEqual, first)
		}
	})
}

func TestApplyPerformanceAdjustment(t *testing.T) {
	Convey("Given a forward", t, func() {
		Convey("Goal bonuses use floor division by four", func() {
			So(ApplyPerformanceAdjustment(70, models.RoleForward, models.Performance{Goals: 3}), ShouldEqual, 70)
			So(ApplyPerformanceAdjustment(70, models.RoleForward, models.Performance{Goals: 4}), ShouldEqual, 71)
			So(ApplyPerformanceAdjustment(70, models.RoleForward, models.Performance{Goals: 7}), ShouldEqual, 71)
			So(ApplyPerformanceAdjustment(70, models.RoleForward, models.Performance{Goals: 8}), ShouldEqual, 72)
		})

		Convey("Keeper counters do nothing for an outfield role", func() {
			So(ApplyPerformanceAdjustment(70, models.RoleForward, models.Performance{Saves: 60, PenaltySaves: 5}), ShouldEqual, 70)
		})
	})

	Convey("Given a midfielder", t, func() {
		Convey("The forward gates apply", func() {
			perf := models.Performance{Goals: 4, Assists: 6, DefensiveActions: 20}
			So(ApplyPerformanceAdjustment(70, models.RoleMidfielder, perf), ShouldEqual, 75)
		})
	})

	Convey("Given a defender", t, func() {
		Convey("Defensive actions divide by eight and every clean sheet counts", func() {
			perf := models.Performance{DefensiveActions: 16, CleanSheets: 3, OwnGoals: 2}
			So(ApplyPerformanceAdjustment(65, models.RoleDefender, perf), ShouldEqual, 69)
		})
	})

	Convey("Given a goalkeeper", t, func() {
		Convey("Saves, concessions and penalty saves all land", func() {
			perf := models.Performance{Saves: 12, GoalsConceded: 8, PenaltySaves: 1}
			So(ApplyPerformanceAdjustment(70, models.RoleGoalkeeper, perf), ShouldEqual, 71)
		})

		Convey("A keeper goal is worth a full point", func() {
			So(ApplyPerformanceAdjustment(70, models.RoleGoalkeeper, models.Performance{Goals: 1}), ShouldEqual, 71)
		})
	})

	Convey("Universal penalties apply to every role", t, func() {
		perf := models.Performance{PenaltiesMissed: 4, OwnGoals: 2}
		for _, role := range []models.Role{models.RoleForward, models.RoleMidfielder, models.RoleDefender, models.RoleGoalkeeper} {
			So(ApplyPerformanceAdjustment(70, role, perf), ShouldEqual, 67)
		}
	})

	Convey("Negative counters count as zero", t, func() {
		perf := models.Performance{Goals: -40, PenaltiesMissed: -10}
		So(ApplyPerformanceAdjustment(70, models.RoleForward, perf), ShouldEqual, 70)
	})

	Convey("The result clamps to the rating bounds", t, func() {
		So(ApplyPerformanceAdjustment(95, models.RoleForward, models.Performance{Goals: 400}), ShouldEqual, MaxRating)
		So(ApplyPerformanceAdjustment(10, models.RoleForward, models.Performance{PenaltiesMissed: 100}), ShouldEqual, MinRating)
	})
}

func TestTierForScore(t *testing.T) {
	Convey("Tier boundaries are inclusive at the top of each band", t, func() {
		So(TierForScore(1), ShouldEqual, models.TierBronze)
		So(TierForScore(69), ShouldEqual, models.TierBronze)
		So(TierForScore(70), ShouldEqual, models.TierSilver)
		So(TierForScore(79), ShouldEqual, models.TierSilver)
		So(TierForScore(80), ShouldEqual, models.TierGold)
		So(TierForScore(89), ShouldEqual, models.TierGold)
		So(TierForScore(90), ShouldEqual, models.TierLegend)
		So(TierForScore(99), ShouldEqual, models.TierLegend)
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Evaluate composes base score, adjustment and tier", t, func() {
		perf := models.Performance{Saves: 12, GoalsConceded: 8, PenaltySaves: 1}
		score, tier := Evaluate(uniform(70), models.RoleGoalkeeper, perf)
		So(score, ShouldEqual, 71)
		So(tier, ShouldEqual, models.TierSilver)
	})

	Convey("A fresh card with no performance rates on attributes alone", t, func() {
		score, tier := Evaluate(uniform(85), models.RoleDefender, models.Performance{})
		So(score, ShouldEqual, 85)
		So(tier, ShouldEqual, models.TierGold)
	})
}
