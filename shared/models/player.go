package models

import "time"

// Role identifies a player's position on the pitch. The rating engine keys its
// weight tables by role; unknown roles fall back to a default weighting.
type Role string

const (
	RoleForward    Role = "FW"
	RoleMidfielder Role = "MF"
	RoleDefender   Role = "DF"
	RoleGoalkeeper Role = "GK"
)

// Tier is the discrete card tier derived from a player's numeric rating.
type Tier string

const (
	TierBronze Tier = "BRONZE"
	TierSilver Tier = "SILVER"
	TierGold   Tier = "GOLD"
	TierLegend Tier = "LEGEND"
)

// Attributes is the nine-component attribute vector, each normalized to 0-100.
type Attributes struct {
	Pace      int `json:"pace"`
	Shooting  int `json:"shooting"`
	Passing   int `json:"passing"`
	Dribbling int `json:"dribbling"`
	Defending int `json:"defending"`
	Physical  int `json:"physical"`
	Diving    int `json:"diving"`
	Handling  int `json:"handling"`
	Reflexes  int `json:"reflexes"`
}

// Performance holds a player's cumulative match counters. Counters only grow;
// the rating engine turns them into integer bonuses and penalties.
type Performance struct {
	Goals            int `json:"goals"`
	Assists          int `json:"assists"`
	DefensiveActions int `json:"defensiveActions"`
	CleanSheets      int `json:"cleanSheets"`
	Saves            int `json:"saves"`
	PenaltySaves     int `json:"penaltySaves"`
	OwnGoals         int `json:"ownGoals"`
	GoalsConceded    int `json:"goalsConceded"`
	PenaltiesMissed  int `json:"penaltiesMissed"`
	MatchesPlayed    int `json:"matchesPlayed"`
}

// Player represents a player card stored persistently on the device.
// Rating and Tier are derived values: they are always recomputed from
// Attributes and Performance before the record is persisted.
type Player struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Name        string      `json:"name"`
	Role        Role        `json:"role"`
	TeamID      string      `json:"teamId"`
	Attributes  Attributes  `json:"attributes"`
	Performance Performance `json:"performance"`
	Rating      int         `json:"rating"`
	Tier        Tier        `json:"tier"`
	Likes       int         `json:"likes"`
	LikedBy     []string    `json:"likedBy,omitempty"`
	CreatedAt   *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time  `json:"updatedAt,omitempty"`
}
