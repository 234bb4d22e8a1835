package models

import "time"

// Team represents a club team. Position is a derived aggregate: it is
// recomputed across all teams after every finalized match result and never
// treated as authoritative between recomputations.
type Team struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Abbreviation string     `json:"abbreviation"`
	Color        string     `json:"color"`
	CrestURL     string     `json:"crestUrl,omitempty"`
	CaptainID    string     `json:"captainId"`
	Wins         int        `json:"wins"`
	Draws        int        `json:"draws"`
	Losses       int        `json:"losses"`
	Matches      int        `json:"matches"`
	Experience   int        `json:"experience"`
	Position     int        `json:"position"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	LastUpdated  *time.Time `json:"lastUpdated,omitempty"`
}

// Points returns the ranking points a team has earned from results.
func (t *Team) Points() int {
	return t.Wins*3 + t.Draws
}

// Match is a finalized result between two teams.
type Match struct {
	ID         string     `json:"id"`
	TeamID     string     `json:"teamId"` // home side, used for index lookups
	OpponentID string     `json:"opponentId"`
	HomeGoals  int        `json:"homeGoals"`
	AwayGoals  int        `json:"awayGoals"`
	PlayedAt   *time.Time `json:"playedAt,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}
