package models

// CaptainRank is the ordered ladder a captain climbs by accumulating rank
// points.
type CaptainRank string

const (
	CaptainRookie      CaptainRank = "ROOKIE"
	CaptainExperienced CaptainRank = "EXPERIENCED"
	CaptainVeteran     CaptainRank = "VETERAN"
	CaptainElite       CaptainRank = "ELITE"
	CaptainLegendary   CaptainRank = "LEGENDARY"
)

// CaptainStats keeps one row per captain, keyed by the captain's user id.
// All counters are monotonically increasing; Rank is derived from RankPoints
// via fixed thresholds whenever the row is written.
type CaptainStats struct {
	UserID           string      `json:"userId"`
	MatchesManaged   int         `json:"matchesManaged"`
	Wins             int         `json:"wins"`
	Draws            int         `json:"draws"`
	Losses           int         `json:"losses"`
	PlayersRecruited int         `json:"playersRecruited"`
	RankPoints       int         `json:"rankPoints"`
	Rank             CaptainRank `json:"rank"`
}
