package models

import "time"

// InvitationStatus is monotonic: once an invitation leaves PENDING it never
// returns to it through any normal flow.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRejected InvitationStatus = "REJECTED"
)

// TeamInvitation invites a player to join a team. The display names are
// denormalized at creation time, not live-joined: the invitation keeps showing
// the names as they were when the captain sent it.
type TeamInvitation struct {
	ID          string           `json:"id"`
	TeamID      string           `json:"teamId"`
	PlayerID    string           `json:"playerId"`
	CaptainName string           `json:"captainName"`
	TeamName    string           `json:"teamName"`
	PlayerName  string           `json:"playerName"`
	Status      InvitationStatus `json:"status"`
	CreatedAt   *time.Time       `json:"createdAt,omitempty"`
}
