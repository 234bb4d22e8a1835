package models

import "time"

// RequestStatus is shared by registration and kit requests.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// RegistrationRequest is a pending ask from a user to be issued a player card.
type RegistrationRequest struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	PlayerName string        `json:"playerName"`
	Role       Role          `json:"role"`
	Attributes Attributes    `json:"attributes"`
	Status     RequestStatus `json:"status"`
	CreatedAt  *time.Time    `json:"createdAt,omitempty"`
}

// ScoutProfile describes a scout account's public profile.
type ScoutProfile struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	Region    string     `json:"region"`
	Bio       string     `json:"bio,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// ScoutActivity is an append-only log entry of something a scout did.
type ScoutActivity struct {
	ID        string     `json:"id"`
	ScoutID   string     `json:"scoutId"`
	PlayerID  string     `json:"playerId,omitempty"`
	Action    string     `json:"action"`
	Note      string     `json:"note,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Kit is a team's kit design.
type Kit struct {
	ID             string     `json:"id"`
	TeamID         string     `json:"teamId"`
	Name           string     `json:"name"`
	PrimaryColor   string     `json:"primaryColor"`
	SecondaryColor string     `json:"secondaryColor"`
	Season         string     `json:"season,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}

// KitRequest asks for a new kit to be produced for a team.
type KitRequest struct {
	ID        string        `json:"id"`
	TeamID    string        `json:"teamId"`
	KitID     string        `json:"kitId,omitempty"`
	Requester string        `json:"requester"`
	Status    RequestStatus `json:"status"`
	CreatedAt *time.Time    `json:"createdAt,omitempty"`
}
