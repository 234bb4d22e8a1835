package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/api"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

type CreateInvitationRequest struct {
	TeamID   string `json:"teamId"`
	PlayerID string `json:"playerId"`
}

type SubmitRegistrationRequest struct {
	UserID     string            `json:"userId"`
	PlayerName string            `json:"playerName"`
	Role       models.Role       `json:"role"`
	Attributes models.Attributes `json:"attributes"`
}

type CreateScoutRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Region string `json:"region"`
	Bio    string `json:"bio"`
}

type LogScoutActivityRequest struct {
	PlayerID string `json:"playerId"`
	Action   string `json:"action"`
	Note     string `json:"note"`
}

type CreateKitRequest struct {
	TeamID         string `json:"teamId"`
	Name           string `json:"name"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	Season         string `json:"season"`
}

type SubmitKitRequestRequest struct {
	TeamID    string `json:"teamId"`
	KitID     string `json:"kitId"`
	Requester string `json:"requester"`
}

// --- Invitations ---

// CreateInvitationHandler sends a team invitation to a free-agent player.
// POST /invitations
func (h *ClubAPIHandlers) CreateInvitationHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	inv, err := h.Invitations.Create(ctx, req.TeamID, req.PlayerID)
	if err != nil {
		writeServiceError(w, err, "create invitation")
		return
	}
	api.WriteJSON(w, http.StatusCreated, inv)
}

// AcceptInvitationHandler accepts a pending invitation.
// POST /invitations/{id}/accept
func (h *ClubAPIHandlers) AcceptInvitationHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	inv, err := h.Invitations.Accept(ctx, id)
	if err != nil {
		writeServiceError(w, err, "accept invitation")
		return
	}
	api.WriteJSON(w, http.StatusOK, inv)
}

// RejectInvitationHandler rejects a pending invitation.
// POST /invitations/{id}/reject
func (h *ClubAPIHandlers) RejectInvitationHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	inv, err := h.Invitations.Reject(ctx, id)
	if err != nil {
		writeServiceError(w, err, "reject invitation")
		return
	}
	api.WriteJSON(w, http.StatusOK, inv)
}

// --- Notifications ---

// ListNotificationsHandler returns a user's notifications.
// GET /notifications?userId=...
func (h *ClubAPIHandlers) ListNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		api.WriteBadRequest(w, "userId query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	notifications, err := h.Notifications.ByUser(ctx, userID)
	if err != nil {
		writeServiceError(w, err, "list notifications")
		return
	}
	api.WriteJSON(w, http.StatusOK, notifications)
}

// MarkNotificationReadHandler flips a notification to read.
// PUT /notifications/{id}/read
func (h *ClubAPIHandlers) MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id); err != nil {
		writeServiceError(w, err, "mark notification read")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Notification marked read"})
}

// DeleteNotificationHandler removes a notification.
// DELETE /notifications/{id}
func (h *ClubAPIHandlers) DeleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Notifications.Delete(ctx, id); err != nil {
		writeServiceError(w, err, "delete notification")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Notification deleted"})
}

// --- Registration requests ---

// SubmitRequestHandler files a card registration request for review.
// POST /requests
func (h *ClubAPIHandlers) SubmitRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req SubmitRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rr, err := h.Registrations.Submit(ctx, req.UserID, req.PlayerName, req.Role, req.Attributes)
	if err != nil {
		writeServiceError(w, err, "submit registration request")
		return
	}
	api.WriteJSON(w, http.StatusCreated, rr)
}

// PendingRequestsHandler returns the review queue.
// GET /requests
func (h *ClubAPIHandlers) PendingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	requests, err := h.Registrations.Pending(ctx)
	if err != nil {
		writeServiceError(w, err, "list pending requests")
		return
	}
	api.WriteJSON(w, http.StatusOK, requests)
}

// ApproveRequestHandler approves a pending request, issuing the card.
// POST /requests/{id}/approve
func (h *ClubAPIHandlers) ApproveRequestHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	player, err := h.Registrations.Approve(ctx, id)
	if err != nil {
		writeServiceError(w, err, "approve registration request")
		return
	}
	api.WriteJSON(w, http.StatusOK, player)
}

// RejectRequestHandler rejects a pending request.
// POST /requests/{id}/reject
func (h *ClubAPIHandlers) RejectRequestHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rr, err := h.Registrations.Reject(ctx, id)
	if err != nil {
		writeServiceError(w, err, "reject registration request")
		return
	}
	api.WriteJSON(w, http.StatusOK, rr)
}

// --- Scouts ---

// CreateScoutHandler registers a scout profile.
// POST /scouts
func (h *ClubAPIHandlers) CreateScoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateScoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.Scouts.CreateProfile(ctx, req.UserID, req.Name, req.Region, req.Bio)
	if err != nil {
		writeServiceError(w, err, "create scout profile")
		return
	}
	api.WriteJSON(w, http.StatusCreated, profile)
}

// GetScoutHandler returns one scout profile.
// GET /scouts/{id}
func (h *ClubAPIHandlers) GetScoutHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.Scouts.GetProfile(ctx, id)
	if err != nil {
		writeServiceError(w, err, "get scout profile")
		return
	}
	api.WriteJSON(w, http.StatusOK, profile)
}

// LogScoutActivityHandler records a scouting action against a player.
// POST /scouts/{id}/activities
func (h *ClubAPIHandlers) LogScoutActivityHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req LogScoutActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	activity, err := h.Scouts.LogActivity(ctx, id, req.PlayerID, req.Action, req.Note)
	if err != nil {
		writeServiceError(w, err, "log scout activity")
		return
	}
	api.WriteJSON(w, http.StatusCreated, activity)
}

// ScoutActivitiesHandler returns a scout's activity log.
// GET /scouts/{id}/activities
func (h *ClubAPIHandlers) ScoutActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	activities, err := h.Scouts.ActivitiesByScout(ctx, id)
	if err != nil {
		writeServiceError(w, err, "list scout activities")
		return
	}
	api.WriteJSON(w, http.StatusOK, activities)
}

// --- Kits ---

// CreateKitHandler adds a kit to a team's catalog.
// POST /kits
func (h *ClubAPIHandlers) CreateKitHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateKitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	kit, err := h.Kits.CreateKit(ctx, req.TeamID, req.Name, req.PrimaryColor, req.SecondaryColor, req.Season)
	if err != nil {
		writeServiceError(w, err, "create kit")
		return
	}
	api.WriteJSON(w, http.StatusCreated, kit)
}

// TeamKitsHandler returns a team's kit catalog.
// GET /kits?teamId=...
func (h *ClubAPIHandlers) TeamKitsHandler(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("teamId")
	if teamID == "" {
		api.WriteBadRequest(w, "teamId query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	kits, err := h.Kits.KitsByTeam(ctx, teamID)
	if err != nil {
		writeServiceError(w, err, "list kits")
		return
	}
	api.WriteJSON(w, http.StatusOK, kits)
}

// SubmitKitRequestHandler asks for a kit to be produced for a team.
// POST /kit-requests
func (h *ClubAPIHandlers) SubmitKitRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req SubmitKitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	kr, err := h.Kits.SubmitRequest(ctx, req.TeamID, req.KitID, req.Requester)
	if err != nil {
		writeServiceError(w, err, "submit kit request")
		return
	}
	api.WriteJSON(w, http.StatusCreated, kr)
}

// ApproveKitRequestHandler approves a pending kit request.
// POST /kit-requests/{id}/approve
func (h *ClubAPIHandlers) ApproveKitRequestHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	kr, err := h.Kits.ApproveRequest(ctx, id)
	if err != nil {
		writeServiceError(w, err, "approve kit request")
		return
	}
	api.WriteJSON(w, http.StatusOK, kr)
}

// RejectKitRequestHandler rejects a pending kit request.
// POST /kit-requests/{id}/reject
func (h *ClubAPIHandlers) RejectKitRequestHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	kr, err := h.Kits.RejectRequest(ctx, id)
	if err != nil {
		writeServiceError(w, err, "reject kit request")
		return
	}
	api.WriteJSON(w, http.StatusOK, kr)
}
