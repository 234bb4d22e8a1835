package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/service"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/api"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

// --- Request DTOs ---

type IssueCardRequest struct {
	UserID     string            `json:"userId"`
	Name       string            `json:"name"`
	Role       models.Role       `json:"role"`
	Attributes models.Attributes `json:"attributes"`
	TeamID     string            `json:"teamId,omitempty"`
}

type UpdateAttributesRequest struct {
	Attributes models.Attributes `json:"attributes"`
}

type RecordPerformanceRequest struct {
	Performance models.Performance `json:"performance"`
}

type LikeRequest struct {
	LikerID string `json:"likerId"`
}

// IssueCardHandler handles requests to mint a player card.
// POST /players
func (h *ClubAPIHandlers) IssueCardHandler(w http.ResponseWriter, r *http.Request) {
	var req IssueCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	player, err := h.Players.IssueCard(ctx, service.IssueCardInput{
		UserID:     req.UserID,
		Name:       req.Name,
		Role:       req.Role,
		Attributes: req.Attributes,
		TeamID:     req.TeamID,
	})
	if err != nil {
		writeServiceError(w, err, "issue player card")
		return
	}
	api.WriteJSON(w, http.StatusCreated, player)
}

// ListPlayersHandler returns every card.
// GET /players
func (h *ClubAPIHandlers) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	players, err := h.Players.AllPlayers(ctx)
	if err != nil {
		writeServiceError(w, err, "list players")
		return
	}
	api.WriteJSON(w, http.StatusOK, players)
}

// GetPlayerHandler returns one card.
// GET /players/{id}
func (h *ClubAPIHandlers) GetPlayerHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	player, err := h.Players.GetPlayer(ctx, id)
	if err != nil {
		writeServiceError(w, err, "get player")
		return
	}
	api.WriteJSON(w, http.StatusOK, player)
}

// DeletePlayerHandler removes a card (administrative removal).
// DELETE /players/{id}
func (h *ClubAPIHandlers) DeletePlayerHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Players.DeleteCard(ctx, id); err != nil {
		writeServiceError(w, err, "delete player")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Player card deleted"})
}

// UpdateAttributesHandler replaces the attribute vector.
// PUT /players/{id}/attributes
func (h *ClubAPIHandlers) UpdateAttributesHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req UpdateAttributesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	player, err := h.Players.UpdateAttributes(ctx, id, req.Attributes)
	if err != nil {
		writeServiceError(w, err, "update attributes")
		return
	}
	api.WriteJSON(w, http.StatusOK, player)
}

// RecordPerformanceHandler adds performance counter deltas.
// PUT /players/{id}/performance
func (h *ClubAPIHandlers) RecordPerformanceHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req RecordPerformanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	player, err := h.Players.RecordPerformance(ctx, id, req.Performance)
	if err != nil {
		writeServiceError(w, err, "record performance")
		return
	}
	api.WriteJSON(w, http.StatusOK, player)
}

// LikePlayerHandler records a like.
// POST /players/{id}/like
func (h *ClubAPIHandlers) LikePlayerHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	player, err := h.Players.Like(ctx, id, req.LikerID)
	if err != nil {
		writeServiceError(w, err, "like player")
		return
	}
	api.WriteJSON(w, http.StatusOK, player)
}

// UnlikePlayerHandler withdraws a like.
// DELETE /players/{id}/like
func (h *ClubAPIHandlers) UnlikePlayerHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	player, err := h.Players.Unlike(ctx, id, req.LikerID)
	if err != nil {
		writeServiceError(w, err, "unlike player")
		return
	}
	api.WriteJSON(w, http.StatusOK, player)
}
