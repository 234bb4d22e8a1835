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

type RegisterUserRequest struct {
	Username string          `json:"username"`
	Secret   string          `json:"secret"`
	Role     models.UserRole `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// RegisterUserHandler creates a new account.
// POST /users
func (h *ClubAPIHandlers) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Register(ctx, req.Username, req.Secret, req.Role)
	if err != nil {
		writeServiceError(w, err, "register user")
		return
	}
	api.WriteJSON(w, http.StatusCreated, user)
}

// LoginHandler authenticates a user and snapshots the session so the next
// launch can restore it.
// POST /users/login
func (h *ClubAPIHandlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.Authenticate(ctx, req.Username, req.Secret)
	if err != nil {
		writeServiceError(w, err, "log in")
		return
	}
	if h.Session != nil {
		if err := h.Session.Save(ctx, user); err != nil {
			// Login still succeeds; only the restore-on-launch convenience is lost.
			api.WriteJSON(w, http.StatusOK, user)
			return
		}
	}
	api.WriteJSON(w, http.StatusOK, user)
}

// GetUserHandler fetches an account by id.
// GET /users/{id}
func (h *ClubAPIHandlers) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetUser(ctx, id)
	if err != nil {
		writeServiceError(w, err, "get user")
		return
	}
	api.WriteJSON(w, http.StatusOK, user)
}

// GetSessionHandler returns the snapshotted current user, if any.
// GET /session
func (h *ClubAPIHandlers) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	if h.Session == nil {
		api.WriteJSON(w, http.StatusOK, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.Session.Load(ctx)
	if err != nil {
		writeServiceError(w, err, "load session")
		return
	}
	api.WriteJSON(w, http.StatusOK, user)
}

// ClearSessionHandler logs the current user out.
// DELETE /session
func (h *ClubAPIHandlers) ClearSessionHandler(w http.ResponseWriter, r *http.Request) {
	if h.Session == nil {
		api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Session cleared"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Session.Clear(ctx); err != nil {
		writeServiceError(w, err, "clear session")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Session cleared"})
}
