package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/service"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/api"
)

type CreateTeamRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Color        string `json:"color"`
	CaptainID    string `json:"captainId"`
}

type MatchResultRequest struct {
	OpponentID string `json:"opponentId"`
	HomeGoals  int    `json:"homeGoals"`
	AwayGoals  int    `json:"awayGoals"`
}

// CreateTeamHandler founds a new team.
// POST /teams
func (h *ClubAPIHandlers) CreateTeamHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	team, err := h.Teams.CreateTeam(ctx, service.CreateTeamInput{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
		Color:        req.Color,
		CaptainID:    req.CaptainID,
	})
	if err != nil {
		writeServiceError(w, err, "create team")
		return
	}
	api.WriteJSON(w, http.StatusCreated, team)
}

// ListTeamsHandler returns every team.
// GET /teams
func (h *ClubAPIHandlers) ListTeamsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	teams, err := h.Teams.AllTeams(ctx)
	if err != nil {
		writeServiceError(w, err, "list teams")
		return
	}
	api.WriteJSON(w, http.StatusOK, teams)
}

// GetTeamHandler returns one team.
// GET /teams/{id}
func (h *ClubAPIHandlers) GetTeamHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	team, err := h.Teams.GetTeam(ctx, id)
	if err != nil {
		writeServiceError(w, err, "get team")
		return
	}
	api.WriteJSON(w, http.StatusOK, team)
}

// TeamPlayersHandler returns the team's roster.
// GET /teams/{id}/players
func (h *ClubAPIHandlers) TeamPlayersHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	players, err := h.Players.PlayersByTeam(ctx, id)
	if err != nil {
		writeServiceError(w, err, "list team players")
		return
	}
	api.WriteJSON(w, http.StatusOK, players)
}

// FinalizeResultHandler records a finished match for the team in the path,
// playing at home against the opponent in the body.
// POST /teams/{id}/result
func (h *ClubAPIHandlers) FinalizeResultHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req MatchResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	match, err := h.Teams.FinalizeResult(ctx, service.MatchResult{
		HomeTeamID: id,
		AwayTeamID: req.OpponentID,
		HomeGoals:  req.HomeGoals,
		AwayGoals:  req.AwayGoals,
	})
	if err != nil {
		writeServiceError(w, err, "finalize match result")
		return
	}
	api.WriteJSON(w, http.StatusCreated, match)
}

// RankingsHandler returns every team ordered by league strength.
// GET /rankings
func (h *ClubAPIHandlers) RankingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	teams, err := h.Teams.Rankings(ctx)
	if err != nil {
		writeServiceError(w, err, "list rankings")
		return
	}
	api.WriteJSON(w, http.StatusOK, teams)
}
