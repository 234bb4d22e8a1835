// Package api is the HTTP facade UI and workflow callers use. It validates
// request shapes, delegates to the service layer, and maps service errors to
// HTTP statuses. Role enforcement happens in the callers, not here.
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/service"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/session"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/api"
)

// ClubAPIHandlers holds references to the services that handle business logic.
type ClubAPIHandlers struct {
	Users         *service.UserService
	Players       *service.PlayerService
	Teams         *service.TeamService
	Invitations   *service.InvitationService
	Registrations *service.RegistrationService
	Notifications *service.NotificationService
	Scouts        *service.ScoutService
	Kits          *service.KitService
	Session       *session.Snapshot
}

// RegisterRoutes registers all API endpoints.
func (h *ClubAPIHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", h.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", h.LoginHandler).Methods("POST")
	router.HandleFunc("/users/{id}", h.GetUserHandler).Methods("GET")
	router.HandleFunc("/session", h.GetSessionHandler).Methods("GET")
	router.HandleFunc("/session", h.ClearSessionHandler).Methods("DELETE")

	router.HandleFunc("/players", h.IssueCardHandler).Methods("POST")
	router.HandleFunc("/players", h.ListPlayersHandler).Methods("GET")
	router.HandleFunc("/players/{id}", h.GetPlayerHandler).Methods("GET")
	router.HandleFunc("/players/{id}", h.DeletePlayerHandler).Methods("DELETE")
	router.HandleFunc("/players/{id}/attributes", h.UpdateAttributesHandler).Methods("PUT")
	router.HandleFunc("/players/{id}/performance", h.RecordPerformanceHandler).Methods("PUT")
	router.HandleFunc("/players/{id}/like", h.LikePlayerHandler).Methods("POST")
	router.HandleFunc("/players/{id}/like", h.UnlikePlayerHandler).Methods("DELETE")

	router.HandleFunc("/teams", h.CreateTeamHandler).Methods("POST")
	router.HandleFunc("/teams", h.ListTeamsHandler).Methods("GET")
	router.HandleFunc("/teams/{id}", h.GetTeamHandler).Methods("GET")
	router.HandleFunc("/teams/{id}/players", h.TeamPlayersHandler).Methods("GET")
	router.HandleFunc("/teams/{id}/result", h.FinalizeResultHandler).Methods("POST")
	router.HandleFunc("/rankings", h.RankingsHandler).Methods("GET")

	router.HandleFunc("/invitations", h.CreateInvitationHandler).Methods("POST")
	router.HandleFunc("/invitations/{id}/accept", h.AcceptInvitationHandler).Methods("POST")
	router.HandleFunc("/invitations/{id}/reject", h.RejectInvitationHandler).Methods("POST")

	router.HandleFunc("/notifications", h.ListNotificationsHandler).Methods("GET")
	router.HandleFunc("/notifications/{id}/read", h.MarkNotificationReadHandler).Methods("PUT")
	router.HandleFunc("/notifications/{id}", h.DeleteNotificationHandler).Methods("DELETE")

	router.HandleFunc("/requests", h.SubmitRequestHandler).Methods("POST")
	router.HandleFunc("/requests", h.PendingRequestsHandler).Methods("GET")
	router.HandleFunc("/requests/{id}/approve", h.ApproveRequestHandler).Methods("POST")
	router.HandleFunc("/requests/{id}/reject", h.RejectRequestHandler).Methods("POST")

	router.HandleFunc("/scouts", h.CreateScoutHandler).Methods("POST")
	router.HandleFunc("/scouts/{id}", h.GetScoutHandler).Methods("GET")
	router.HandleFunc("/scouts/{id}/activities", h.LogScoutActivityHandler).Methods("POST")
	router.HandleFunc("/scouts/{id}/activities", h.ScoutActivitiesHandler).Methods("GET")

	router.HandleFunc("/kits", h.CreateKitHandler).Methods("POST")
	router.HandleFunc("/kits", h.TeamKitsHandler).Methods("GET")
	router.HandleFunc("/kit-requests", h.SubmitKitRequestHandler).Methods("POST")
	router.HandleFunc("/kit-requests/{id}/approve", h.ApproveKitRequestHandler).Methods("POST")
	router.HandleFunc("/kit-requests/{id}/reject", h.RejectKitRequestHandler).Methods("POST")
}

// writeServiceError maps service-layer errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		api.WriteBadRequest(w, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPlayerNotFound),
		errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrScoutNotFound),
		errors.Is(err, service.ErrKitNotFound):
		api.WriteNotFound(w, err.Error())
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInvitationClosed),
		errors.Is(err, service.ErrRequestClosed):
		api.WriteConflict(w, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		api.WriteError(w, http.StatusUnauthorized, "Invalid username or secret")
	default:
		log.Printf("Error %s: %v", what, err)
		api.WriteInternalServerError(w, "Failed to "+what)
	}
}
