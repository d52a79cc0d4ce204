// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/contest-hub/auth"
	"github.com/danielhkuo/contest-hub/handlers"
	"github.com/danielhkuo/contest-hub/middleware"
	"github.com/danielhkuo/contest-hub/models"
	"github.com/danielhkuo/contest-hub/store"
)

const (
	rootMessage   = "Contest-Hub Server Started"
	healthMessage = "Contest-Hub is running...."
)

func NewRouter(st store.Store, tokens *auth.TokenService) *http.ServeMux {
	mux := http.NewServeMux()

	roles := auth.NewRoleResolver(st.Users)

	// Initialize handlers
	tokenHandler := handlers.NewTokenHandler(tokens)
	userHandler := handlers.NewUserHandler(st.Users, roles)
	contestHandler := handlers.NewContestHandler(st.Contests)
	participateHandler := handlers.NewParticipateHandler(st.Participates)

	// Guard levels. Logging runs first so rejected requests are logged too.
	public := func(h middleware.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithErrors(h))
	}
	authenticated := func(h middleware.HandlerFunc) http.HandlerFunc {
		return middleware.Chain(middleware.WithErrors(h),
			middleware.WithLogging,
			middleware.Authenticate(tokens),
		)
	}
	withRole := func(h middleware.HandlerFunc, allowed ...string) http.HandlerFunc {
		return middleware.Chain(middleware.WithErrors(h),
			middleware.WithLogging,
			middleware.Authenticate(tokens),
			middleware.RequireRole(roles, allowed...),
		)
	}

	// Liveness
	mux.HandleFunc("GET /{$}", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rootMessage))
	}))
	mux.HandleFunc("GET /health", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(healthMessage))
	}))

	// Tokens
	mux.HandleFunc("POST /jwt", public(tokenHandler.Issue))

	// Users
	mux.HandleFunc("GET /users", withRole(userHandler.ListUsers, models.RoleAdmin))
	mux.HandleFunc("POST /users", public(userHandler.CreateUser))
	mux.HandleFunc("GET /users/admin/{email}", authenticated(userHandler.CheckAdmin))
	mux.HandleFunc("GET /users/creator/{email}", authenticated(userHandler.CheckCreator))
	mux.HandleFunc("PATCH /users/updateRole/{id}", withRole(userHandler.UpdateRole, models.RoleAdmin))
	mux.HandleFunc("PATCH /users/{id}", authenticated(userHandler.UpdateUser))
	mux.HandleFunc("DELETE /users/{id}", withRole(userHandler.DeleteUser, models.RoleAdmin))

	// Contests
	mux.HandleFunc("GET /contests", public(contestHandler.ListContests))
	mux.HandleFunc("GET /contests/search", public(contestHandler.SearchContests))
	mux.HandleFunc("GET /contests/{id}", public(contestHandler.GetContest))
	mux.HandleFunc("POST /contests", withRole(contestHandler.CreateContest, models.RoleCreator))
	mux.HandleFunc("PATCH /contests/{id}", withRole(contestHandler.UpdateContest, models.RoleCreator))
	mux.HandleFunc("PATCH /contests/approved/{id}", withRole(contestHandler.ApproveContest, models.RoleAdmin))
	mux.HandleFunc("DELETE /contests/{id}", withRole(contestHandler.DeleteContest, models.RoleAdmin, models.RoleCreator))

	// Participation
	mux.HandleFunc("GET /participates", authenticated(participateHandler.ListParticipations))
	mux.HandleFunc("POST /participates", authenticated(participateHandler.CreateParticipation))
	mux.HandleFunc("PATCH /participates/winner/{id}", withRole(participateHandler.MarkWinner, models.RoleCreator))

	// Everything else
	mux.HandleFunc("/", public(notFound))

	return mux
}

func notFound(w http.ResponseWriter, r *http.Request) error {
	return middleware.NotFound("Can't find " + r.URL.RequestURI() + " on the server")
}
