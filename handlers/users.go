// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/contest-hub/auth"
	"github.com/danielhkuo/contest-hub/middleware"
	"github.com/danielhkuo/contest-hub/models"
	"github.com/danielhkuo/contest-hub/store"
)

type UserHandler struct {
	users store.Collection
	roles middleware.RoleLookup
}

func NewUserHandler(users store.Collection, roles middleware.RoleLookup) *UserHandler {
	return &UserHandler{users: users, roles: roles}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.users.Find(r.Context(), store.Query{})
	if err != nil {
		return err
	}

	middleware.JSONResponse(w, http.StatusOK, users)
	return nil
}

// CreateUser handles POST /users. Registering an email twice is not an
// error: the second call returns a "user already exists" result. New users
// are always guests; only UpdateRole grants more.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) error {
	user, err := parseDocument(r)
	if err != nil {
		return err
	}
	user[models.FieldRole] = models.RoleGuest

	email := user.String(models.FieldEmail)
	if email != "" {
		_, err := h.users.FindOne(r.Context(), store.ByField(models.FieldEmail, email))
		switch {
		case err == nil:
			middleware.JSONResponse(w, http.StatusOK, userExists())
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
	}

	res, err := h.users.InsertOne(r.Context(), user)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a race with a concurrent registration.
		middleware.JSONResponse(w, http.StatusOK, userExists())
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("user created", "user_id", res.InsertedID, "email", email)

	middleware.JSONResponse(w, http.StatusCreated, res)
	return nil
}

func userExists() models.UserExistsResponse {
	return models.UserExistsResponse{Message: "user already exists", InsertedID: nil}
}

// UpdateUser handles PATCH /users/{id}. Only fields present in the body are
// written; _id and role are never taken from the body.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	patch, err := parseDocument(r)
	if err != nil {
		return err
	}

	res, err := updateByID(r.Context(), h.users, id, store.Without(patch, store.IDField, models.FieldRole))
	if errors.Is(err, store.ErrDuplicate) {
		return &middleware.HTTPError{Status: http.StatusConflict, Message: "email already registered"}
	}
	if err != nil {
		return err
	}

	middleware.JSONResponse(w, http.StatusOK, res)
	return nil
}

// UpdateRole handles PATCH /users/updateRole/{id}
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var req models.UpdateRoleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		return middleware.BadRequest("Invalid JSON")
	}

	_, err = updateByID(r.Context(), h.users, id, store.Document{models.FieldRole: req.Role})
	if errors.Is(err, store.ErrNotFound) {
		return middleware.NotFound("User not found.")
	}
	if err != nil {
		return err
	}

	user, err := h.users.FindOne(r.Context(), store.ByID(id))
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between the two calls.
		return middleware.NotFound("User not found.")
	}
	if err != nil {
		return err
	}

	slog.Info("user role updated", "user_id", id, "role", req.Role)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "\"" + firstName(user.String(models.FieldName)) + "\" is now " + req.Role + ".",
	})
	return nil
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// DeleteUser handles DELETE /users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	res, err := deleteByID(r.Context(), h.users, id)
	if err != nil {
		return err
	}

	slog.Info("user deleted", "user_id", id)

	middleware.JSONResponse(w, http.StatusOK, res)
	return nil
}

// CheckAdmin handles GET /users/admin/{email}
func (h *UserHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) error {
	role, err := h.selfRole(r)
	if err != nil {
		return err
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminCheckResponse{Admin: role == models.RoleAdmin})
	return nil
}

// CheckCreator handles GET /users/creator/{email}
func (h *UserHandler) CheckCreator(w http.ResponseWriter, r *http.Request) error {
	role, err := h.selfRole(r)
	if err != nil {
		return err
	}

	middleware.JSONResponse(w, http.StatusOK, models.CreatorCheckResponse{Creator: role == models.RoleCreator})
	return nil
}

// selfRole returns the stored role for the {email} path value, which must
// belong to the caller. Unknown users have no role.
func (h *UserHandler) selfRole(r *http.Request) (string, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return "", auth.ErrUnauthorized
	}

	email := r.PathValue("email")
	if email != claims.Email {
		return "", middleware.ErrForbidden
	}

	role, _, err := h.roles.ResolveRole(r.Context(), email)
	if err != nil {
		return "", err
	}
	return role, nil
}
