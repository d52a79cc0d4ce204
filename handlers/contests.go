// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/contest-hub/middleware"
	"github.com/danielhkuo/contest-hub/models"
	"github.com/danielhkuo/contest-hub/store"
)

type ContestHandler struct {
	contests store.Collection
}

func NewContestHandler(contests store.Collection) *ContestHandler {
	return &ContestHandler{contests: contests}
}

// ListContests handles GET /contests?email=
func (h *ContestHandler) ListContests(w http.ResponseWriter, r *http.Request) error {
	q := emailFilter(r.URL.Query().Get("email"), models.FieldEmail, models.FieldCreatorEmail)

	contests, err := h.contests.Find(r.Context(), q)
	if err != nil {
		return err
	}

	middleware.JSONResponse(w, http.StatusOK, contests)
	return nil
}

// SearchContests handles GET /contests/search?query=
// Matches tags case-insensitively by substring and returns name and image only.
func (h *ContestHandler) SearchContests(w http.ResponseWriter, r *http.Request) error {
	q := store.Query{
		Contains: &store.Condition{Field: models.FieldTag, Value: r.URL.Query().Get("query")},
		Fields:   models.SearchFields,
	}

	contests, err := h.contests.Find(r.Context(), q)
	if err != nil {
		return err
	}

	middleware.JSONResponse(w, http.StatusOK, contests)
	return nil
}

// GetContest handles GET /contests/{id}
func (h *ContestHandler) GetContest(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	contest, err := h.contests.FindOne(r.Context(), store.ByID(id))
	if err != nil {
		return err
	}

	middleware.JSONResponse(w, http.StatusOK, contest)
	return nil
}

// CreateContest handles POST /contests. New contests start pending and are
// owned by the caller unless the body names a creator.
func (h *ContestHandler) CreateContest(w http.ResponseWriter, r *http.Request) error {
	contest, err := parseDocument(r)
	if err != nil {
		return err
	}

	contest[models.FieldStatus] = models.StatusPending
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		setDefault(contest, models.FieldCreatorEmail, claims.Email)
	}

	res, err := h.contests.InsertOne(r.Context(), contest)
	if err != nil {
		return err
	}

	slog.Info("contest created", "contest_id", res.InsertedID, "creator", contest.String(models.FieldCreatorEmail))

	middleware.JSONResponse(w, http.StatusCreated, res)
	return nil
}

// UpdateContest handles PATCH /contests/{id}. Every field in
// models.ContestReplaceFields is written; fields missing from the body are
// cleared.
func (h *ContestHandler) UpdateContest(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	body, err := parseDocument(r)
	if err != nil {
		return err
	}

	res, err := updateByID(r.Context(), h.contests, id, store.SetFields(body, models.ContestReplaceFields...))
	if err != nil {
		return err
	}

	middleware.JSONResponse(w, http.StatusOK, res)
	return nil
}

// ApproveContest handles PATCH /contests/approved/{id}. Approving twice is a
// no-op.
func (h *ContestHandler) ApproveContest(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	res, err := updateByID(r.Context(), h.contests, id, store.Document{models.FieldStatus: models.StatusApproved})
	if err != nil {
		return err
	}

	slog.Info("contest approved", "contest_id", id)

	middleware.JSONResponse(w, http.StatusOK, res)
	return nil
}

// DeleteContest handles DELETE /contests/{id}. Participation records are
// left in place.
func (h *ContestHandler) DeleteContest(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	res, err := deleteByID(r.Context(), h.contests, id)
	if err != nil {
		return err
	}

	slog.Info("contest deleted", "contest_id", id)

	middleware.JSONResponse(w, http.StatusOK, res)
	return nil
}
