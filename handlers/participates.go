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

type ParticipateHandler struct {
	participates store.Collection
}

func NewParticipateHandler(participates store.Collection) *ParticipateHandler {
	return &ParticipateHandler{participates: participates}
}

// ListParticipations handles GET /participates?email=
// The email matches either the contest creator or the participant.
func (h *ParticipateHandler) ListParticipations(w http.ResponseWriter, r *http.Request) error {
	q := emailFilter(r.URL.Query().Get("email"), models.FieldCreatorEmail, models.FieldParticipateEmail)

	records, err := h.participates.Find(r.Context(), q)
	if err != nil {
		return err
	}

	middleware.JSONResponse(w, http.StatusOK, records)
	return nil
}

// CreateParticipation handles POST /participates. Entries always start as
// participant; MarkWinner is the only way to winner.
func (h *ParticipateHandler) CreateParticipation(w http.ResponseWriter, r *http.Request) error {
	record, err := parseDocument(r)
	if err != nil {
		return err
	}

	record[models.FieldRole] = models.RoleParticipant
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		setDefault(record, models.FieldParticipateEmail, claims.Email)
	}

	res, err := h.participates.InsertOne(r.Context(), record)
	if err != nil {
		return err
	}

	slog.Info("participation recorded", "participation_id", res.InsertedID,
		"participant", record.String(models.FieldParticipateEmail))

	middleware.JSONResponse(w, http.StatusCreated, res)
	return nil
}

// MarkWinner handles PATCH /participates/winner/{id}. Several winners per
// contest are allowed.
func (h *ParticipateHandler) MarkWinner(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	res, err := updateByID(r.Context(), h.participates, id, store.Document{models.FieldRole: models.RoleWinner})
	if err != nil {
		return err
	}

	slog.Info("winner marked", "participation_id", id)

	middleware.JSONResponse(w, http.StatusOK, res)
	return nil
}
