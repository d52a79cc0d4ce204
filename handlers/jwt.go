// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"

	"github.com/danielhkuo/contest-hub/auth"
	"github.com/danielhkuo/contest-hub/middleware"
	"github.com/danielhkuo/contest-hub/models"
)

type TokenHandler struct {
	tokens *auth.TokenService
}

func NewTokenHandler(tokens *auth.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue handles POST /jwt
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) error {
	var req models.TokenRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		return middleware.BadRequest("Invalid JSON")
	}

	token, err := h.tokens.Issue(auth.Claims{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	})
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{Token: token})
	return nil
}
