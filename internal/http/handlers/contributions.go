package handlers

import (
	"encoding/json"
	"net/http"

	"welfare/internal/money"
)

type contributionRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

func (a *App) ContributionsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	cents, err := money.ParseCents(req.Amount)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid amount")
		return
	}
	c, err := a.Service.RecordContribution(r.Context(), userID, cents, req.Description)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toContributionDTO(*c))
}

func (a *App) ContributionsList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	items, err := a.Service.ListContributions(r.Context(), userID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toContributionDTOs(items)})
}
