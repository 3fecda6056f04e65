package handlers

import (
	"encoding/json"
	"net/http"

	"welfare/internal/money"
)

type withdrawalRequest struct {
	Amount string `json:"amount"`
	Reason string `json:"reason"`
}

func (a *App) WithdrawalsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req withdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	cents, err := money.ParseCents(req.Amount)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid amount")
		return
	}
	wd, err := a.Service.RequestWithdrawal(r.Context(), userID, cents, req.Reason)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toWithdrawalDTO(wd))
}

func (a *App) WithdrawalsList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	items, err := a.Service.ListWithdrawals(r.Context(), userID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toWithdrawalDTOs(items)})
}

func (a *App) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	dash, err := a.Service.GetDashboard(r.Context(), userID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"user":          toUserDTO(dash.User),
		"contributions": toContributionDTOs(dash.Contributions),
		"withdrawals":   toWithdrawalDTOs(dash.Withdrawals),
	})
}
