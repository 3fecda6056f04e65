package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"welfare/internal/money"
)

func (a *App) AdminSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := a.Service.GetSummary(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"user_count":          sum.UserCount,
		"pending_withdrawals": sum.PendingWithdrawals,
		"total_contributions": money.FormatCents(sum.TotalContributionCents),
	})
}

func (a *App) AdminUsersList(w http.ResponseWriter, r *http.Request) {
	users, err := a.Service.ListUsers(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	items := make([]userDTO, 0, len(users))
	for i := range users {
		items = append(items, toUserDTO(&users[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type updateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

func (a *App) AdminUserUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	user, err := a.Service.UpdateUser(r.Context(), a.currentUserID(r), chi.URLParam(r, "id"), req.Username, req.Email, req.IsAdmin)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toUserDTO(user))
}

func (a *App) AdminWithdrawalsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Service.ListAllWithdrawals(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toWithdrawalDTOs(items)})
}

type resolveRequest struct {
	Notes string `json:"notes"`
}

func (a *App) AdminWithdrawalApprove(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	wd, err := a.Service.ApproveWithdrawal(r.Context(), a.currentUserID(r), chi.URLParam(r, "id"), req.Notes)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toWithdrawalDTO(wd))
}

func (a *App) AdminWithdrawalReject(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	wd, err := a.Service.RejectWithdrawal(r.Context(), a.currentUserID(r), chi.URLParam(r, "id"), req.Notes)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toWithdrawalDTO(wd))
}
