package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"welfare/internal/domain"
	"welfare/internal/middleware"
	"welfare/internal/money"
	"welfare/internal/service"
)

// WelfareService is the slice of the service layer the handlers consume.
// *service.Welfare satisfies it; tests substitute stubs.
type WelfareService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	RecordContribution(ctx context.Context, userID string, amountCents int64, description string) (*domain.Contribution, error)
	ListContributions(ctx context.Context, userID string) ([]domain.Contribution, error)
	RequestWithdrawal(ctx context.Context, userID string, amountCents int64, reason string) (*domain.Withdrawal, error)
	ListWithdrawals(ctx context.Context, userID string) ([]domain.Withdrawal, error)
	GetDashboard(ctx context.Context, userID string) (*service.Dashboard, error)
	ApproveWithdrawal(ctx context.Context, adminID, withdrawalID, notes string) (*domain.Withdrawal, error)
	RejectWithdrawal(ctx context.Context, adminID, withdrawalID, notes string) (*domain.Withdrawal, error)
	ListAllWithdrawals(ctx context.Context, adminID string) ([]domain.Withdrawal, error)
	GetSummary(ctx context.Context, adminID string) (*service.Summary, error)
	ListUsers(ctx context.Context, adminID string) ([]domain.User, error)
	UpdateUser(ctx context.Context, adminID, userID, username, email string, isAdmin bool) (*domain.User, error)
}

// App bundles the handler dependencies.
type App struct {
	Service   WelfareService
	Logger    zerolog.Logger
	JWTSecret string
	TokenTTL  time.Duration
}

func NewApp(svc WelfareService, logger zerolog.Logger, jwtSecret string, tokenTTL time.Duration) *App {
	return &App{Service: svc, Logger: logger, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{"error": map[string]string{"code": errCode, "message": message}})
}

// domainError translates service failures into the response envelope.
// Unrecognized errors are storage-level: they are logged and surfaced as a
// bare 500.
func (a *App) domainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrEmptyReason):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		a.error(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
	case errors.Is(err, domain.ErrUnauthorized):
		// deliberately generic so resource existence does not leak
		a.error(w, http.StatusForbidden, "unauthorized", "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, domain.ErrDuplicateIdentity):
		a.error(w, http.StatusConflict, "duplicate_identity", "username or email already taken")
	case errors.Is(err, domain.ErrAlreadyProcessed):
		a.error(w, http.StatusConflict, "already_processed", "withdrawal already processed")
	case errors.Is(err, domain.ErrInsufficientBalance):
		a.error(w, http.StatusUnprocessableEntity, "insufficient_balance", "insufficient balance")
	default:
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

type userDTO struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsAdmin      bool      `json:"is_admin"`
	Balance      string    `json:"balance"`
	RegisteredAt time.Time `json:"registered_at"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		IsAdmin:      u.IsAdmin,
		Balance:      money.FormatCents(u.BalanceCents),
		RegisteredAt: u.RegisteredAt,
	}
}

type contributionDTO struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toContributionDTO(c domain.Contribution) contributionDTO {
	return contributionDTO{
		ID:          c.ID,
		UserID:      c.UserID,
		Amount:      money.FormatCents(c.AmountCents),
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func toContributionDTOs(items []domain.Contribution) []contributionDTO {
	out := make([]contributionDTO, 0, len(items))
	for _, c := range items {
		out = append(out, toContributionDTO(c))
	}
	return out
}

type withdrawalDTO struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Amount      string     `json:"amount"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason"`
	Notes       string     `json:"notes"`
	RequestedAt time.Time  `json:"requested_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy  *string    `json:"resolved_by,omitempty"`
}

func toWithdrawalDTO(w *domain.Withdrawal) withdrawalDTO {
	return withdrawalDTO{
		ID:          w.ID,
		UserID:      w.UserID,
		Amount:      money.FormatCents(w.AmountCents),
		Status:      string(w.Status),
		Reason:      w.Reason,
		Notes:       w.Notes,
		RequestedAt: w.RequestedAt,
		ResolvedAt:  w.ResolvedAt,
		ResolvedBy:  w.ResolvedBy,
	}
}

func toWithdrawalDTOs(items []domain.Withdrawal) []withdrawalDTO {
	out := make([]withdrawalDTO, 0, len(items))
	for i := range items {
		out = append(out, toWithdrawalDTO(&items[i]))
	}
	return out
}
