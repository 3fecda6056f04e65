package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"welfare/internal/domain"
	"welfare/internal/middleware"
)

func TestContributionsCreate(t *testing.T) {
	createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	svc := &stubService{
		recordContribution: func(userID string, amountCents int64, description string) (*domain.Contribution, error) {
			if amountCents != 10000 || description != "january dues" {
				t.Fatalf("RecordContribution called with %d %q", amountCents, description)
			}
			return &domain.Contribution{ID: "c1", UserID: userID, AmountCents: amountCents, Description: description, CreatedAt: createdAt}, nil
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/v1/contributions",
		strings.NewReader(`{"amount":"100.00","description":"january dues"}`))
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "u1"))
	rr := httptest.NewRecorder()
	app.ContributionsCreate(rr, req)

	if rr.Code != 201 {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var got contributionDTO
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Amount != "100.00" {
		t.Fatalf("amount = %q, want %q", got.Amount, "100.00")
	}
}

func TestContributionsCreateZeroAmount(t *testing.T) {
	svc := &stubService{
		recordContribution: func(string, int64, string) (*domain.Contribution, error) {
			return nil, domain.ErrInvalidAmount
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/v1/contributions",
		strings.NewReader(`{"amount":"0.00"}`))
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "u1"))
	rr := httptest.NewRecorder()
	app.ContributionsCreate(rr, req)

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestContributionsList(t *testing.T) {
	svc := &stubService{
		listContributions: func(userID string) ([]domain.Contribution, error) {
			return []domain.Contribution{
				{ID: "c2", UserID: userID, AmountCents: 5000},
				{ID: "c1", UserID: userID, AmountCents: 10000},
			}, nil
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest("GET", "/v1/contributions", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "u1"))
	rr := httptest.NewRecorder()
	app.ContributionsList(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var payload struct {
		Items []contributionDTO `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 2 || payload.Items[0].ID != "c2" {
		t.Fatalf("unexpected items: %+v", payload.Items)
	}
}
