package handlers

import (
	"context"
	"fmt"

	"welfare/internal/domain"
	"welfare/internal/service"
)

// stubService lets each test plug in just the calls it expects; anything
// else fails loudly.
type stubService struct {
	register           func(username, email, password string) (*domain.User, error)
	authenticate       func(username, password string) (*domain.User, error)
	getUser            func(id string) (*domain.User, error)
	recordContribution func(userID string, amountCents int64, description string) (*domain.Contribution, error)
	listContributions  func(userID string) ([]domain.Contribution, error)
	requestWithdrawal  func(userID string, amountCents int64, reason string) (*domain.Withdrawal, error)
	listWithdrawals    func(userID string) ([]domain.Withdrawal, error)
	getDashboard       func(userID string) (*service.Dashboard, error)
	approveWithdrawal  func(adminID, withdrawalID, notes string) (*domain.Withdrawal, error)
	rejectWithdrawal   func(adminID, withdrawalID, notes string) (*domain.Withdrawal, error)
	listAllWithdrawals func(adminID string) ([]domain.Withdrawal, error)
	getSummary         func(adminID string) (*service.Summary, error)
	listUsers          func(adminID string) ([]domain.User, error)
	updateUser         func(adminID, userID, username, email string, isAdmin bool) (*domain.User, error)
}

func errUnexpected(name string) error { return fmt.Errorf("unexpected call to %s", name) }

func (s *stubService) Register(_ context.Context, username, email, password string) (*domain.User, error) {
	if s.register == nil {
		return nil, errUnexpected("Register")
	}
	return s.register(username, email, password)
}

func (s *stubService) Authenticate(_ context.Context, username, password string) (*domain.User, error) {
	if s.authenticate == nil {
		return nil, errUnexpected("Authenticate")
	}
	return s.authenticate(username, password)
}

func (s *stubService) GetUser(_ context.Context, id string) (*domain.User, error) {
	if s.getUser == nil {
		return nil, errUnexpected("GetUser")
	}
	return s.getUser(id)
}

func (s *stubService) RecordContribution(_ context.Context, userID string, amountCents int64, description string) (*domain.Contribution, error) {
	if s.recordContribution == nil {
		return nil, errUnexpected("RecordContribution")
	}
	return s.recordContribution(userID, amountCents, description)
}

func (s *stubService) ListContributions(_ context.Context, userID string) ([]domain.Contribution, error) {
	if s.listContributions == nil {
		return nil, errUnexpected("ListContributions")
	}
	return s.listContributions(userID)
}

func (s *stubService) RequestWithdrawal(_ context.Context, userID string, amountCents int64, reason string) (*domain.Withdrawal, error) {
	if s.requestWithdrawal == nil {
		return nil, errUnexpected("RequestWithdrawal")
	}
	return s.requestWithdrawal(userID, amountCents, reason)
}

func (s *stubService) ListWithdrawals(_ context.Context, userID string) ([]domain.Withdrawal, error) {
	if s.listWithdrawals == nil {
		return nil, errUnexpected("ListWithdrawals")
	}
	return s.listWithdrawals(userID)
}

func (s *stubService) GetDashboard(_ context.Context, userID string) (*service.Dashboard, error) {
	if s.getDashboard == nil {
		return nil, errUnexpected("GetDashboard")
	}
	return s.getDashboard(userID)
}

func (s *stubService) ApproveWithdrawal(_ context.Context, adminID, withdrawalID, notes string) (*domain.Withdrawal, error) {
	if s.approveWithdrawal == nil {
		return nil, errUnexpected("ApproveWithdrawal")
	}
	return s.approveWithdrawal(adminID, withdrawalID, notes)
}

func (s *stubService) RejectWithdrawal(_ context.Context, adminID, withdrawalID, notes string) (*domain.Withdrawal, error) {
	if s.rejectWithdrawal == nil {
		return nil, errUnexpected("RejectWithdrawal")
	}
	return s.rejectWithdrawal(adminID, withdrawalID, notes)
}

func (s *stubService) ListAllWithdrawals(_ context.Context, adminID string) ([]domain.Withdrawal, error) {
	if s.listAllWithdrawals == nil {
		return nil, errUnexpected("ListAllWithdrawals")
	}
	return s.listAllWithdrawals(adminID)
}

func (s *stubService) GetSummary(_ context.Context, adminID string) (*service.Summary, error) {
	if s.getSummary == nil {
		return nil, errUnexpected("GetSummary")
	}
	return s.getSummary(adminID)
}

func (s *stubService) ListUsers(_ context.Context, adminID string) ([]domain.User, error) {
	if s.listUsers == nil {
		return nil, errUnexpected("ListUsers")
	}
	return s.listUsers(adminID)
}

func (s *stubService) UpdateUser(_ context.Context, adminID, userID, username, email string, isAdmin bool) (*domain.User, error) {
	if s.updateUser == nil {
		return nil, errUnexpected("UpdateUser")
	}
	return s.updateUser(adminID, userID, username, email, isAdmin)
}
