package domain

import (
	"context"
	"errors"

	riskconfigdomain "github.com/pvlabs/riskwatch/internal/riskconfig/domain"
)

type GetCustomerRequest struct {
	ID string
}

type LiveRiskRequest struct {
	CustomerID string
}

type Service interface {
	GetByID(ctx context.Context, req GetCustomerRequest) (Customer, error)
	// LiveRisk resolves settings once and recomputes the full snapshot for
	// the customer's commercial entity. Read-only.
	LiveRisk(ctx context.Context, req LiveRiskRequest) (RiskSnapshot, error)
	// Evaluate runs the shared aggregation and scoring pipeline for an
	// already-loaded customer with already-resolved settings. Both the live
	// path and the snapshot refresh go through here.
	Evaluate(ctx context.Context, customer Customer, settings riskconfigdomain.Settings) (RiskSnapshot, error)
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
