package domain

import (
	"context"
	"errors"

	"github.com/pvlabs/riskwatch/pkg/db/pagination"
)

type RefreshRequest struct {
	// CustomerIDs limits the refresh to the given customers. Empty means
	// every commercial customer with sales history.
	CustomerIDs []string
}

// RefreshReport summarises one refresh pass. A failing customer is logged
// and counted without aborting the rest of the batch.
type RefreshReport struct {
	Refreshed int      `json:"refreshed"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failed_ids,omitempty"`
}

type ListRequest struct {
	PageToken string
	PageSize  int
	RiskLevel string
}

type ListResponse struct {
	pagination.PageInfo
	Snapshots []DebtorKPI `json:"snapshots"`
}

type Service interface {
	Refresh(ctx context.Context, req RefreshRequest) (RefreshReport, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidID      = errors.New("invalid_id")
)
