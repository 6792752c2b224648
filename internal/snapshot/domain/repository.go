package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	RiskLevel string
}

type Repository interface {
	FindByPair(ctx context.Context, db *gorm.DB, companyID, commercialCustomerID snowflake.ID) (*DebtorKPI, error)
	Create(ctx context.Context, db *gorm.DB, row *DebtorKPI) error
	// UpdateByPair overwrites every KPI field of the existing row.
	UpdateByPair(ctx context.Context, db *gorm.DB, row *DebtorKPI) error
	List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]*DebtorKPI, error)
}
