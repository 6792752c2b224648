package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/internal/snapshot/domain"
	"github.com/pvlabs/riskwatch/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByPair(ctx context.Context, db *gorm.DB, companyID, commercialCustomerID snowflake.ID) (*domain.DebtorKPI, error) {
	var row domain.DebtorKPI
	err := db.WithContext(ctx).
		Where("company_id = ? AND commercial_customer_id = ?", companyID, commercialCustomerID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, row *domain.DebtorKPI) error {
	return db.WithContext(ctx).Create(row).Error
}

func (r *repo) UpdateByPair(ctx context.Context, db *gorm.DB, row *domain.DebtorKPI) error {
	return db.WithContext(ctx).
		Model(&domain.DebtorKPI{}).
		Where("company_id = ? AND commercial_customer_id = ?", row.CompanyID, row.CommercialCustomerID).
		Updates(map[string]any{
			"outstanding":      row.Outstanding,
			"credit_open":      row.CreditOpen,
			"overdue":          row.Overdue,
			"credit_limit":     row.CreditLimit,
			"credit_util_pct":  row.CreditUtilPct,
			"overdue_ratio":    row.OverdueRatio,
			"orders_in_window": row.OrdersInWindow,
			"risk_score":       row.RiskScore,
			"risk_level":       row.RiskLevel,
			"last_updated":     row.LastUpdated,
		}).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, companyID snowflake.ID, filter domain.ListFilter, page pagination.Pagination) ([]*domain.DebtorKPI, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.DebtorKPI{}).
		Where("company_id = ?", companyID)
	if filter.RiskLevel != "" {
		stmt = stmt.Where("risk_level = ?", filter.RiskLevel)
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		if cursor.ID != "" {
			id, err := snowflake.ParseString(cursor.ID)
			if err != nil {
				return nil, err
			}
			stmt = stmt.Where("id > ?", id)
		}
	}
	limit := page.PageSize
	if limit <= 0 {
		limit = 50
	}

	var rows []*domain.DebtorKPI
	err := stmt.
		Order("id").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
