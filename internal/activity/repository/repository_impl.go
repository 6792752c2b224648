package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/internal/activity/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CountInWindow(ctx context.Context, db *gorm.DB, companyID, commercialCustomerID snowflake.ID, from time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.SalesOrder{}).
		Joins("JOIN customers ON customers.id = sales_orders.customer_id").
		Where("sales_orders.company_id = ?", companyID).
		Where("customers.commercial_customer_id = ?", commercialCustomerID).
		Where("sales_orders.state IN ?", []domain.OrderState{domain.OrderStateSale, domain.OrderStateDone}).
		Where("sales_orders.order_date >= ?", from).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, companyID snowflake.ID, ids []snowflake.ID) ([]domain.SalesOrder, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var orders []domain.SalesOrder
	err := db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("id IN ?", ids).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
