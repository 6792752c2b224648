package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Service interface {
	// CountOrders counts confirmed or done orders for the commercial customer
	// with an order date inside the trailing window ending at now.
	CountOrders(ctx context.Context, companyID, commercialCustomerID snowflake.ID, windowDays int, now time.Time) (int, error)
}

type Repository interface {
	CountInWindow(ctx context.Context, db *gorm.DB, companyID, commercialCustomerID snowflake.ID, from time.Time) (int64, error)
	FindByIDs(ctx context.Context, db *gorm.DB, companyID snowflake.ID, ids []snowflake.ID) ([]SalesOrder, error)
}
