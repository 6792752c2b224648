package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, companyID, id snowflake.ID) (*Customer, error)
	// ListCommercial returns the distinct commercial customers that have any
	// sales history (customer_rank > 0 on themselves or a child contact).
	ListCommercial(ctx context.Context, db *gorm.DB, companyID snowflake.ID) ([]Customer, error)
	// ListCompanyIDs returns every company that has customers.
	ListCompanyIDs(ctx context.Context, db *gorm.DB) ([]snowflake.ID, error)
}
