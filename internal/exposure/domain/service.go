package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Service interface {
	// Aggregate computes the open exposure for one commercial customer.
	// Overdue uses a strict date comparison against asOf's calendar date.
	Aggregate(ctx context.Context, companyID, commercialCustomerID snowflake.ID, asOf time.Time) (Exposure, error)
}

type Repository interface {
	OpenInvoices(ctx context.Context, db *gorm.DB, companyID, commercialCustomerID snowflake.ID) ([]Invoice, error)
	OpenCreditNotes(ctx context.Context, db *gorm.DB, companyID, commercialCustomerID snowflake.ID) ([]Invoice, error)
}
