package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/internal/exposure/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// Child contacts roll up to one commercial entity, so invoice rows are
// matched through the customer's commercial_customer_id.
func (r *repo) OpenInvoices(ctx context.Context, db *gorm.DB, companyID, commercialCustomerID snowflake.ID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.company_id = ?", companyID).
		Where("customers.commercial_customer_id = ?", commercialCustomerID).
		Where("invoices.move_type = ?", domain.MoveTypeInvoice).
		Where("invoices.state = ?", domain.MoveStatePosted).
		Where("invoices.amount_residual > 0").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) OpenCreditNotes(ctx context.Context, db *gorm.DB, companyID, commercialCustomerID snowflake.ID) ([]domain.Invoice, error) {
	var credits []domain.Invoice
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.company_id = ?", companyID).
		Where("customers.commercial_customer_id = ?", commercialCustomerID).
		Where("invoices.move_type = ?", domain.MoveTypeCreditNote).
		Where("invoices.state = ?", domain.MoveStatePosted).
		Where("invoices.amount_residual <> 0").
		Find(&credits).Error
	if err != nil {
		return nil, err
	}
	return credits, nil
}
