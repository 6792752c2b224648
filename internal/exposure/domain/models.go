// Package domain contains the invoice read model and the exposure aggregates
// derived from it. Invoices are owned by the host accounting system and are
// only ever read here.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// MoveType distinguishes customer invoices from credit notes.
type MoveType string

const (
	MoveTypeInvoice    MoveType = "out_invoice"
	MoveTypeCreditNote MoveType = "out_refund"
)

// MoveState is the posting state of an invoice.
type MoveState string

const (
	MoveStateDraft  MoveState = "draft"
	MoveStatePosted MoveState = "posted"
	MoveStateCancel MoveState = "cancel"
)

// Invoice mirrors the host system's customer invoice rows.
type Invoice struct {
	ID             snowflake.ID      `gorm:"primaryKey"`
	CompanyID      snowflake.ID      `gorm:"not null;index"`
	CustomerID     snowflake.ID      `gorm:"not null;index"`
	MoveType       MoveType          `gorm:"type:text;not null"`
	State          MoveState         `gorm:"type:text;not null;default:'draft'"`
	AmountTotal    float64           `gorm:"not null;default:0"`
	AmountResidual float64           `gorm:"not null;default:0"`
	InvoiceDate    *time.Time        `gorm:""`
	DueDate        *time.Time        `gorm:""`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// Exposure holds the aggregated open amounts for one commercial customer.
// All fields are guaranteed non-negative.
type Exposure struct {
	Outstanding      float64 `json:"outstanding"`
	Overdue          float64 `json:"overdue"`
	CreditOpen       float64 `json:"credit_open"`
	NetExposure      float64 `json:"net_exposure"`
	OverdueEffective float64 `json:"overdue_effective"`
}

// UtilizationPct is net exposure as a percentage of the credit limit,
// or 0 when no limit is set.
func (e Exposure) UtilizationPct(creditLimit float64) float64 {
	if creditLimit == 0 {
		return 0
	}
	return e.NetExposure / creditLimit * 100.0
}

// OverdueRatio is overdue-net-of-credits over outstanding, or 0 when there is
// nothing outstanding.
func (e Exposure) OverdueRatio() float64 {
	if e.Outstanding <= 0 {
		return 0
	}
	return e.OverdueEffective / e.Outstanding
}
