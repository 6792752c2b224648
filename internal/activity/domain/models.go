// Package domain contains the sales order read model used by the activity
// counter and the order guard. Orders are owned by the host sales system.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// OrderState is the sales order lifecycle state.
type OrderState string

const (
	OrderStateDraft  OrderState = "draft"
	OrderStateSent   OrderState = "sent"
	OrderStateSale   OrderState = "sale"
	OrderStateDone   OrderState = "done"
	OrderStateCancel OrderState = "cancel"
)

// SalesOrder mirrors the host system's sales order rows.
type SalesOrder struct {
	ID          snowflake.ID      `gorm:"primaryKey"`
	CompanyID   snowflake.ID      `gorm:"not null;index"`
	CustomerID  snowflake.ID      `gorm:"not null;index"`
	Name        string            `gorm:"type:text;not null"`
	State       OrderState        `gorm:"type:text;not null;default:'draft'"`
	OrderDate   time.Time         `gorm:"not null"`
	AmountTotal float64           `gorm:"not null;default:0"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SalesOrder) TableName() string { return "sales_orders" }
