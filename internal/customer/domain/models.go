// Package domain contains the customer read model and the live risk snapshot.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/internal/risk"
	"gorm.io/datatypes"
)

// Customer mirrors the host system's customer rows. Child contacts carry the
// commercial entity they roll up to; a commercial customer points at itself.
type Customer struct {
	ID                   snowflake.ID      `gorm:"primaryKey"`
	CompanyID            snowflake.ID      `gorm:"not null;index"`
	CommercialCustomerID snowflake.ID      `gorm:"not null;index"`
	Name                 string            `gorm:"type:text;not null"`
	Email                string            `gorm:"type:text"`
	CreditLimit          float64           `gorm:"not null;default:0"`
	CustomerRank         int               `gorm:"not null;default:0"`
	Metadata             datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt            time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// RiskSnapshot is the live, on-demand computed risk view of one commercial
// customer. It is never persisted; the snapshot table has its own row type.
type RiskSnapshot struct {
	CommercialCustomerID snowflake.ID `json:"commercial_customer_id"`
	Outstanding          float64      `json:"outstanding"`
	CreditOpen           float64      `json:"credit_open"`
	Overdue              float64      `json:"overdue"`
	CreditLimit          float64      `json:"credit_limit"`
	CreditUtilPct        float64      `json:"credit_util_pct"`
	OverdueRatio         float64      `json:"overdue_ratio"`
	OrdersInWindow       int          `json:"orders_in_window"`
	WindowDays           int          `json:"window_days"`
	Score                int          `json:"risk_score"`
	Level                risk.Level   `json:"risk_level"`
	LastRecomputed       time.Time    `json:"last_recomputed"`
}
