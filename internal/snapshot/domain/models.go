// Package domain contains the persisted debtor KPI snapshot row. This table
// is the only artifact riskwatch owns; everything else is read from the host
// accounting and sales tables.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/internal/risk"
)

// DebtorKPI is one denormalized reporting row per (company, commercial
// customer). Rows are overwritten on refresh, never appended, and never
// auto-deleted.
type DebtorKPI struct {
	ID                   snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID            snowflake.ID `gorm:"not null;index;uniqueIndex:ux_debtor_kpi_company_customer" json:"company_id"`
	CommercialCustomerID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_debtor_kpi_company_customer" json:"commercial_customer_id"`
	Outstanding          float64      `gorm:"not null;default:0" json:"outstanding"`
	CreditOpen           float64      `gorm:"not null;default:0" json:"credit_open"`
	Overdue              float64      `gorm:"not null;default:0" json:"overdue"`
	CreditLimit          float64      `gorm:"not null;default:0" json:"credit_limit"`
	CreditUtilPct        float64      `gorm:"not null;default:0" json:"credit_util_pct"`
	OverdueRatio         float64      `gorm:"not null;default:0" json:"overdue_ratio"`
	OrdersInWindow       int          `gorm:"not null;default:0" json:"orders_in_window"`
	RiskScore            int          `gorm:"not null;default:0" json:"risk_score"`
	RiskLevel            risk.Level   `gorm:"type:text;not null;default:'low'" json:"risk_level"`
	LastUpdated          time.Time    `gorm:"not null" json:"last_updated"`
}

// TableName sets the database table name.
func (DebtorKPI) TableName() string { return "debtor_kpi_snapshots" }
