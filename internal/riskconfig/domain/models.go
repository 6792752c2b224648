// Package domain holds the per-company scoring settings and their storage keys.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Settings are the resolved scoring parameters for one company. Every field
// falls back to the system-wide default when the company has no stored value
// or the stored value does not parse.
type Settings struct {
	WindowDays           int     `json:"window_days"`
	LowThreshold         int     `json:"low_threshold"`
	HighThreshold        int     `json:"high_threshold"`
	WeightCredit         int     `json:"weight_credit"`
	WeightOverdue        int     `json:"weight_overdue"`
	WeightActivity       int     `json:"weight_activity"`
	TargetOrdersInWindow int     `json:"target_orders_in_window"`
	WarnOnQuote          bool    `json:"warn_on_quote"`
	BlockOnHighRisk      bool    `json:"block_on_high_risk"`
	DefaultCreditLimit   float64 `json:"default_credit_limit"`
}

// Parameter keys as stored in the risk_settings table.
const (
	KeyWindowDays           = "window_days"
	KeyLowThreshold         = "low_threshold"
	KeyHighThreshold        = "high_threshold"
	KeyWeightCredit         = "weight_credit"
	KeyWeightOverdue        = "weight_overdue"
	KeyWeightActivity       = "weight_activity"
	KeyTargetOrdersInWindow = "target_orders_in_window"
	KeyWarnOnQuote          = "warn_on_quote"
	KeyBlockOnHighRisk      = "block_on_high_risk"
	KeyDefaultCreditLimit   = "default_credit_limit"
)

// Parameter is one stored setting value. Values are kept as text so unknown
// or malformed entries never break resolution.
type Parameter struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	CompanyID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_risk_settings_company_key"`
	Key       string       `gorm:"type:text;not null;uniqueIndex:ux_risk_settings_company_key"`
	Value     string       `gorm:"type:text;not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Parameter) TableName() string { return "risk_settings" }
