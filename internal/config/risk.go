package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// RiskDefaults are the system-wide scoring parameters used when a company has
// no stored override. Canonical defaults follow the settings surface:
// 90 day window, low 20, high 60.
type RiskDefaults struct {
	WindowDays           int     `mapstructure:"windowDays"`
	LowThreshold         int     `mapstructure:"lowThreshold"`
	HighThreshold        int     `mapstructure:"highThreshold"`
	WeightCredit         int     `mapstructure:"weightCredit"`
	WeightOverdue        int     `mapstructure:"weightOverdue"`
	WeightActivity       int     `mapstructure:"weightActivity"`
	TargetOrdersInWindow int     `mapstructure:"targetOrdersInWindow"`
	WarnOnQuote          bool    `mapstructure:"warnOnQuote"`
	BlockOnHighRisk      bool    `mapstructure:"blockOnHighRisk"`
	DefaultCreditLimit   float64 `mapstructure:"defaultCreditLimit"`
}

func DefaultRiskDefaults() RiskDefaults {
	return RiskDefaults{
		WindowDays:           90,
		LowThreshold:         20,
		HighThreshold:        60,
		WeightCredit:         40,
		WeightOverdue:        50,
		WeightActivity:       10,
		TargetOrdersInWindow: 1,
		WarnOnQuote:          true,
		BlockOnHighRisk:      false,
		DefaultCreditLimit:   0,
	}
}

type RiskDefaultsHolder struct {
	current atomic.Value // holds RiskDefaults
}

func NewRiskDefaultsHolder() (*RiskDefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("risk")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/riskwatch/config") // Volume-mounted config
	v.AddConfigPath("/etc/riskwatch")            // System config
	v.AddConfigPath(".")                         // Current directory (dev mode)

	v.SetEnvPrefix("RISKWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultRiskDefaults()
	v.SetDefault("risk.windowDays", defaults.WindowDays)
	v.SetDefault("risk.lowThreshold", defaults.LowThreshold)
	v.SetDefault("risk.highThreshold", defaults.HighThreshold)
	v.SetDefault("risk.weightCredit", defaults.WeightCredit)
	v.SetDefault("risk.weightOverdue", defaults.WeightOverdue)
	v.SetDefault("risk.weightActivity", defaults.WeightActivity)
	v.SetDefault("risk.targetOrdersInWindow", defaults.TargetOrdersInWindow)
	v.SetDefault("risk.warnOnQuote", defaults.WarnOnQuote)
	v.SetDefault("risk.blockOnHighRisk", defaults.BlockOnHighRisk)
	v.SetDefault("risk.defaultCreditLimit", defaults.DefaultCreditLimit)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg RiskDefaults
	if err := v.UnmarshalKey("risk", &cfg); err != nil {
		return nil, err
	}
	if err := validateRiskDefaults(cfg); err != nil {
		return nil, err
	}

	holder := &RiskDefaultsHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated RiskDefaults
		if err := v.UnmarshalKey("risk", &updated); err != nil {
			log.Printf("[risk-config] reload failed: %v", err)
			return
		}
		if err := validateRiskDefaults(updated); err != nil {
			log.Printf("[risk-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[risk-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticRiskDefaults wraps fixed defaults without any config file lookup.
func NewStaticRiskDefaults(d RiskDefaults) *RiskDefaultsHolder {
	holder := &RiskDefaultsHolder{}
	holder.current.Store(d)
	return holder
}

func (h *RiskDefaultsHolder) Get() RiskDefaults {
	return h.current.Load().(RiskDefaults)
}

func validateRiskDefaults(cfg RiskDefaults) error {
	if cfg.WindowDays < 1 {
		return errors.New("risk.windowDays must be at least 1")
	}
	if cfg.LowThreshold < 0 || cfg.HighThreshold < 0 {
		return errors.New("risk thresholds must be >= 0")
	}
	if cfg.HighThreshold < cfg.LowThreshold {
		return errors.New("risk.highThreshold must be >= risk.lowThreshold")
	}
	if cfg.TargetOrdersInWindow < 0 {
		return errors.New("risk.targetOrdersInWindow must be >= 0")
	}
	return nil
}
