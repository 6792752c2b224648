package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/internal/companyctx"
	"github.com/pvlabs/riskwatch/internal/config"
	"github.com/pvlabs/riskwatch/internal/riskconfig/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Defaults *config.RiskDefaultsHolder
	Repo     domain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	defaults *config.RiskDefaultsHolder
	repo     domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("riskconfig.service"),
		genID:    p.GenID,
		defaults: p.Defaults,
		repo:     p.Repo,
	}
}

// Resolve reads the company parameters once and returns a fully populated
// Settings value. Malformed stored values fall back to the defaults instead
// of failing, so a bad row can never break scoring.
func (s *Service) Resolve(ctx context.Context) domain.Settings {
	settings := s.defaultSettings()

	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok || companyID == 0 {
		return settings
	}

	params, err := s.repo.FindByCompany(ctx, s.db, companyID)
	if err != nil {
		s.log.Warn("settings lookup failed, using defaults",
			zap.String("company_id", companyID.String()),
			zap.Error(err),
		)
		return settings
	}

	for _, p := range params {
		s.apply(&settings, p.Key, p.Value)
	}
	return settings
}

func (s *Service) Save(ctx context.Context, settings domain.Settings) error {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok || companyID == 0 {
		return domain.ErrInvalidCompany
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	values := map[string]string{
		domain.KeyWindowDays:           strconv.Itoa(settings.WindowDays),
		domain.KeyLowThreshold:         strconv.Itoa(settings.LowThreshold),
		domain.KeyHighThreshold:        strconv.Itoa(settings.HighThreshold),
		domain.KeyWeightCredit:         strconv.Itoa(settings.WeightCredit),
		domain.KeyWeightOverdue:        strconv.Itoa(settings.WeightOverdue),
		domain.KeyWeightActivity:       strconv.Itoa(settings.WeightActivity),
		domain.KeyTargetOrdersInWindow: strconv.Itoa(settings.TargetOrdersInWindow),
		domain.KeyWarnOnQuote:          strconv.FormatBool(settings.WarnOnQuote),
		domain.KeyBlockOnHighRisk:      strconv.FormatBool(settings.BlockOnHighRisk),
		domain.KeyDefaultCreditLimit:   strconv.FormatFloat(settings.DefaultCreditLimit, 'f', -1, 64),
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			param := domain.Parameter{
				ID:        s.genID.Generate(),
				CompanyID: companyID,
				Key:       key,
				Value:     value,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.repo.Upsert(ctx, tx, &param); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) defaultSettings() domain.Settings {
	d := s.defaults.Get()
	return domain.Settings{
		WindowDays:           d.WindowDays,
		LowThreshold:         d.LowThreshold,
		HighThreshold:        d.HighThreshold,
		WeightCredit:         d.WeightCredit,
		WeightOverdue:        d.WeightOverdue,
		WeightActivity:       d.WeightActivity,
		TargetOrdersInWindow: d.TargetOrdersInWindow,
		WarnOnQuote:          d.WarnOnQuote,
		BlockOnHighRisk:      d.BlockOnHighRisk,
		DefaultCreditLimit:   d.DefaultCreditLimit,
	}
}

func (s *Service) apply(settings *domain.Settings, key, value string) {
	value = strings.TrimSpace(value)
	switch key {
	case domain.KeyWindowDays:
		if v, err := strconv.Atoi(value); err == nil && v >= 1 {
			settings.WindowDays = v
		}
	case domain.KeyLowThreshold:
		if v, err := strconv.Atoi(value); err == nil && v >= 0 {
			settings.LowThreshold = v
		}
	case domain.KeyHighThreshold:
		if v, err := strconv.Atoi(value); err == nil && v >= 0 {
			settings.HighThreshold = v
		}
	case domain.KeyWeightCredit:
		if v, err := strconv.Atoi(value); err == nil && v >= 0 {
			settings.WeightCredit = v
		}
	case domain.KeyWeightOverdue:
		if v, err := strconv.Atoi(value); err == nil && v >= 0 {
			settings.WeightOverdue = v
		}
	case domain.KeyWeightActivity:
		if v, err := strconv.Atoi(value); err == nil && v >= 0 {
			settings.WeightActivity = v
		}
	case domain.KeyTargetOrdersInWindow:
		if v, err := strconv.Atoi(value); err == nil && v >= 0 {
			settings.TargetOrdersInWindow = v
		}
	case domain.KeyWarnOnQuote:
		if v, err := strconv.ParseBool(value); err == nil {
			settings.WarnOnQuote = v
		}
	case domain.KeyBlockOnHighRisk:
		if v, err := strconv.ParseBool(value); err == nil {
			settings.BlockOnHighRisk = v
		}
	case domain.KeyDefaultCreditLimit:
		if v, err := strconv.ParseFloat(value, 64); err == nil && v >= 0 {
			settings.DefaultCreditLimit = v
		}
	}
}
