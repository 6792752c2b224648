package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/pvlabs/riskwatch/internal/activity/domain"
	"github.com/pvlabs/riskwatch/internal/clock"
	"github.com/pvlabs/riskwatch/internal/companyctx"
	"github.com/pvlabs/riskwatch/internal/customer/domain"
	exposuredomain "github.com/pvlabs/riskwatch/internal/exposure/domain"
	"github.com/pvlabs/riskwatch/internal/risk"
	riskconfigdomain "github.com/pvlabs/riskwatch/internal/riskconfig/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Repo        domain.Repository
	ConfigSvc   riskconfigdomain.Service
	ExposureSvc exposuredomain.Service
	ActivitySvc activitydomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	repo        domain.Repository
	configSvc   riskconfigdomain.Service
	exposureSvc exposuredomain.Service
	activitySvc activitydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("customer.service"),
		clock:       p.Clock,
		repo:        p.Repo,
		configSvc:   p.ConfigSvc,
		exposureSvc: p.ExposureSvc,
		activitySvc: p.ActivitySvc,
	}
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCustomerRequest) (domain.Customer, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok || companyID == 0 {
		return domain.Customer{}, domain.ErrInvalidCompany
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, companyID, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) LiveRisk(ctx context.Context, req domain.LiveRiskRequest) (domain.RiskSnapshot, error) {
	customer, err := s.GetByID(ctx, domain.GetCustomerRequest{ID: req.CustomerID})
	if err != nil {
		return domain.RiskSnapshot{}, err
	}

	settings := s.configSvc.Resolve(ctx)
	return s.Evaluate(ctx, customer, settings)
}

func (s *Service) Evaluate(ctx context.Context, customer domain.Customer, settings riskconfigdomain.Settings) (domain.RiskSnapshot, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok || companyID == 0 {
		return domain.RiskSnapshot{}, domain.ErrInvalidCompany
	}

	commercialID := customer.CommercialCustomerID
	if commercialID == 0 {
		commercialID = customer.ID
	}

	now := s.clock.Now()

	exp, err := s.exposureSvc.Aggregate(ctx, companyID, commercialID, now)
	if err != nil {
		return domain.RiskSnapshot{}, err
	}

	orders, err := s.activitySvc.CountOrders(ctx, companyID, commercialID, settings.WindowDays, now)
	if err != nil {
		return domain.RiskSnapshot{}, err
	}

	creditLimit := s.creditLimitFor(ctx, customer, commercialID, settings)
	utilPct := exp.UtilizationPct(creditLimit)
	overdueRatio := exp.OverdueRatio()

	scored := risk.Score(risk.Input{
		CreditUtilPct:  utilPct,
		OverdueRatio:   overdueRatio,
		OrdersInWindow: orders,
	}, risk.Thresholds{Low: settings.LowThreshold, High: settings.HighThreshold})

	return domain.RiskSnapshot{
		CommercialCustomerID: commercialID,
		Outstanding:          exp.Outstanding,
		CreditOpen:           exp.CreditOpen,
		Overdue:              exp.Overdue,
		CreditLimit:          creditLimit,
		CreditUtilPct:        utilPct,
		OverdueRatio:         overdueRatio,
		OrdersInWindow:       orders,
		WindowDays:           settings.WindowDays,
		Score:                scored.Score,
		Level:                scored.Level,
		LastRecomputed:       now,
	}, nil
}

// creditLimitFor prefers the commercial customer's own limit and falls back
// to the company default when none is set.
func (s *Service) creditLimitFor(ctx context.Context, customer domain.Customer, commercialID snowflake.ID, settings riskconfigdomain.Settings) float64 {
	if customer.ID == commercialID {
		if customer.CreditLimit > 0 {
			return customer.CreditLimit
		}
		return settings.DefaultCreditLimit
	}

	companyID, _ := companyctx.CompanyIDFromContext(ctx)
	commercial, err := s.repo.FindByID(ctx, s.db, companyID, commercialID)
	if err != nil || commercial == nil {
		s.log.Warn("commercial customer lookup failed, using default credit limit",
			zap.String("commercial_customer_id", commercialID.String()),
			zap.Error(err),
		)
		return settings.DefaultCreditLimit
	}
	if commercial.CreditLimit > 0 {
		return commercial.CreditLimit
	}
	return settings.DefaultCreditLimit
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
