package service

import (
	"context"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/internal/exposure/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("exposure.service"),
		repo: p.Repo,
	}
}

func (s *Service) Aggregate(ctx context.Context, companyID, commercialCustomerID snowflake.ID, asOf time.Time) (domain.Exposure, error) {
	invoices, err := s.repo.OpenInvoices(ctx, s.db, companyID, commercialCustomerID)
	if err != nil {
		return domain.Exposure{}, err
	}

	today := truncateToDate(asOf)

	var outstanding, overdue float64
	for _, inv := range invoices {
		outstanding += inv.AmountResidual
		if inv.DueDate != nil && truncateToDate(*inv.DueDate).Before(today) {
			overdue += inv.AmountResidual
		}
	}

	credits, err := s.repo.OpenCreditNotes(ctx, s.db, companyID, commercialCustomerID)
	if err != nil {
		return domain.Exposure{}, err
	}

	// Absolute values keep the offset robust to residual sign conventions.
	var creditOpen float64
	for _, cn := range credits {
		creditOpen += math.Abs(cn.AmountResidual)
	}

	return domain.Exposure{
		Outstanding:      outstanding,
		Overdue:          overdue,
		CreditOpen:       creditOpen,
		NetExposure:      math.Max(0, outstanding-creditOpen),
		OverdueEffective: math.Max(0, overdue-creditOpen),
	}, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
