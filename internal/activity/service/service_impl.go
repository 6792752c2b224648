package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/internal/activity/domain"
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
		log:  p.Log.Named("activity.service"),
		repo: p.Repo,
	}
}

func (s *Service) CountOrders(ctx context.Context, companyID, commercialCustomerID snowflake.ID, windowDays int, now time.Time) (int, error) {
	from := now.Add(-time.Duration(windowDays) * 24 * time.Hour)
	count, err := s.repo.CountInWindow(ctx, s.db, companyID, commercialCustomerID, from)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
