package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/internal/clock"
	"github.com/pvlabs/riskwatch/internal/companyctx"
	customerdomain "github.com/pvlabs/riskwatch/internal/customer/domain"
	obsmetrics "github.com/pvlabs/riskwatch/internal/observability/metrics"
	riskconfigdomain "github.com/pvlabs/riskwatch/internal/riskconfig/domain"
	"github.com/pvlabs/riskwatch/internal/snapshot/domain"
	"github.com/pvlabs/riskwatch/pkg/db"
	"github.com/pvlabs/riskwatch/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	CustomerSvc customerdomain.Service
	ConfigSvc   riskconfigdomain.Service
	Customers   customerdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	customerSvc customerdomain.Service
	configSvc   riskconfigdomain.Service
	customers   customerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("snapshot.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		customerSvc: p.CustomerSvc,
		configSvc:   p.ConfigSvc,
		customers:   p.Customers,
	}
}

// Refresh recomputes and upserts one KPI row per commercial customer.
// Settings are resolved once for the whole pass. A customer that fails is
// logged and counted; the rest of the batch still commits.
func (s *Service) Refresh(ctx context.Context, req domain.RefreshRequest) (domain.RefreshReport, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok || companyID == 0 {
		return domain.RefreshReport{}, domain.ErrInvalidCompany
	}

	settings := s.configSvc.Resolve(ctx)

	targets, err := s.resolveTargets(ctx, companyID, req.CustomerIDs)
	if err != nil {
		return domain.RefreshReport{}, err
	}

	var report domain.RefreshReport
	for _, customer := range targets {
		if err := s.refreshOne(ctx, companyID, customer, settings); err != nil {
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, customer.ID.String())
			obsmetrics.IncRefreshCustomer("failed")
			s.log.Error("snapshot refresh failed for customer",
				zap.String("company_id", companyID.String()),
				zap.String("customer_id", customer.ID.String()),
				zap.Error(err),
			)
			continue
		}
		report.Refreshed++
		obsmetrics.IncRefreshCustomer("ok")
	}

	s.log.Info("snapshot refresh finished",
		zap.String("company_id", companyID.String()),
		zap.Int("refreshed", report.Refreshed),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *Service) refreshOne(ctx context.Context, companyID snowflake.ID, customer customerdomain.Customer, settings riskconfigdomain.Settings) error {
	snap, err := s.customerSvc.Evaluate(ctx, customer, settings)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	row := domain.DebtorKPI{
		CompanyID:            companyID,
		CommercialCustomerID: snap.CommercialCustomerID,
		Outstanding:          snap.Outstanding,
		CreditOpen:           snap.CreditOpen,
		Overdue:              snap.Overdue,
		CreditLimit:          snap.CreditLimit,
		CreditUtilPct:        snap.CreditUtilPct,
		OverdueRatio:         snap.OverdueRatio,
		OrdersInWindow:       snap.OrdersInWindow,
		RiskScore:            snap.Score,
		RiskLevel:            snap.Level,
		LastUpdated:          s.clock.Now(),
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.upsert(ctx, tx, &row)
	})
}

// upsert keeps the (company, customer) pair unique. A create losing a race
// against a concurrent refresh surfaces as a duplicate key and is retried as
// an update of the winner's row.
func (s *Service) upsert(ctx context.Context, tx *gorm.DB, row *domain.DebtorKPI) error {
	existing, err := s.repo.FindByPair(ctx, tx, row.CompanyID, row.CommercialCustomerID)
	if err != nil {
		return fmt.Errorf("snapshot lookup: %w", err)
	}
	if existing != nil {
		row.ID = existing.ID
		return s.repo.UpdateByPair(ctx, tx, row)
	}

	row.ID = s.genID.Generate()
	if err := s.repo.Create(ctx, tx, row); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return s.repo.UpdateByPair(ctx, tx, row)
		}
		return fmt.Errorf("snapshot create: %w", err)
	}
	return nil
}

func (s *Service) resolveTargets(ctx context.Context, companyID snowflake.ID, ids []string) ([]customerdomain.Customer, error) {
	if len(ids) == 0 {
		return s.customers.ListCommercial(ctx, s.db, companyID)
	}

	seen := make(map[snowflake.ID]struct{}, len(ids))
	targets := make([]customerdomain.Customer, 0, len(ids))
	for _, raw := range ids {
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidID
		}
		customer, err := s.customers.FindByID(ctx, s.db, companyID, id)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, customerdomain.ErrNotFound
		}
		if _, dup := seen[customer.CommercialCustomerID]; dup {
			continue
		}
		seen[customer.CommercialCustomerID] = struct{}{}
		targets = append(targets, *customer)
	}
	return targets, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok || companyID == 0 {
		return domain.ListResponse{}, domain.ErrInvalidCompany
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, companyID, domain.ListFilter{RiskLevel: req.RiskLevel}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(row *domain.DebtorKPI) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: row.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	snapshots := make([]domain.DebtorKPI, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		snapshots = append(snapshots, *item)
	}

	resp := domain.ListResponse{Snapshots: snapshots}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}
