// Package orderguard gates sales order confirmation and quote entry on the
// customer's live risk level.
package orderguard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/pvlabs/riskwatch/internal/activity/domain"
	"github.com/pvlabs/riskwatch/internal/companyctx"
	customerdomain "github.com/pvlabs/riskwatch/internal/customer/domain"
	"github.com/pvlabs/riskwatch/internal/risk"
	riskconfigdomain "github.com/pvlabs/riskwatch/internal/riskconfig/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidID      = errors.New("invalid_id")
	ErrOrderNotFound  = errors.New("order_not_found")
)

// maxNamedCustomers caps how many blocked customers the rejection names.
const maxNamedCustomers = 3

// Advisory is the non-blocking quote warning.
type Advisory struct {
	CustomerID string     `json:"customer_id"`
	Level      risk.Level `json:"level"`
	Score      int        `json:"score"`
	Message    string     `json:"message"`
}

// BlockedError rejects a confirmation because at least one customer is high
// risk. It names up to three customers.
type BlockedError struct {
	Customers []string
	Total     int
}

func (e *BlockedError) Error() string {
	names := strings.Join(e.Customers, ", ")
	more := ""
	if e.Total > len(e.Customers) {
		more = fmt.Sprintf(" (+%d more)", e.Total-len(e.Customers))
	}
	return fmt.Sprintf(
		"confirmation blocked: customer risk is high for %s%s. Ask a sales manager to confirm or adjust the risk settings.",
		names, more,
	)
}

type ConfirmRequest struct {
	OrderIDs       []string
	ActorIsManager bool
}

// ConfirmVerdict reports that confirmation may proceed in the host system.
type ConfirmVerdict struct {
	Allowed bool `json:"allowed"`
}

type Service interface {
	// QuoteAdvisory returns a warning when the customer's live risk level is
	// medium or high and the warn-on-quote toggle is enabled; nil otherwise.
	QuoteAdvisory(ctx context.Context, customerID string) (*Advisory, error)
	// CheckConfirm rejects confirmation with a BlockedError when the
	// block-on-high toggle is on, the actor is not a manager and any order's
	// commercial customer is live high risk.
	CheckConfirm(ctx context.Context, req ConfirmRequest) (ConfirmVerdict, error)
}

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	ConfigSvc   riskconfigdomain.Service
	CustomerSvc customerdomain.Service
	Customers   customerdomain.Repository
	Orders      activitydomain.Repository
}

type service struct {
	db          *gorm.DB
	log         *zap.Logger
	configSvc   riskconfigdomain.Service
	customerSvc customerdomain.Service
	customers   customerdomain.Repository
	orders      activitydomain.Repository
}

func New(p Params) Service {
	return &service{
		db:          p.DB,
		log:         p.Log.Named("orderguard.service"),
		configSvc:   p.ConfigSvc,
		customerSvc: p.CustomerSvc,
		customers:   p.Customers,
		orders:      p.Orders,
	}
}

var Module = fx.Module("orderguard.service",
	fx.Provide(New),
)

func (s *service) QuoteAdvisory(ctx context.Context, customerID string) (*Advisory, error) {
	settings := s.configSvc.Resolve(ctx)
	if !settings.WarnOnQuote {
		return nil, nil
	}

	snap, err := s.customerSvc.LiveRisk(ctx, customerdomain.LiveRiskRequest{CustomerID: customerID})
	if err != nil {
		return nil, err
	}
	if snap.Level != risk.LevelMedium && snap.Level != risk.LevelHigh {
		return nil, nil
	}

	return &Advisory{
		CustomerID: customerID,
		Level:      snap.Level,
		Score:      snap.Score,
		Message:    fmt.Sprintf("This customer is %s risk (score: %d).", snap.Level, snap.Score),
	}, nil
}

func (s *service) CheckConfirm(ctx context.Context, req ConfirmRequest) (ConfirmVerdict, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok || companyID == 0 {
		return ConfirmVerdict{}, ErrInvalidCompany
	}

	settings := s.configSvc.Resolve(ctx)
	if !settings.BlockOnHighRisk || req.ActorIsManager {
		return ConfirmVerdict{Allowed: true}, nil
	}

	ids := make([]snowflake.ID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil || id == 0 {
			return ConfirmVerdict{}, ErrInvalidID
		}
		ids = append(ids, id)
	}

	orders, err := s.orders.FindByIDs(ctx, s.db, companyID, ids)
	if err != nil {
		return ConfirmVerdict{}, err
	}
	if len(orders) != len(ids) {
		return ConfirmVerdict{}, ErrOrderNotFound
	}

	var blockedNames []string
	seen := make(map[snowflake.ID]bool)
	for _, order := range orders {
		customer, err := s.customers.FindByID(ctx, s.db, companyID, order.CustomerID)
		if err != nil {
			return ConfirmVerdict{}, err
		}
		if customer == nil {
			return ConfirmVerdict{}, customerdomain.ErrNotFound
		}

		commercialID := customer.CommercialCustomerID
		if commercialID == 0 {
			commercialID = customer.ID
		}
		if seen[commercialID] {
			continue
		}
		seen[commercialID] = true

		snap, err := s.customerSvc.Evaluate(ctx, *customer, settings)
		if err != nil {
			return ConfirmVerdict{}, err
		}
		if snap.Level != risk.LevelHigh {
			continue
		}

		name := customer.Name
		if commercial, err := s.customers.FindByID(ctx, s.db, companyID, commercialID); err == nil && commercial != nil {
			name = commercial.Name
		}
		blockedNames = append(blockedNames, name)
	}

	if len(blockedNames) == 0 {
		return ConfirmVerdict{Allowed: true}, nil
	}

	named := blockedNames
	if len(named) > maxNamedCustomers {
		named = named[:maxNamedCustomers]
	}
	return ConfirmVerdict{}, &BlockedError{Customers: named, Total: len(blockedNames)}
}
