package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	activitydomain "github.com/pvlabs/riskwatch/internal/activity/domain"
	activityrepo "github.com/pvlabs/riskwatch/internal/activity/repository"
	activityservice "github.com/pvlabs/riskwatch/internal/activity/service"
	"github.com/pvlabs/riskwatch/internal/clock"
	"github.com/pvlabs/riskwatch/internal/companyctx"
	"github.com/pvlabs/riskwatch/internal/config"
	"github.com/pvlabs/riskwatch/internal/customer/domain"
	customerrepo "github.com/pvlabs/riskwatch/internal/customer/repository"
	exposuredomain "github.com/pvlabs/riskwatch/internal/exposure/domain"
	exposurerepo "github.com/pvlabs/riskwatch/internal/exposure/repository"
	exposureservice "github.com/pvlabs/riskwatch/internal/exposure/service"
	"github.com/pvlabs/riskwatch/internal/risk"
	riskconfigdomain "github.com/pvlabs/riskwatch/internal/riskconfig/domain"
	riskconfigrepo "github.com/pvlabs/riskwatch/internal/riskconfig/repository"
	riskconfigservice "github.com/pvlabs/riskwatch/internal/riskconfig/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
	svc   domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Customer{},
		&exposuredomain.Invoice{},
		&activitydomain.SalesOrder{},
		&riskconfigdomain.Parameter{},
	))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	logger := zap.NewNop()
	fakeClock := clock.NewFakeClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	configSvc := riskconfigservice.New(riskconfigservice.Params{
		DB:       db,
		Log:      logger,
		GenID:    node,
		Defaults: config.NewStaticRiskDefaults(config.DefaultRiskDefaults()),
		Repo:     riskconfigrepo.Provide(),
	})
	exposureSvc := exposureservice.New(exposureservice.Params{
		DB:   db,
		Log:  logger,
		Repo: exposurerepo.Provide(),
	})
	activitySvc := activityservice.New(activityservice.Params{
		DB:   db,
		Log:  logger,
		Repo: activityrepo.Provide(),
	})

	svc := New(Params{
		DB:          db,
		Log:         logger,
		Clock:       fakeClock,
		Repo:        customerrepo.Provide(),
		ConfigSvc:   configSvc,
		ExposureSvc: exposureSvc,
		ActivitySvc: activitySvc,
	})

	return &fixture{db: db, node: node, clock: fakeClock, svc: svc}
}

func (f *fixture) newCompany() (context.Context, snowflake.ID) {
	companyID := f.node.Generate()
	return companyctx.WithCompanyID(context.Background(), int64(companyID)), companyID
}

func (f *fixture) seedCommercial(t *testing.T, companyID snowflake.ID, creditLimit float64) domain.Customer {
	t.Helper()
	customer := domain.Customer{
		ID:           f.node.Generate(),
		CompanyID:    companyID,
		Name:         "Acme Industries",
		CreditLimit:  creditLimit,
		CustomerRank: 1,
	}
	customer.CommercialCustomerID = customer.ID
	require.NoError(t, f.db.Create(&customer).Error)
	return customer
}

func (f *fixture) seedInvoice(t *testing.T, companyID, customerID snowflake.ID, moveType exposuredomain.MoveType, residual float64, due *time.Time) {
	t.Helper()
	require.NoError(t, f.db.Create(&exposuredomain.Invoice{
		ID:             f.node.Generate(),
		CompanyID:      companyID,
		CustomerID:     customerID,
		MoveType:       moveType,
		State:          exposuredomain.MoveStatePosted,
		AmountResidual: residual,
		DueDate:        due,
	}).Error)
}

// One posted invoice of 1000, past due, credit limit 2000, no credit notes
// and no orders: 50% utilization (+20), full overdue ratio (+50), score 70.
func TestLiveRiskOverdueInvoice(t *testing.T) {
	f := newFixture(t)
	ctx, companyID := f.newCompany()
	customer := f.seedCommercial(t, companyID, 2000)

	// Thresholds 30/70 for this company.
	require.NoError(t, f.db.Create(&riskconfigdomain.Parameter{
		ID: f.node.Generate(), CompanyID: companyID, Key: riskconfigdomain.KeyLowThreshold, Value: "30",
	}).Error)
	require.NoError(t, f.db.Create(&riskconfigdomain.Parameter{
		ID: f.node.Generate(), CompanyID: companyID, Key: riskconfigdomain.KeyHighThreshold, Value: "70",
	}).Error)

	due := f.clock.Now().AddDate(0, 0, -30)
	f.seedInvoice(t, companyID, customer.ID, exposuredomain.MoveTypeInvoice, 1000, &due)

	snap, err := f.svc.LiveRisk(ctx, domain.LiveRiskRequest{CustomerID: customer.ID.String()})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, snap.Outstanding)
	assert.Equal(t, 1000.0, snap.Overdue)
	assert.Equal(t, 2000.0, snap.CreditLimit)
	assert.Equal(t, 50.0, snap.CreditUtilPct)
	assert.Equal(t, 1.0, snap.OverdueRatio)
	assert.Equal(t, 0, snap.OrdersInWindow)
	assert.Equal(t, 70, snap.Score)
	assert.Equal(t, risk.LevelHigh, snap.Level)
	assert.Equal(t, f.clock.Now(), snap.LastRecomputed)
}

// Same invoice fully offset by an open credit note residual of 1000: net
// exposure and effective overdue collapse to zero, score 0, level low.
func TestLiveRiskCreditNoteOffset(t *testing.T) {
	f := newFixture(t)
	ctx, companyID := f.newCompany()
	customer := f.seedCommercial(t, companyID, 2000)

	due := f.clock.Now().AddDate(0, 0, -30)
	f.seedInvoice(t, companyID, customer.ID, exposuredomain.MoveTypeInvoice, 1000, &due)
	f.seedInvoice(t, companyID, customer.ID, exposuredomain.MoveTypeCreditNote, 1000, nil)

	snap, err := f.svc.LiveRisk(ctx, domain.LiveRiskRequest{CustomerID: customer.ID.String()})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, snap.Outstanding)
	assert.Equal(t, 1000.0, snap.CreditOpen)
	assert.Equal(t, 0.0, snap.CreditUtilPct)
	assert.Equal(t, 0.0, snap.OverdueRatio)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, risk.LevelLow, snap.Level)
}

func TestLiveRiskNoCreditLimit(t *testing.T) {
	f := newFixture(t)
	ctx, companyID := f.newCompany()
	customer := f.seedCommercial(t, companyID, 0)

	due := f.clock.Now().AddDate(0, 0, -30)
	f.seedInvoice(t, companyID, customer.ID, exposuredomain.MoveTypeInvoice, 1000, &due)

	snap, err := f.svc.LiveRisk(ctx, domain.LiveRiskRequest{CustomerID: customer.ID.String()})
	require.NoError(t, err)

	assert.Equal(t, 0.0, snap.CreditUtilPct)
	assert.Equal(t, 1.0, snap.OverdueRatio)
}

func TestLiveRiskNoOutstanding(t *testing.T) {
	f := newFixture(t)
	ctx, companyID := f.newCompany()
	customer := f.seedCommercial(t, companyID, 5000)

	snap, err := f.svc.LiveRisk(ctx, domain.LiveRiskRequest{CustomerID: customer.ID.String()})
	require.NoError(t, err)

	assert.Equal(t, 0.0, snap.Outstanding)
	assert.Equal(t, 0.0, snap.OverdueRatio)
	assert.Equal(t, 0.0, snap.CreditUtilPct)
	assert.Equal(t, risk.LevelLow, snap.Level)
}

func TestLiveRiskCountsOrdersInWindow(t *testing.T) {
	f := newFixture(t)
	ctx, companyID := f.newCompany()
	customer := f.seedCommercial(t, companyID, 0)

	now := f.clock.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, f.db.Create(&activitydomain.SalesOrder{
			ID:         f.node.Generate(),
			CompanyID:  companyID,
			CustomerID: customer.ID,
			Name:       "SO",
			State:      activitydomain.OrderStateSale,
			OrderDate:  now.AddDate(0, 0, -10),
		}).Error)
	}
	// Outside the window and wrong state: ignored.
	require.NoError(t, f.db.Create(&activitydomain.SalesOrder{
		ID:         f.node.Generate(),
		CompanyID:  companyID,
		CustomerID: customer.ID,
		Name:       "SO-old",
		State:      activitydomain.OrderStateSale,
		OrderDate:  now.AddDate(0, 0, -120),
	}).Error)
	require.NoError(t, f.db.Create(&activitydomain.SalesOrder{
		ID:         f.node.Generate(),
		CompanyID:  companyID,
		CustomerID: customer.ID,
		Name:       "SO-draft",
		State:      activitydomain.OrderStateDraft,
		OrderDate:  now.AddDate(0, 0, -1),
	}).Error)

	snap, err := f.svc.LiveRisk(ctx, domain.LiveRiskRequest{CustomerID: customer.ID.String()})
	require.NoError(t, err)

	assert.Equal(t, 5, snap.OrdersInWindow)
	assert.Equal(t, 90, snap.WindowDays)
	assert.Equal(t, 10, snap.Score)
}

func TestLiveRiskUnknownCustomer(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.newCompany()

	_, err := f.svc.LiveRisk(ctx, domain.LiveRiskRequest{CustomerID: f.node.Generate().String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
