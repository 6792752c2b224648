package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/pvlabs/riskwatch/internal/companyctx"
	"github.com/pvlabs/riskwatch/internal/config"
	"github.com/pvlabs/riskwatch/internal/riskconfig/domain"
	"github.com/pvlabs/riskwatch/internal/riskconfig/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Parameter{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Defaults: config.NewStaticRiskDefaults(config.DefaultRiskDefaults()),
		Repo:     repository.Provide(),
	})
	return svc, db, node
}

func companyContext(node *snowflake.Node) (context.Context, snowflake.ID) {
	companyID := node.Generate()
	return companyctx.WithCompanyID(context.Background(), int64(companyID)), companyID
}

func TestResolveReturnsDefaultsWithoutOverrides(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := companyContext(node)

	settings := svc.Resolve(ctx)

	assert.Equal(t, 90, settings.WindowDays)
	assert.Equal(t, 20, settings.LowThreshold)
	assert.Equal(t, 60, settings.HighThreshold)
	assert.Equal(t, 40, settings.WeightCredit)
	assert.Equal(t, 50, settings.WeightOverdue)
	assert.Equal(t, 10, settings.WeightActivity)
	assert.True(t, settings.WarnOnQuote)
	assert.False(t, settings.BlockOnHighRisk)
	assert.Equal(t, 0.0, settings.DefaultCreditLimit)
}

func TestResolveIgnoresMalformedValues(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx, companyID := companyContext(node)

	rows := []domain.Parameter{
		{ID: node.Generate(), CompanyID: companyID, Key: domain.KeyWindowDays, Value: "not-a-number"},
		{ID: node.Generate(), CompanyID: companyID, Key: domain.KeyLowThreshold, Value: "-5"},
		{ID: node.Generate(), CompanyID: companyID, Key: domain.KeyHighThreshold, Value: "75"},
		{ID: node.Generate(), CompanyID: companyID, Key: domain.KeyWarnOnQuote, Value: "banana"},
		{ID: node.Generate(), CompanyID: companyID, Key: "unknown_key", Value: "whatever"},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	settings := svc.Resolve(ctx)

	// Malformed values fall back, the valid one applies.
	assert.Equal(t, 90, settings.WindowDays)
	assert.Equal(t, 20, settings.LowThreshold)
	assert.Equal(t, 75, settings.HighThreshold)
	assert.True(t, settings.WarnOnQuote)
}

func TestSaveRoundTrip(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := companyContext(node)

	want := domain.Settings{
		WindowDays:           120,
		LowThreshold:         30,
		HighThreshold:        70,
		WeightCredit:         40,
		WeightOverdue:        50,
		WeightActivity:       10,
		TargetOrdersInWindow: 2,
		WarnOnQuote:          false,
		BlockOnHighRisk:      true,
		DefaultCreditLimit:   2500,
	}
	require.NoError(t, svc.Save(ctx, want))

	got := svc.Resolve(ctx)
	assert.Equal(t, want, got)

	// Saving again overwrites rather than duplicating.
	want.HighThreshold = 80
	require.NoError(t, svc.Save(ctx, want))
	assert.Equal(t, 80, svc.Resolve(ctx).HighThreshold)
}

func TestSaveRejectsInvalidSettings(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := companyContext(node)

	base := domain.Settings{WindowDays: 90, LowThreshold: 20, HighThreshold: 60, WeightCredit: 40, WeightOverdue: 50, WeightActivity: 10}

	cases := []struct {
		name   string
		mutate func(*domain.Settings)
		field  string
	}{
		{"window below one day", func(s *domain.Settings) { s.WindowDays = 0 }, "window_days"},
		{"negative low threshold", func(s *domain.Settings) { s.LowThreshold = -1 }, "low_threshold"},
		{"high below low", func(s *domain.Settings) { s.LowThreshold = 50; s.HighThreshold = 40 }, "high_threshold"},
		{"negative target", func(s *domain.Settings) { s.TargetOrdersInWindow = -1 }, "target_orders_in_window"},
		{"negative weight", func(s *domain.Settings) { s.WeightOverdue = -10 }, "weights"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := base
			tc.mutate(&settings)

			err := svc.Save(ctx, settings)
			require.Error(t, err)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			found := false
			for _, f := range vErr.Fields {
				if f.Field == tc.field {
					found = true
				}
			}
			assert.True(t, found, "expected field %s in %v", tc.field, vErr.Fields)
		})
	}
}

func TestSaveRequiresCompany(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.Save(context.Background(), domain.Settings{WindowDays: 90})
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
}
