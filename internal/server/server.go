package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pvlabs/riskwatch/internal/activity"
	"github.com/pvlabs/riskwatch/internal/config"
	"github.com/pvlabs/riskwatch/internal/customer"
	customerdomain "github.com/pvlabs/riskwatch/internal/customer/domain"
	"github.com/pvlabs/riskwatch/internal/exposure"
	"github.com/pvlabs/riskwatch/internal/orderguard"
	"github.com/pvlabs/riskwatch/internal/riskconfig"
	riskconfigdomain "github.com/pvlabs/riskwatch/internal/riskconfig/domain"
	"github.com/pvlabs/riskwatch/internal/snapshot"
	snapshotdomain "github.com/pvlabs/riskwatch/internal/snapshot/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	riskconfig.Module,
	exposure.Module,
	activity.Module,
	customer.Module,
	snapshot.Module,
	orderguard.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(Run),
)

func NewEngine(cfg config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CorrelationMiddleware())
	r.Use(RequestLogMiddleware(logger))
	r.Use(CompanyMiddleware(cfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	customerSvc customerdomain.Service
	snapshotSvc snapshotdomain.Service
	configSvc   riskconfigdomain.Service
	guardSvc    orderguard.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	CustomerSvc customerdomain.Service
	SnapshotSvc snapshotdomain.Service
	ConfigSvc   riskconfigdomain.Service
	GuardSvc    orderguard.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("server"),
		customerSvc: p.CustomerSvc,
		snapshotSvc: p.SnapshotSvc,
		configSvc:   p.ConfigSvc,
		guardSvc:    p.GuardSvc,
	}
}

func RegisterRoutes(s *Server) {
	v1 := s.engine.Group("/v1")

	v1.GET("/customers/:id/risk", s.GetCustomerRisk)

	v1.GET("/debtor-kpis", s.ListDebtorKPIs)
	v1.POST("/debtor-kpis/refresh", s.RefreshDebtorKPIs)

	v1.GET("/risk-settings", s.GetRiskSettings)
	v1.PUT("/risk-settings", s.PutRiskSettings)

	v1.GET("/orders/quote-advisory", s.GetQuoteAdvisory)
	v1.POST("/orders/confirm", s.ConfirmOrders)
}

func Run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
