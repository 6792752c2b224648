package migration

import (
	activitydomain "github.com/pvlabs/riskwatch/internal/activity/domain"
	"github.com/pvlabs/riskwatch/internal/config"
	customerdomain "github.com/pvlabs/riskwatch/internal/customer/domain"
	exposuredomain "github.com/pvlabs/riskwatch/internal/exposure/domain"
	riskconfigdomain "github.com/pvlabs/riskwatch/internal/riskconfig/domain"
	snapshotdomain "github.com/pvlabs/riskwatch/internal/snapshot/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// Dev/test databases get the schema from the models directly.
			return conn.AutoMigrate(
				&customerdomain.Customer{},
				&exposuredomain.Invoice{},
				&activitydomain.SalesOrder{},
				&riskconfigdomain.Parameter{},
				&snapshotdomain.DebtorKPI{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
