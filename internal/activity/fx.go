package activity

import (
	"github.com/pvlabs/riskwatch/internal/activity/repository"
	"github.com/pvlabs/riskwatch/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
