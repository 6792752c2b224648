package exposure

import (
	"github.com/pvlabs/riskwatch/internal/exposure/repository"
	"github.com/pvlabs/riskwatch/internal/exposure/service"
	"go.uber.org/fx"
)

var Module = fx.Module("exposure.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
