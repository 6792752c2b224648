package riskconfig

import (
	"github.com/pvlabs/riskwatch/internal/riskconfig/repository"
	"github.com/pvlabs/riskwatch/internal/riskconfig/service"
	"go.uber.org/fx"
)

var Module = fx.Module("riskconfig.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
