package customer

import (
	"github.com/pvlabs/riskwatch/internal/customer/repository"
	"github.com/pvlabs/riskwatch/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
