package snapshot

import (
	"github.com/pvlabs/riskwatch/internal/snapshot/repository"
	"github.com/pvlabs/riskwatch/internal/snapshot/service"
	"go.uber.org/fx"
)

var Module = fx.Module("snapshot.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
