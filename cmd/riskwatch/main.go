package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/pvlabs/riskwatch/internal/clock"
	"github.com/pvlabs/riskwatch/internal/config"
	"github.com/pvlabs/riskwatch/internal/migration"
	"github.com/pvlabs/riskwatch/internal/scheduler"
	"github.com/pvlabs/riskwatch/internal/server"
	"github.com/pvlabs/riskwatch/pkg/db"
	"github.com/pvlabs/riskwatch/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		server.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
