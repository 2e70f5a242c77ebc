package main

import (
	"github.com/monsterhunt/gameserver/config"
	"github.com/monsterhunt/gameserver/logger"
	"github.com/monsterhunt/gameserver/monitor"
	"github.com/monsterhunt/gameserver/persistence"
	"github.com/monsterhunt/gameserver/server"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Log.File)
	defer logger.Sync()

	var store persistence.Store
	gormStore, err := persistence.NewGormStore(
		cfg.Database.Postgres.Host,
		cfg.Database.Postgres.Port,
		cfg.Database.Postgres.User,
		cfg.Database.Postgres.Password,
		cfg.Database.Postgres.DBName,
	)
	if err != nil {
		// Matches still run without persistence; stats and match history
		// are simply not recorded.
		logger.Log.Warnf("Database unavailable, running without persistence: %v", err)
	} else {
		logger.Log.Info("Database connection successful.")
		store = gormStore
		defer gormStore.Close()
	}

	monitor.StartServer(cfg.Server.MetricsAddress)

	gameServer := server.NewGameServer(cfg.Server.HTTPAddress, cfg.Server.RPCAddress, store, cfg.Game.RoomInboxSize)

	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
