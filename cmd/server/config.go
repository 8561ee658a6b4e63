package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/jacobpatterson1549/cross-tiles/db"
	"github.com/jacobpatterson1549/cross-tiles/db/firestore"
	"github.com/jacobpatterson1549/cross-tiles/db/mongo"
	"github.com/jacobpatterson1549/cross-tiles/db/player"
	sqldb "github.com/jacobpatterson1549/cross-tiles/db/sql"
	"github.com/jacobpatterson1549/cross-tiles/db/sql/postgres"
	"github.com/jacobpatterson1549/cross-tiles/game/tile"
	"github.com/jacobpatterson1549/cross-tiles/game/word"
	"github.com/jacobpatterson1549/cross-tiles/server"
	gamecontroller "github.com/jacobpatterson1549/cross-tiles/server/game"
)

const dbQueryPeriod = 5 * time.Second

// playerBackend creates the points store named by the data source uri.
// An empty uri runs the server without persistence.
func playerBackend(ctx context.Context, m mainFlags) (player.Backend, error) {
	dbCfg := db.Config{
		QueryPeriod: dbQueryPeriod,
	}
	switch {
	case len(m.databaseURL) == 0:
		return player.NoDatabaseBackend{}, nil
	case strings.HasPrefix(m.databaseURL, "postgres://"):
		return postgresBackend(ctx, dbCfg, m.databaseURL)
	case strings.HasPrefix(m.databaseURL, "mongodb://"), strings.HasPrefix(m.databaseURL, "mongodb+srv://"):
		backend, err := mongo.NewPlayerBackend(ctx, dbCfg, m.databaseURL)
		if err != nil {
			return nil, err
		}
		if err := backend.Setup(ctx); err != nil {
			return nil, fmt.Errorf("setting up mongodb backend: %w", err)
		}
		return backend, nil
	case strings.HasPrefix(m.databaseURL, "firestore:"):
		projectID := strings.TrimPrefix(m.databaseURL, "firestore:")
		return firestore.NewPlayerBackend(ctx, dbCfg, projectID)
	}
	return nil, fmt.Errorf("unknown data source uri: %v", m.databaseURL)
}

// postgresBackend opens the postgres database, runs the setup queries, and wraps it as a points store.
func postgresBackend(ctx context.Context, dbCfg db.Config, databaseURL string) (player.Backend, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}
	d := sqldb.Database{
		DB:     sqlDB,
		Config: dbCfg,
	}
	files, err := sqlFiles(embeddedSQLFS)
	if err != nil {
		return nil, err
	}
	if err := d.Setup(ctx, files); err != nil {
		return nil, fmt.Errorf("setting up postgres database: %w", err)
	}
	backend := postgres.PlayerBackend{
		Database: d,
	}
	return &backend, nil
}

// gameConfig creates the base configuration for the game engine.
func gameConfig(m mainFlags, log *log.Logger, dao *player.Dao) (*gamecontroller.Config, error) {
	wordsFile, err := os.Open(m.wordsFile)
	if err != nil {
		return nil, fmt.Errorf("trying to open words file: %w", err)
	}
	defer wordsFile.Close()
	wordValidator, err := word.NewValidator(wordsFile)
	if err != nil {
		return nil, fmt.Errorf("reading words file: %w", err)
	}
	shuffleTilesFunc := func(tiles []tile.Tile) {
		rand.Shuffle(len(tiles), func(i, j int) {
			tiles[i], tiles[j] = tiles[j], tiles[i]
		})
	}
	startingPlayerFunc := func(numPlayers int) int {
		return rand.Intn(numPlayers)
	}
	cfg := gamecontroller.Config{
		Debug:              m.debugGame,
		Log:                log,
		WordValidator:      wordValidator,
		PlayerDao:          dao,
		ShuffleTilesFunc:   shuffleTilesFunc,
		StartingPlayerFunc: startingPlayerFunc,
	}
	return &cfg, nil
}

// serverConfig creates the server configuration.
func serverConfig(m mainFlags) server.Config {
	cfg := server.Config{
		BindAddr: m.bindAddr,
		TCPPort:  m.tcpPort,
		HTTPPort: m.httpPort,
		StopDur:  5 * time.Second,
	}
	return cfg
}
