// Package main starts the server after configuring it from supplied or standard arguments.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacobpatterson1549/cross-tiles/db/player"
	"github.com/jacobpatterson1549/cross-tiles/server"
	gamecontroller "github.com/jacobpatterson1549/cross-tiles/server/game"
	_ "github.com/lib/pq" // register "postgres" database driver from package init() function
)

// main configures and runs the server.
func main() {
	ctx := context.Background()
	logFlags := log.Ldate | log.Ltime | log.LUTC | log.Lshortfile | log.Lmsgprefix
	log := log.New(os.Stdout, "", logFlags)
	m := newMainFlags(os.Args, os.LookupEnv)
	backend, err := playerBackend(ctx, m)
	if err != nil {
		log.Fatalf("setting up database: %v", err)
	}
	dao, err := player.NewDao(backend)
	if err != nil {
		log.Fatalf("creating player dao: %v", err)
	}
	gameCfg, err := gameConfig(m, log, dao)
	if err != nil {
		log.Fatalf("creating game config: %v", err)
	}
	game, err := gamecontroller.New(*gameCfg)
	if err != nil {
		log.Fatalf("creating game: %v", err)
	}
	server, err := serverConfig(m).NewServer(log, game)
	if err != nil {
		log.Fatalf("creating server: %v", err)
	}
	if err := runServer(ctx, server, log); err != nil {
		log.Fatalf("running server: %v", err)
	}
	log.Println("server run stopped successfully")
}

// runServer runs the server until it errors, is interrupted, or is terminated.
func runServer(ctx context.Context, server *server.Server, log *log.Logger) error {
	done := make(chan os.Signal, 2)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	errC, err := server.Run(ctx)
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	select { // BLOCKING
	case err := <-errC:
		log.Printf("server stopped unexpectedly: %v", err)
	case signal := <-done:
		log.Printf("handled signal: %v", signal)
	}
	if err := server.Stop(ctx); err != nil {
		return fmt.Errorf("stopping server: %v", err)
	}
	return nil
}
