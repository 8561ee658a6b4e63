// Package postgres stores player points on a Postgres SQL database.
package postgres

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/jacobpatterson1549/cross-tiles/db/sql"
)

type (
	// PlayerBackend manages player points on a Postgres SQL database.
	PlayerBackend struct {
		Database
	}

	// Database contains methods to create, read, update, and delete data.
	Database interface {
		// Setup initializes the database by reading the files.
		Setup(ctx context.Context, files []io.Reader) error
		// Query reads from the database without updating it.
		Query(ctx context.Context, q sql.Query, dest ...interface{}) error
		// Exec makes a change to existing data, creating/modifying/removing it.
		Exec(ctx context.Context, queries ...sql.Query) error
	}
)

// UpdatePointsIncrement changes the points for all of the named players.
// The queries are run in name order so concurrent updates cannot deadlock.
func (pb *PlayerBackend) UpdatePointsIncrement(ctx context.Context, playerPoints map[string]int) error {
	queries := make([]sql.Query, 0, len(playerPoints))
	for playerName, points := range playerPoints {
		queries = append(queries, sql.NewExecFunction("player_update_points_increment", playerName, points))
	}
	sort.Slice(queries, func(i, j int) bool {
		return queries[i].Args()[0].(string) < queries[j].Args()[0].(string)
	})
	if err := pb.Database.Exec(ctx, queries...); err != nil {
		return fmt.Errorf("incrementing player points: %w", err)
	}
	return nil
}
