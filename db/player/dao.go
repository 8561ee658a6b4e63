// Package player persists the points players accumulate across games.
package player

import (
	"context"
	"fmt"
)

type (
	// Dao records point changes for players on a backend.
	Dao struct {
		backend Backend
	}

	// Backend stores player points.
	Backend interface {
		// UpdatePointsIncrement changes the points for all of the named players by the mapped amounts.
		UpdatePointsIncrement(ctx context.Context, playerPoints map[string]int) error
	}
)

// NewDao creates a Dao on the specified backend.
func NewDao(backend Backend) (*Dao, error) {
	if backend == nil {
		return nil, fmt.Errorf("creating player dao: backend required")
	}
	d := Dao{
		backend: backend,
	}
	return &d, nil
}

// UpdatePointsIncrement changes the points for a single player.
func (d Dao) UpdatePointsIncrement(ctx context.Context, playerName string, points int) error {
	playerPoints := map[string]int{
		playerName: points,
	}
	if err := d.backend.UpdatePointsIncrement(ctx, playerPoints); err != nil {
		return fmt.Errorf("incrementing player points: %w", err)
	}
	return nil
}
