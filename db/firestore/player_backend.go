// Package firestore stores player points on a google cloud firestore database.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/jacobpatterson1549/cross-tiles/db"
)

const pointsField = "points"

// PlayerBackend manages player points on a players collection.
type PlayerBackend struct {
	client *firestore.Client
	db.Config
}

func (pb *PlayerBackend) playersCollection() *firestore.CollectionRef {
	return pb.client.Collection("services").Doc("cross-tiles").Collection("players")
}

// NewPlayerBackend creates a backend for the players collection.
func NewPlayerBackend(ctx context.Context, cfg db.Config, projectID string) (*PlayerBackend, error) {
	pb := PlayerBackend{
		Config: cfg,
	}
	client, err := firestore.NewClient(ctx, projectID) // do not timeout the context, the client is long-lived
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	pb.client = client
	return &pb, nil
}

// withTimeoutContext configures the context to timeout when running the function.
func (pb *PlayerBackend) withTimeoutContext(ctx context.Context, f func(ctx context.Context) error) error {
	ctx, cancelFunc := context.WithTimeout(ctx, pb.QueryPeriod)
	defer cancelFunc()
	return f(ctx)
}

// UpdatePointsIncrement changes the points for all of the named players in a single batch.
func (pb *PlayerBackend) UpdatePointsIncrement(ctx context.Context, playerPoints map[string]int) error {
	if err := pb.withTimeoutContext(ctx, func(ctx context.Context) error {
		players := pb.playersCollection()
		b := pb.client.Batch()
		for playerName, points := range playerPoints {
			d := players.Doc(playerName)
			u := []firestore.Update{
				{
					Path:  pointsField,
					Value: firestore.FieldTransformIncrement(points),
				},
			}
			b.Update(d, u)
		}
		_, err := b.Commit(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("incrementing player points: %w", err)
	}
	return nil
}
