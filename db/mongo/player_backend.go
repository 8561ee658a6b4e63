// Package mongo stores player points on a mongodb database.
package mongo

import (
	"context"
	"fmt"

	"github.com/jacobpatterson1549/cross-tiles/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName   = "cross-tiles-db"
	collectionName = "players"
	nameField      = "name"
	pointsField    = "points"
)

// PlayerBackend manages player points on a players collection.
type PlayerBackend struct {
	Players *mongo.Collection
	db.Config
}

// NewPlayerBackend connects to the database and creates a backend for the players collection.
func NewPlayerBackend(ctx context.Context, cfg db.Config, databaseURL string) (*PlayerBackend, error) {
	clientOptions := options.Client()
	clientOptions.ApplyURI(databaseURL)
	ctx, cancelFunc := context.WithTimeout(ctx, cfg.QueryPeriod)
	defer cancelFunc()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	database := client.Database(databaseName)
	players := database.Collection(collectionName)
	pb := PlayerBackend{
		Players: players,
		Config:  cfg,
	}
	return &pb, nil
}

// Setup creates a unique index on the player name.
func (pb *PlayerBackend) Setup(ctx context.Context) error {
	indexOptions := options.Index()
	indexOptions.SetUnique(true)
	document := d(e(nameField, 1))
	model := mongo.IndexModel{
		Keys:    document,
		Options: indexOptions,
	}
	indexes := pb.Players.Indexes()
	ctx, cancelFunc := context.WithTimeout(ctx, pb.QueryPeriod)
	defer cancelFunc()
	if _, err := indexes.CreateOne(ctx, model); err != nil {
		return fmt.Errorf("creating unique player name index: %w", err)
	}
	return nil
}

// UpdatePointsIncrement changes the points for all of the named players, creating documents for new players.
func (pb *PlayerBackend) UpdatePointsIncrement(ctx context.Context, playerPoints map[string]int) error {
	writeModels := make([]mongo.WriteModel, 0, len(playerPoints))
	for playerName, points := range playerPoints {
		filter := d(e(nameField, playerName))
		update := d(e("$inc", d(e(pointsField, points))))
		m := mongo.NewUpdateOneModel()
		m.SetFilter(filter)
		m.SetUpdate(update)
		m.SetUpsert(true)
		writeModels = append(writeModels, m)
	}
	ctx, cancelFunc := context.WithTimeout(ctx, pb.QueryPeriod)
	defer cancelFunc()
	if _, err := pb.Players.BulkWrite(ctx, writeModels); err != nil {
		return fmt.Errorf("incrementing player points: %w", err)
	}
	return nil
}

// d is a helper function to create bson.D documents.
func d(e ...bson.E) bson.D {
	return bson.D(e)
}

// e is a helper function to create bson.E elements.
func e(key string, value interface{}) bson.E {
	return bson.E{Key: key, Value: value}
}
