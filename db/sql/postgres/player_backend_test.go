package postgres

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/jacobpatterson1549/cross-tiles/db/sql"
)

func TestUpdatePointsIncrement(t *testing.T) {
	var gotQueries []sql.Query
	pb := PlayerBackend{
		Database: mockDatabase{
			ExecFunc: func(ctx context.Context, queries ...sql.Query) error {
				gotQueries = queries
				return nil
			},
		},
	}
	playerPoints := map[string]int{
		"carl":  -4,
		"alice": 21,
		"bert":  7,
	}
	if err := pb.UpdatePointsIncrement(context.Background(), playerPoints); err != nil {
		t.Fatalf("incrementing points: %v", err)
	}
	// map iteration order is random, so the backend must sort by player name
	wantArgs := [][]interface{}{
		{"alice", 21},
		{"bert", 7},
		{"carl", -4},
	}
	if len(gotQueries) != len(wantArgs) {
		t.Fatalf("wanted %v queries, got %v", len(wantArgs), len(gotQueries))
	}
	wantCmd := "SELECT player_update_points_increment($1, $2)"
	for i, q := range gotQueries {
		switch {
		case q.Cmd() != wantCmd:
			t.Errorf("query %v: wanted cmd %q, got %q", i, wantCmd, q.Cmd())
		case !reflect.DeepEqual(q.Args(), wantArgs[i]):
			t.Errorf("query %v: wanted args %v, got %v", i, wantArgs[i], q.Args())
		}
	}
}

func TestUpdatePointsIncrementError(t *testing.T) {
	pb := PlayerBackend{
		Database: mockDatabase{
			ExecFunc: func(ctx context.Context, queries ...sql.Query) error {
				return fmt.Errorf("connection reset")
			},
		},
	}
	if err := pb.UpdatePointsIncrement(context.Background(), map[string]int{"alice": 3}); err == nil {
		t.Error("wanted error when the database exec fails")
	}
}
