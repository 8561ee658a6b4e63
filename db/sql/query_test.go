package sql

import (
	"reflect"
	"testing"
)

func TestQueryFunction(t *testing.T) {
	q := NewQueryFunction("player_read", []string{"name", "points"}, "alice")
	wantCmd := "SELECT name, points FROM player_read($1)"
	wantArgs := []interface{}{"alice"}
	switch {
	case q.Cmd() != wantCmd:
		t.Errorf("wanted cmd %q, got %q", wantCmd, q.Cmd())
	case !reflect.DeepEqual(q.Args(), wantArgs):
		t.Errorf("wanted args %v, got %v", wantArgs, q.Args())
	}
}

func TestExecFunction(t *testing.T) {
	e := NewExecFunction("player_update_points_increment", "alice", 18)
	wantCmd := "SELECT player_update_points_increment($1, $2)"
	wantArgs := []interface{}{"alice", 18}
	switch {
	case e.Cmd() != wantCmd:
		t.Errorf("wanted cmd %q, got %q", wantCmd, e.Cmd())
	case !reflect.DeepEqual(e.Args(), wantArgs):
		t.Errorf("wanted args %v, got %v", wantArgs, e.Args())
	}
}

func TestRawQuery(t *testing.T) {
	r := RawQuery("CREATE TABLE players ( name VARCHAR(32) PRIMARY KEY, points INT )")
	switch {
	case r.Cmd() != string(r):
		t.Errorf("wanted cmd to be the raw query, got %q", r.Cmd())
	case r.Args() != nil:
		t.Errorf("wanted no args, got %v", r.Args())
	}
}
