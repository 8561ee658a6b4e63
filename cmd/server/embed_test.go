package main

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"
)

func TestSQLFiles(t *testing.T) {
	files, err := sqlFiles(embeddedSQLFS)
	if err != nil {
		t.Fatalf("reading embedded sql files: %v", err)
	}
	if want, got := 2, len(files); want != got {
		t.Fatalf("wanted %v setup files, got %v", want, got)
	}
	// the table must be created before the function that updates it
	first, err := io.ReadAll(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(first), "CREATE TABLE") {
		t.Errorf("wanted table definition first, got:\n%s", first)
	}
}

func TestSQLFilesMissing(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/players.sql": &fstest.MapFile{Data: []byte("CREATE TABLE players")},
	}
	if _, err := sqlFiles(fsys); err == nil {
		t.Error("wanted error when a setup file is missing")
	}
}
