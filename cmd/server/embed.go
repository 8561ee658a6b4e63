package main

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
)

//go:embed sql
var embeddedSQLFS embed.FS

// sqlFiles reads the embedded database setup queries, table definitions before functions.
func sqlFiles(fsys fs.FS) ([]io.Reader, error) {
	fileNames := []string{
		"sql/players.sql",
		"sql/player_update_points_increment.sql",
	}
	files := make([]io.Reader, len(fileNames))
	for i, n := range fileNames {
		f, err := fsys.Open(n)
		if err != nil {
			return nil, fmt.Errorf("opening setup query %v: %w", n, err)
		}
		files[i] = f
	}
	return files, nil
}
