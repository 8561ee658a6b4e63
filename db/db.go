// Package db stores player attributes so they survive server restarts.
package db

import "time"

// Config contains properties shared by database backends.
type Config struct {
	// QueryPeriod is the amount of time that any database request can take before it is cancelled.
	QueryPeriod time.Duration
}
