package player

import "context"

// mockBackend implements the Backend interface.
type mockBackend struct {
	UpdatePointsIncrementFunc func(ctx context.Context, playerPoints map[string]int) error
}

func (m mockBackend) UpdatePointsIncrement(ctx context.Context, playerPoints map[string]int) error {
	return m.UpdatePointsIncrementFunc(ctx, playerPoints)
}
