// Package schedule is the boundary to the blind-schedule/timer
// subsystem. The bank engine only consumes its lock signal: once the
// schedule generator locks a running tournament, the hosting UI stops
// offering structural edits. The engine surfaces the flag and never
// interprets it.
package schedule

import "context"

// Client exposes the schedule lock signal.
type Client interface {
	IsLocked(ctx context.Context) (bool, error)
}

// StaticClient reports a fixed lock state. The standalone binary uses
// it when no schedule generator is attached.
type StaticClient struct {
	Locked bool
}

// NewStaticClient creates a StaticClient with the given lock state.
func NewStaticClient(locked bool) *StaticClient {
	return &StaticClient{Locked: locked}
}

// IsLocked implements Client.
func (c *StaticClient) IsLocked(ctx context.Context) (bool, error) {
	return c.Locked, nil
}
