package schedule

import "context"

// MockClient is a mock schedule client for testing
type MockClient struct {
	locked    bool
	lockedErr error
	calls     int
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithLocked sets the lock state to return
func WithLocked(locked bool) MockOption {
	return func(m *MockClient) {
		m.locked = locked
	}
}

// WithLockedError sets an error to return from IsLocked
func WithLockedError(err error) MockOption {
	return func(m *MockClient) {
		m.lockedErr = err
	}
}

// NewMockClient creates a new mock client
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsLocked implements Client.
func (m *MockClient) IsLocked(ctx context.Context) (bool, error) {
	m.calls++
	if m.lockedErr != nil {
		return false, m.lockedErr
	}
	return m.locked, nil
}

// Calls returns how many times IsLocked was invoked.
func (m *MockClient) Calls() int {
	return m.calls
}
