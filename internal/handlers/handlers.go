package handlers

import (
	"github.com/hcoles/tourneybank/internal/services"
	"github.com/hcoles/tourneybank/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Bank   services.BankServicer
	Config services.ConfigServicer
	Hub    *websocket.Hub
	Log    HTTPLogger
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(bank services.BankServicer, config services.ConfigServicer, hub *websocket.Hub, log HTTPLogger) *Handlers {
	return &Handlers{
		Bank:   bank,
		Config: config,
		Hub:    hub,
		Log:    log,
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance without a websocket hub
func NewForTesting(bank services.BankServicer, config services.ConfigServicer) *Handlers {
	return &Handlers{
		Bank:   bank,
		Config: config,
		Log:    NoopHTTPLogger{},
	}
}
