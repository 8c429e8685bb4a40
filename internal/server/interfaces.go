package server

import (
	"context"
	"net"
)

// Server defines the lifecycle contract of the daemon's API server.
type Server interface {
	// Run binds the configured address and serves until ctx is cancelled,
	// then shuts down gracefully.
	Run(ctx context.Context) error

	// Serve is Run on an already bound listener.
	Serve(ctx context.Context, ln net.Listener) error
}
