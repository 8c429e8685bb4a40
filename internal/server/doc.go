// Package server runs the daemon's loopback HTTP API.
//
// It binds the configured address, serves until the run context is
// cancelled (normally by SIGINT, SIGTERM or SIGQUIT) and then shuts the
// listener down gracefully.
package server
