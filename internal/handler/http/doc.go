// Package http implements the loopback REST API of the vault daemon.
//
// It exposes route wiring, request handlers, and middleware. Request
// tracing, access logging, panic recovery, and unlock rate limiting are
// handled here before requests are delegated to the service layer.
// Passwords received in request bodies are wiped once the handler returns.
package http
