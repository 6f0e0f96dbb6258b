// Package server exposes the HTTP surface: the normalized market snapshot,
// raw exchange proxies for the detail view, the chat-analysis endpoint, and
// a WebSocket stream of snapshot refreshes.
package server
