// Package endpoint provides the operational HTTP endpoints: /health and
// /info.
package endpoint
