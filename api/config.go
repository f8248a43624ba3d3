// Package api provides an HTTP API server for browsing a corpus and planning
// reading paths through it.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8082")
	ListenAddr string

	// NoMCP disables the MCP endpoint at /mcp.
	NoMCP bool
}
