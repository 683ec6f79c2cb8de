// Package mcp exposes duplicate detection to AI agents over the Model
// Context Protocol, so chat frontends can check for existing complaints
// before filing new ones.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/civicradar/issueradar/internal/corpus"
	"github.com/civicradar/issueradar/internal/matcher"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes issue-matching tools.
type Server struct {
	manager *corpus.Manager
	matcher *matcher.Matcher
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(manager *corpus.Manager, m *matcher.Matcher) *Server {
	s := &Server{
		manager: manager,
		matcher: m,
	}

	s.mcp = server.NewMCPServer(
		"issueradar",
		Version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(findSimilarTool, s.handleFindSimilar)
	s.mcp.AddTool(corpusStatsTool, s.handleCorpusStats)

	return s
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
