// Package mcp exposes a live capture session to MCP clients over stdio.
// The server owns one Controller for its lifetime; tools feed it raw
// input from either mode and read the session buffer back out.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kwray/tagwell/internal/config"
	"github.com/kwray/tagwell/internal/session"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"tag_scan": {
		def:     scanToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleScan },
	},
	"tag_notify": {
		def:     notifyToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleNotify },
	},
	"tag_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"tag_status": {
		def:     statusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStatus },
	},
	"tag_pause": {
		def:     pauseToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePause },
	},
	"tag_resume": {
		def:     resumeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleResume },
	},
	"tag_clear": {
		def:     clearToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClear },
	},
	"tag_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server over the given capture session.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(ctrl *session.Controller, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"tagwell",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(ctrl, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts an MCP server over a fresh capture session using stdio
// transport. The session lives exactly as long as the server process.
func Run(cfg *config.Config, version string) error {
	ctrl := session.NewController(cfg.SessionOptions())
	s := NewServer(ctrl, cfg, version)
	return server.ServeStdio(s)
}
