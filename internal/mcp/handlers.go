package mcp

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kwray/tagwell/internal/config"
	"github.com/kwray/tagwell/internal/errors"
	"github.com/kwray/tagwell/internal/export"
	"github.com/kwray/tagwell/internal/notify"
	"github.com/kwray/tagwell/internal/session"
	"github.com/kwray/tagwell/internal/tag"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	ctrl   *session.Controller
	cfg    *config.Config
	parser notify.Parser
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(ctrl *session.Controller, cfg *config.Config) *Handlers {
	return &Handlers{ctrl: ctrl, cfg: cfg, parser: cfg.Parser()}
}

// Request types for each tool

// ScanRequest represents the arguments for tag_scan.
type ScanRequest struct {
	Line string `json:"line"`
}

// NotifyRequest represents the arguments for tag_notify.
type NotifyRequest struct {
	Payload string `json:"payload"`
	RSSI    *int   `json:"rssi,omitempty"`
}

// ExportRequest represents the arguments for tag_export.
type ExportRequest struct {
	CSVPath     string `json:"csv_path,omitempty"`
	ArchivePath string `json:"archive_path,omitempty"`
}

// Response types

// SubmitResult reports the outcome of feeding one candidate.
type SubmitResult struct {
	Inserted   bool   `json:"inserted"`
	Identifier string `json:"identifier,omitempty"`
	Count      int    `json:"count"`
}

// RecordItem is one session buffer entry.
type RecordItem struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	RSSI       *int   `json:"rssi,omitempty"`
	CapturedAt string `json:"captured_at"`
}

// StatusResult reports gate and buffer state.
type StatusResult struct {
	Capturing  bool `json:"capturing"`
	Count      int  `json:"count"`
	MaxRecords int  `json:"max_records"`
	Dedup      bool `json:"dedup"`
}

// Handler implementations

// HandleScan handles the tag_scan tool call.
func (h *Handlers) HandleScan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ScanRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	inserted, err := h.ctrl.Submit(input.Line, nil)
	if err != nil {
		return errorResult(errors.NewInternal(err)), nil
	}

	return successResult(SubmitResult{
		Inserted:   inserted,
		Identifier: tag.Normalize(input.Line),
		Count:      h.ctrl.Count(),
	})
}

// HandleNotify handles the tag_notify tool call.
func (h *Handlers) HandleNotify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[NotifyRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	payload, err := hex.DecodeString(strings.TrimSpace(input.Payload))
	if err != nil {
		return errorResult(errors.NewInvalidRequest("payload must be a hex string")), nil
	}

	identifier, ok := h.parser.Parse(payload)
	if !ok {
		// No candidate in this payload: not an error, nothing inserted.
		return successResult(SubmitResult{Count: h.ctrl.Count()})
	}

	inserted, err := h.ctrl.Submit(identifier, input.RSSI)
	if err != nil {
		return errorResult(errors.NewInternal(err)), nil
	}

	return successResult(SubmitResult{
		Inserted:   inserted,
		Identifier: identifier,
		Count:      h.ctrl.Count(),
	})
}

// HandleList handles the tag_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := h.ctrl.Snapshot()
	items := make([]RecordItem, len(snap))
	for i, rec := range snap {
		items[i] = RecordItem{
			ID:         rec.ID,
			Identifier: rec.Identifier,
			RSSI:       rec.RSSI,
			CapturedAt: rec.CapturedAt.Format(time.RFC3339Nano),
		}
	}

	return successResult(map[string]any{
		"count":   len(items),
		"records": items,
	})
}

// HandleStatus handles the tag_status tool call.
func (h *Handlers) HandleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(StatusResult{
		Capturing:  h.ctrl.Capturing(),
		Count:      h.ctrl.Count(),
		MaxRecords: h.cfg.MaxRecords,
		Dedup:      !h.cfg.AllowDuplicates,
	})
}

// HandlePause handles the tag_pause tool call.
func (h *Handlers) HandlePause(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.ctrl.Pause()
	return successResult(map[string]any{"capturing": false})
}

// HandleResume handles the tag_resume tool call.
func (h *Handlers) HandleResume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.ctrl.Resume()
	return successResult(map[string]any{"capturing": true})
}

// HandleClear handles the tag_clear tool call.
func (h *Handlers) HandleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	removed := h.ctrl.Count()
	h.ctrl.Clear()
	return successResult(map[string]any{"removed": removed, "count": 0})
}

// HandleExport handles the tag_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.CSVPath == "" && input.ArchivePath == "" {
		return errorResult(errors.NewInvalidRequest("provide csv_path and/or archive_path")), nil
	}

	snap := h.ctrl.Snapshot()
	result := map[string]any{"count": len(snap)}

	if input.CSVPath != "" {
		if err := export.WriteCSVFile(input.CSVPath, snap); err != nil {
			return errorResult(err), nil
		}
		result["csv_path"] = input.CSVPath
	}
	if input.ArchivePath != "" {
		archived, err := export.Archive(input.ArchivePath, snap)
		if err != nil {
			return errorResult(err), nil
		}
		result["archive_path"] = input.ArchivePath
		result["archived"] = archived
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if tErr, ok := err.(*errors.TagwellError); ok {
		errorObj := map[string]any{
			"code":    tErr.Code,
			"message": tErr.Message,
			"status":  tErr.Status,
		}
		if tErr.Code != errors.ErrInternal && tErr.Details != nil {
			errorObj["details"] = tErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
