package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. One per registry entry in server.go.

var scanToolDef = mcp.NewTool("tag_scan",
	mcp.WithDescription("Feed one wedge-mode scan line into the capture session. The line is normalized, gated, and deduplicated like any other candidate."),
	mcp.WithString("line",
		mcp.Required(),
		mcp.Description("Raw scan line as typed by the reader, delimiter excluded"),
	),
)

var notifyToolDef = mcp.NewTool("tag_notify",
	mcp.WithDescription("Feed one notification-mode payload into the capture session. The payload is scanned for the marker byte and the identifier field is extracted."),
	mcp.WithString("payload",
		mcp.Required(),
		mcp.Description("Notification payload as a hex string, e.g. '01e2112233445566778899aabbcc'"),
	),
	mcp.WithNumber("rssi",
		mcp.Description("Signal strength in dBm reported alongside the payload, if any"),
	),
)

var listToolDef = mcp.NewTool("tag_list",
	mcp.WithDescription("List the session buffer, newest capture first."),
)

var statusToolDef = mcp.NewTool("tag_status",
	mcp.WithDescription("Report capture gate state, record count, and session limits."),
)

var pauseToolDef = mcp.NewTool("tag_pause",
	mcp.WithDescription("Close the capture gate. Candidates arriving while paused are discarded."),
)

var resumeToolDef = mcp.NewTool("tag_resume",
	mcp.WithDescription("Open the capture gate."),
)

var clearToolDef = mcp.NewTool("tag_clear",
	mcp.WithDescription("Empty the session buffer. Works regardless of gate state."),
)

var exportToolDef = mcp.NewTool("tag_export",
	mcp.WithDescription("Export a snapshot of the session buffer. At least one destination is required; the buffer itself is unaffected."),
	mcp.WithString("csv_path",
		mcp.Description("Write the snapshot as a CSV file at this path"),
	),
	mcp.WithString("archive_path",
		mcp.Description("Append the snapshot to a SQLite archive file at this path"),
	),
)
