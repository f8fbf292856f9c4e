package ir

// Version constants for the document schema and the tool.
const (
	// IRVersion is the document schema version.
	IRVersion = "1"

	// ToolVersion is the ueplot version recorded with every run.
	ToolVersion = "0.1.0"
)
