package ir

// Store-layer records. They describe what was archived, not what is
// analyzed, and carry the logical-clock seq used for ordering.

// DocumentRecord describes an archived document. The body itself is read
// back as a Document.
type DocumentRecord struct {
	ID        string `json:"id"` // Content-addressed (DocumentID)
	Name      string `json:"name"`
	IRVersion string `json:"ir_version"`
	Seq       int64  `json:"seq"` // Logical clock
}

// RunRecord summarizes one projection of an archived document. Only counts
// are kept; the unitary event sets are recomputed on demand.
type RunRecord struct {
	ID                     string  `json:"id"` // UUIDv7
	DocumentID             string  `json:"document_id"`
	SignificanceMode       string  `json:"significance_mode"`
	Threshold              float64 `json:"threshold"`
	WindowCount            int     `json:"window_count"`
	SignificantWindowCount int     `json:"significant_window_count"`
	CoincidenceCount       int     `json:"coincidence_count"`
	UnitaryEventCount      int     `json:"unitary_event_count"`
	ConfigHash             string  `json:"config_hash"`
	ToolVersion            string  `json:"tool_version"`
	Seq                    int64   `json:"seq"` // Logical clock
}
