package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/ueplot/internal/ir"
)

// marshalDocument serializes a document to canonical JSON per RFC 8785,
// so the stored body hashes to the document's ID.
func marshalDocument(doc ir.Document) (string, error) {
	data, err := ir.MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return string(data), nil
}

// unmarshalDocument deserializes a stored document body.
func unmarshalDocument(body string) (ir.Document, error) {
	var doc ir.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return ir.Document{}, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}
