package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainDocument = "ueplot/document/v1"
	DomainConfig   = "ueplot/config/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentID returns the content-addressed identity of a document.
// Two documents with the same canonical JSON share an ID regardless of key
// order or whitespace in their source files.
func DocumentID(doc Document) (string, error) {
	if doc.Version == "" {
		doc.Version = IRVersion
	}
	data, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("document id: %w", err)
	}
	return hashWithDomain(DomainDocument, data), nil
}

// ConfigHash returns the content hash of any configuration value. It is
// recorded with each run so runs with identical settings can be grouped.
func ConfigHash(cfg any) (string, error) {
	data, err := MarshalCanonical(cfg)
	if err != nil {
		return "", fmt.Errorf("config hash: %w", err)
	}
	return hashWithDomain(DomainConfig, data), nil
}
