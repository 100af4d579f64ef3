// Package codec converts between a stored collection payload (a JSON array of
// objects) and the individual records handed to repositories.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

// DecodeRecords parses a stored collection. Blank input is an empty collection.
func DecodeRecords(data []byte) ([]json.RawMessage, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []json.RawMessage{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptData, err)
	}
	if records == nil {
		// a literal null
		return []json.RawMessage{}, nil
	}
	for i, r := range records {
		if !isObject(r) {
			return nil, fmt.Errorf("%w: record %d is not an object", domain.ErrCorruptData, i)
		}
	}
	return records, nil
}

// EncodeRecords renders records as an indented JSON array.
func EncodeRecords(records []json.RawMessage) ([]byte, error) {
	if records == nil {
		records = []json.RawMessage{}
	}
	for i, r := range records {
		if !isObject(r) {
			return nil, fmt.Errorf("%w: record %d is not an object", domain.ErrCorruptData, i)
		}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptData, err)
	}
	return data, nil
}

func isObject(r json.RawMessage) bool {
	trimmed := bytes.TrimSpace(r)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
