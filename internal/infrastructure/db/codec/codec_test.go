package codec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

func TestDecodeRecords_EmptyForms(t *testing.T) {
	for _, in := range []string{"", "  \n", "null", "[]"} {
		records, err := DecodeRecords([]byte(in))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if records == nil || len(records) != 0 {
			t.Fatalf("%q: expected empty non-nil slice, got %v", in, records)
		}
	}
}

func TestDecodeRecords_Corrupt(t *testing.T) {
	for _, in := range []string{"{", `{"id":1}`, `[1, 2]`, `[{"id":1}, "x"]`} {
		if _, err := DecodeRecords([]byte(in)); !errors.Is(err, domain.ErrCorruptData) {
			t.Fatalf("%q: expected ErrCorruptData, got %v", in, err)
		}
	}
}

func TestEncodeRecords(t *testing.T) {
	data, err := EncodeRecords(nil)
	if err != nil || string(data) != "[]" {
		t.Fatalf("expected [] for nil, got %q (%v)", data, err)
	}

	data, err = EncodeRecords([]json.RawMessage{json.RawMessage(`{"id":1}`)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, err := DecodeRecords(data)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected one record back, got %v (%v)", records, err)
	}

	if _, err := EncodeRecords([]json.RawMessage{json.RawMessage(`42`)}); !errors.Is(err, domain.ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData for a non-object, got %v", err)
	}
}
