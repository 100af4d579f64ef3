package memory

import (
	"context"
	"encoding/json"
	"testing"
)

func TestStore_SaveLoadIsolated(t *testing.T) {
	ctx := context.Background()
	s := New()

	records, err := s.Load(ctx, "users")
	if err != nil || len(records) != 0 {
		t.Fatalf("expected empty collection, got %v (%v)", records, err)
	}

	in := []json.RawMessage{json.RawMessage(`{"id":1,"email":"a@example.com"}`)}
	if err := s.Save(ctx, "users", in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in[0] = json.RawMessage(`{"id":99}`)

	out, err := s.Load(ctx, "users")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var got struct{ ID int }
	if err := json.Unmarshal(out[0], &got); err != nil || got.ID != 1 {
		t.Fatalf("expected stored record to be unaffected by caller mutation, got %s", out[0])
	}

	if roles, _ := s.Load(ctx, "roles"); len(roles) != 0 {
		t.Fatalf("expected collections to be independent, got %v", roles)
	}
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Load(ctx, "users"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
