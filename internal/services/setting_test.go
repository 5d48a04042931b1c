package services

import (
	"context"
	"testing"

	"github.com/churchhub/apiserver/internal/store/memory"
)

func TestUpsertIsKeyIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingService(memory.NewSettingRepository())

	first, created, err := svc.Upsert(ctx, "siteName", "A", 1)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !created {
		t.Errorf("first upsert should create")
	}

	second, created, err := svc.Upsert(ctx, "siteName", "B", 2)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if created {
		t.Errorf("second upsert should update, not create")
	}
	if second.ID != first.ID {
		t.Errorf("upsert changed identity: %d -> %d", first.ID, second.ID)
	}

	got, err := svc.GetByKey(ctx, "siteName")
	if err != nil {
		t.Fatalf("get by key: %v", err)
	}
	if got.Value != "B" {
		t.Errorf("expected value B, got %q", got.Value)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected a single record for the key, got %d", len(all))
	}
}
