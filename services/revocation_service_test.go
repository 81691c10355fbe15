package services

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Revoke(ctx, "live", now.Add(time.Hour)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := store.Revoke(ctx, "stale", now.Add(-time.Minute)); err != nil {
		t.Fatalf("revoke stale: %v", err)
	}

	revoked, err := store.IsRevoked(ctx, "live")
	if err != nil || !revoked {
		t.Fatalf("expected live token to be revoked, got %v %v", revoked, err)
	}
	revoked, _ = store.IsRevoked(ctx, "stale")
	if revoked {
		t.Fatalf("already expired token should not be tracked")
	}
	revoked, _ = store.IsRevoked(ctx, "unknown")
	if revoked {
		t.Fatalf("unknown token reported revoked")
	}

	now = now.Add(2 * time.Hour)
	revoked, _ = store.IsRevoked(ctx, "live")
	if revoked {
		t.Fatalf("revocation should lapse once the token expired")
	}
}
