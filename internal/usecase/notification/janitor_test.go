package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/maru-commerce/maru-order-service/internal/domain"
)

func TestRunTokenCleanup(t *testing.T) {
	f := newDispatchFixture()
	f.repo.tokens["owner-1"] = []*domain.PushToken{
		{UserID: "owner-1", Token: "fresh", LastUsedAt: time.Now()},
		{UserID: "owner-1", Token: "stale", LastUsedAt: time.Now().Add(-120 * 24 * time.Hour)},
	}
	f.repo.tokens["owner-2"] = []*domain.PushToken{
		{UserID: "owner-2", Token: "ancient", LastUsedAt: time.Now().Add(-365 * 24 * time.Hour)},
	}

	if err := f.uc.RunTokenCleanup(context.Background()); err != nil {
		t.Fatalf("RunTokenCleanup: %v", err)
	}

	if len(f.repo.tokens["owner-1"]) != 1 || f.repo.tokens["owner-1"][0].Token != "fresh" {
		t.Errorf("owner-1 tokens = %v, only the fresh one may survive", f.repo.tokens["owner-1"])
	}
	if len(f.repo.tokens["owner-2"]) != 0 {
		t.Error("owner-2's ancient token must be removed")
	}

	cutoff, ok := f.repo.deletedFor["owner-1"]
	if !ok {
		t.Fatal("cleanup must visit every token owner")
	}
	age := time.Since(cutoff)
	if age < 89*24*time.Hour || age > 91*24*time.Hour {
		t.Errorf("cutoff age = %v, want about 90 days", age)
	}
}

func TestRunTokenCleanupHonorsContext(t *testing.T) {
	f := newDispatchFixture()
	f.repo.tokens["owner-1"] = []*domain.PushToken{
		{UserID: "owner-1", Token: "stale", LastUsedAt: time.Now().Add(-120 * 24 * time.Hour)},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.uc.RunTokenCleanup(ctx); err == nil {
		t.Error("a cancelled context must stop the cleanup")
	}
}
