package memory

import (
	"context"
	"reflect"
	"testing"

	"rideshare/internal/domain"
)

func TestProfileStore_PutAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewProfileStore()

	missing, err := store.Get(ctx, "principal-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown principal, got %+v", missing)
	}

	profile := domain.Profile{Name: "kelsey", Description: "driver", Keywords: []string{"suv"}}
	if err := store.Put(ctx, "principal-1", profile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := store.Get(ctx, "principal-1")
	if got == nil || !reflect.DeepEqual(*got, profile) {
		t.Errorf("expected %+v, got %+v", profile, got)
	}

	byName, _ := store.GetByName(ctx, "kelsey")
	if byName == nil || byName.Description != "driver" {
		t.Errorf("expected profile by name, got %+v", byName)
	}

	got.Keywords[0] = "mutated"
	again, _ := store.Get(ctx, "principal-1")
	if again.Keywords[0] != "suv" {
		t.Errorf("expected stored keywords to be isolated, got %v", again.Keywords)
	}
}

func TestProfileStore_NameIndexFollowsLatestClaim(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewProfileStore()
	_ = store.Put(ctx, "p1", domain.Profile{Name: "shared", Description: "first"})
	_ = store.Put(ctx, "p2", domain.Profile{Name: "shared", Description: "second"})

	got, _ := store.GetByName(ctx, "shared")
	if got == nil || got.Description != "second" {
		t.Errorf("expected latest claimant, got %+v", got)
	}
}
