package announcement_test

import (
	"context"
	"testing"
	"time"

	"github.com/foody-app/foody-api/internal/announcement"
	"github.com/foody-app/foody-api/internal/memstore"
)

func TestListPublic_HidesInactiveAndExpired(t *testing.T) {
	svc := announcement.NewService(memstore.New().Announcements())
	ctx := context.Background()

	off := false
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	live, err := svc.Create(ctx, "admin", announcement.CreateRequest{Title: "Open late", Body: "Till midnight", ExpiresAt: &future})
	if err != nil {
		t.Fatal(err)
	}
	hidden, _ := svc.Create(ctx, "admin", announcement.CreateRequest{Title: "Draft", Body: "x", Active: &off})
	_, _ = svc.Create(ctx, "admin", announcement.CreateRequest{Title: "Old", Body: "x", ExpiresAt: &past})

	if live.Priority != announcement.PriorityNormal || !live.Active {
		t.Fatalf("defaults=%+v", live)
	}

	pub, err := svc.ListPublic(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pub) != 1 || pub[0].ID != live.ID {
		t.Fatalf("public=%+v", pub)
	}

	all, total, err := svc.ListAll(ctx, 10, 0)
	if err != nil || total != 3 || len(all) != 3 {
		t.Fatalf("all=%d total=%d err=%v", len(all), total, err)
	}
	if all[0].Title != "Old" {
		t.Fatalf("want newest first, got %q", all[0].Title)
	}

	on := true
	if _, err := svc.Update(ctx, hidden.ID.Hex(), announcement.UpdateRequest{Active: &on}); err != nil {
		t.Fatal(err)
	}
	pub, _ = svc.ListPublic(ctx)
	if len(pub) != 2 {
		t.Fatalf("public after activate=%d", len(pub))
	}

	if err := svc.Delete(ctx, live.ID.Hex()); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, live.ID.Hex()); err != announcement.ErrNotFound {
		t.Fatalf("second delete err=%v", err)
	}
}
