package auditstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	auditstore "github.com/quangphamai/mindmapnote/internal/app/store/audit"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
	"github.com/quangphamai/mindmapnote/internal/testutil"
)

func TestStore_AppendAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := auditstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	actorID := primitive.NewObjectID()
	target := primitive.NewObjectID().Hex()

	for _, action := range []string{"acl.grant", "acl.revoke", "share.create"} {
		if err := store.Append(ctx, models.AuditEvent{
			ActorID: actorID,
			Action:  action,
			Target:  target,
		}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	// Event on another target stays out of the listing.
	if err := store.Append(ctx, models.AuditEvent{
		ActorID: actorID,
		Action:  "document.delete",
		Target:  primitive.NewObjectID().Hex(),
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	events, err := store.ListByTarget(ctx, target, 10)
	if err != nil {
		t.Fatalf("ListByTarget failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for _, ev := range events {
		if ev.Target != target {
			t.Errorf("unexpected target %q", ev.Target)
		}
		if ev.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be stamped")
		}
	}
}

func TestStore_ListByTarget_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := auditstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := primitive.NewObjectID().Hex()
	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, models.AuditEvent{
			ActorID: primitive.NewObjectID(),
			Action:  "membership.add",
			Target:  target,
		}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	events, err := store.ListByTarget(ctx, target, 2)
	if err != nil {
		t.Fatalf("ListByTarget failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected limit of 2, got %d", len(events))
	}
}
