package groupstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	groupstore "github.com/quangphamai/mindmapnote/internal/app/store/groups"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
	"github.com/quangphamai/mindmapnote/internal/testutil"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	g, err := store.Create(ctx, models.Group{
		Name:        "Design Team",
		Description: "mind maps for the design team",
		CreatedBy:   creator,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID.IsZero() {
		t.Error("expected assigned ID")
	}
	if g.Status != "active" {
		t.Errorf("Status: got %q, want %q", g.Status, "active")
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Design Team" || got.CreatedBy != creator {
		t.Errorf("unexpected group %+v", got)
	}
}

func TestStore_UpdateInfo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, err := store.Create(ctx, models.Group{Name: "Old Name", CreatedBy: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.UpdateInfo(ctx, g.ID, "New Name", "new description"); err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}
	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "New Name" || got.Description != "new description" {
		t.Errorf("got (%q, %q)", got.Name, got.Description)
	}

	// An empty name leaves the current name in place.
	if err := store.UpdateInfo(ctx, g.ID, "", "only description"); err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}
	got, err = store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("Name: got %q, want %q", got.Name, "New Name")
	}
	if got.Description != "only description" {
		t.Errorf("Description: got %q, want %q", got.Description, "only description")
	}
}

func TestStore_ListByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, models.Group{Name: "A", CreatedBy: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Group{Name: "B", CreatedBy: primitive.NewObjectID()}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	groups, err := store.ListByIDs(ctx, []primitive.ObjectID{a.ID})
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != a.ID {
		t.Fatalf("expected only group A, got %+v", groups)
	}

	groups, err = store.ListByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("ListByIDs with empty input failed: %v", err)
	}
	if groups != nil {
		t.Errorf("expected nil for empty input, got %v", groups)
	}
}
