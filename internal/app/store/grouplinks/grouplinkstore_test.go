package grouplinkstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	grouplinkstore "github.com/quangphamai/mindmapnote/internal/app/store/grouplinks"
	"github.com/quangphamai/mindmapnote/internal/app/system/indexes"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
	"github.com/quangphamai/mindmapnote/internal/testutil"
)

func TestStore_Add(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := grouplinkstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	docID := primitive.NewObjectID()

	link, err := store.Add(ctx, models.GroupDocumentLink{
		GroupID:     groupID,
		DocumentID:  docID,
		AccessLevel: models.LinkAccessWrite,
		CreatedBy:   primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if link.ID.IsZero() {
		t.Error("expected assigned ID")
	}

	links, err := store.ListByDocument(ctx, docID)
	if err != nil {
		t.Fatalf("ListByDocument failed: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].AccessLevel != models.LinkAccessWrite {
		t.Errorf("AccessLevel: got %q, want %q", links[0].AccessLevel, models.LinkAccessWrite)
	}
}

func TestStore_Add_InvalidAccessLevel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := grouplinkstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Add(ctx, models.GroupDocumentLink{
		GroupID:     primitive.NewObjectID(),
		DocumentID:  primitive.NewObjectID(),
		AccessLevel: "edit",
	})
	if !errors.Is(err, grouplinkstore.ErrBadAccessLevel) {
		t.Fatalf("expected ErrBadAccessLevel, got %v", err)
	}
}

func TestStore_Add_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := grouplinkstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Duplicate detection depends on the unique index.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	groupID := primitive.NewObjectID()
	docID := primitive.NewObjectID()

	if _, err := store.Add(ctx, models.GroupDocumentLink{
		GroupID:     groupID,
		DocumentID:  docID,
		AccessLevel: models.LinkAccessRead,
	}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	_, err := store.Add(ctx, models.GroupDocumentLink{
		GroupID:     groupID,
		DocumentID:  docID,
		AccessLevel: models.LinkAccessAdmin,
	})
	if !errors.Is(err, grouplinkstore.ErrDuplicateLink) {
		t.Fatalf("expected ErrDuplicateLink, got %v", err)
	}
}

func TestStore_Remove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := grouplinkstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	docID := primitive.NewObjectID()

	if _, err := store.Add(ctx, models.GroupDocumentLink{
		GroupID:     groupID,
		DocumentID:  docID,
		AccessLevel: models.LinkAccessRead,
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	removed, err := store.Remove(ctx, groupID, docID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed: got %d, want 1", removed)
	}

	removed, err = store.Remove(ctx, groupID, docID)
	if err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed: got %d, want 0", removed)
	}
}

func TestStore_ListByGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := grouplinkstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupA := primitive.NewObjectID()
	groupB := primitive.NewObjectID()
	groupC := primitive.NewObjectID()

	for _, g := range []primitive.ObjectID{groupA, groupB, groupC} {
		if _, err := store.Add(ctx, models.GroupDocumentLink{
			GroupID:     g,
			DocumentID:  primitive.NewObjectID(),
			AccessLevel: models.LinkAccessRead,
		}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	links, err := store.ListByGroups(ctx, []primitive.ObjectID{groupA, groupB})
	if err != nil {
		t.Fatalf("ListByGroups failed: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
}

func TestStore_ListByGroups_EmptyInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := grouplinkstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	links, err := store.ListByGroups(ctx, nil)
	if err != nil {
		t.Fatalf("ListByGroups failed: %v", err)
	}
	if links != nil {
		t.Errorf("expected nil result for empty input, got %v", links)
	}
}

func TestStore_RemoveByDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := grouplinkstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	docID := primitive.NewObjectID()
	for i := 0; i < 2; i++ {
		if _, err := store.Add(ctx, models.GroupDocumentLink{
			GroupID:     primitive.NewObjectID(),
			DocumentID:  docID,
			AccessLevel: models.LinkAccessRead,
		}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	removed, err := store.RemoveByDocument(ctx, docID)
	if err != nil {
		t.Fatalf("RemoveByDocument failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed: got %d, want 2", removed)
	}
}
