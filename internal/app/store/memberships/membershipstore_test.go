package membershipstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	membershipstore "github.com/quangphamai/mindmapnote/internal/app/store/memberships"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
	"github.com/quangphamai/mindmapnote/internal/testutil"
)

func TestStore_Add(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Group Owner", "owner@example.com")
	group := fixtures.CreateGroup(ctx, "Test Group", owner.ID)
	member := fixtures.CreateUser(ctx, "Test Member", "member@example.com")

	err := store.Add(ctx, group.ID, member.ID, models.RoleMember)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Verify the membership was created active
	var m models.GroupMembership
	err = db.Collection("group_memberships").FindOne(ctx, bson.M{
		"group_id": group.ID,
		"user_id":  member.ID,
	}).Decode(&m)
	if err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if m.Role != models.RoleMember {
		t.Errorf("Role: got %q, want %q", m.Role, models.RoleMember)
	}
	if !m.IsActive {
		t.Error("expected new membership to be active")
	}
}

func TestStore_Add_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Add(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "superuser")
	if !errors.Is(err, membershipstore.ErrBadRole) {
		t.Fatalf("expected ErrBadRole, got %v", err)
	}
}

func TestStore_Add_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	if err := store.Add(ctx, groupID, userID, models.RoleMember); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	err := store.Add(ctx, groupID, userID, models.RoleAdmin)
	if !errors.Is(err, membershipstore.ErrDuplicateMembership) {
		t.Fatalf("expected ErrDuplicateMembership, got %v", err)
	}
}

func TestStore_Add_ReactivatesSoftDeleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	if err := store.Add(ctx, groupID, userID, models.RoleMember); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Deactivate(ctx, groupID, userID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	// Rejoining keeps the original document and updates the role.
	if err := store.Add(ctx, groupID, userID, models.RoleViewer); err != nil {
		t.Fatalf("rejoin Add failed: %v", err)
	}

	count, err := db.Collection("group_memberships").CountDocuments(ctx, bson.M{
		"group_id": groupID,
		"user_id":  userID,
	})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 membership document after rejoin, got %d", count)
	}

	roles, err := store.ActiveMemberships(ctx, userID, []primitive.ObjectID{groupID})
	if err != nil {
		t.Fatalf("ActiveMemberships failed: %v", err)
	}
	if roles[groupID] != models.RoleViewer {
		t.Errorf("role after rejoin: got %q, want %q", roles[groupID], models.RoleViewer)
	}
}

func TestStore_Deactivate_NoMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Deactivate(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, membershipstore.ErrNoMembership) {
		t.Fatalf("expected ErrNoMembership, got %v", err)
	}
}

func TestStore_SetRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	if err := store.Add(ctx, groupID, userID, models.RoleMember); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.SetRole(ctx, groupID, userID, models.RoleAdmin); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}

	roles, err := store.ActiveMemberships(ctx, userID, []primitive.ObjectID{groupID})
	if err != nil {
		t.Fatalf("ActiveMemberships failed: %v", err)
	}
	if roles[groupID] != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", roles[groupID], models.RoleAdmin)
	}
}

func TestStore_SetRole_InactiveMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	if err := store.Add(ctx, groupID, userID, models.RoleMember); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Deactivate(ctx, groupID, userID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	err := store.SetRole(ctx, groupID, userID, models.RoleAdmin)
	if !errors.Is(err, membershipstore.ErrNoMembership) {
		t.Fatalf("expected ErrNoMembership for inactive membership, got %v", err)
	}
}

func TestStore_ActiveMemberships(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	activeGroup := primitive.NewObjectID()
	leftGroup := primitive.NewObjectID()
	strangerGroup := primitive.NewObjectID()

	if err := store.Add(ctx, activeGroup, userID, models.RoleAdmin); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(ctx, leftGroup, userID, models.RoleMember); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Deactivate(ctx, leftGroup, userID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	roles, err := store.ActiveMemberships(ctx, userID,
		[]primitive.ObjectID{activeGroup, leftGroup, strangerGroup})
	if err != nil {
		t.Fatalf("ActiveMemberships failed: %v", err)
	}
	if len(roles) != 1 {
		t.Fatalf("expected 1 active membership, got %d", len(roles))
	}
	if roles[activeGroup] != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", roles[activeGroup], models.RoleAdmin)
	}
}

func TestStore_ActiveMemberships_EmptyInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	roles, err := store.ActiveMemberships(ctx, primitive.NewObjectID(), nil)
	if err != nil {
		t.Fatalf("ActiveMemberships failed: %v", err)
	}
	if len(roles) != 0 {
		t.Errorf("expected empty result, got %d entries", len(roles))
	}
}

func TestStore_ListActiveByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	groupA := primitive.NewObjectID()
	groupB := primitive.NewObjectID()

	if err := store.Add(ctx, groupA, userID, models.RoleOwner); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(ctx, groupB, userID, models.RoleMember); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Deactivate(ctx, groupB, userID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	memberships, err := store.ListActiveByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListActiveByUser failed: %v", err)
	}
	if len(memberships) != 1 {
		t.Fatalf("expected 1 active membership, got %d", len(memberships))
	}
	if memberships[0].GroupID != groupA {
		t.Errorf("GroupID: got %s, want %s", memberships[0].GroupID.Hex(), groupA.Hex())
	}
}
