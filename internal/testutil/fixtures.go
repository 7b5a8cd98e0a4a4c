package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name and email.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  fullName,
		Email:     strings.ToLower(email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateGroup creates a test group owned by creatorID. Only the group
// document is inserted; add memberships separately.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, creatorID primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatedBy: creatorID,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateMembership creates an active group membership with the given role.
func (f *Fixtures) CreateMembership(ctx context.Context, groupID, userID primitive.ObjectID, role string) models.GroupMembership {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.GroupMembership{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		UserID:    userID,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("group_memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateDocument creates a test document owned by ownerID.
func (f *Fixtures) CreateDocument(ctx context.Context, title string, ownerID primitive.ObjectID, primaryGroupID *primitive.ObjectID) models.Document {
	f.t.Helper()

	now := time.Now().UTC()
	doc := models.Document{
		ID:             primitive.NewObjectID(),
		Title:          title,
		Body:           "<p>body of " + title + "</p>",
		OwnerID:        ownerID,
		PrimaryGroupID: primaryGroupID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("documents").InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to create test document: %v", err)
	}
	return doc
}

// CreateGroupLink shares a document into a group at the given access level.
func (f *Fixtures) CreateGroupLink(ctx context.Context, groupID, docID primitive.ObjectID, accessLevel string, createdBy primitive.ObjectID) models.GroupDocumentLink {
	f.t.Helper()

	link := models.GroupDocumentLink{
		ID:          primitive.NewObjectID(),
		GroupID:     groupID,
		DocumentID:  docID,
		AccessLevel: accessLevel,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("group_document_links").InsertOne(ctx, link); err != nil {
		f.t.Fatalf("failed to create test group link: %v", err)
	}
	return link
}

// CreateACLEntry creates a direct ACL entry on a document.
func (f *Fixtures) CreateACLEntry(ctx context.Context, docID primitive.ObjectID, subjectType string, subjectID primitive.ObjectID, role string, createdBy primitive.ObjectID) models.DocumentACLEntry {
	f.t.Helper()

	entry := models.DocumentACLEntry{
		ID:          primitive.NewObjectID(),
		DocumentID:  docID,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Role:        role,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("document_acl_entries").InsertOne(ctx, entry); err != nil {
		f.t.Fatalf("failed to create test ACL entry: %v", err)
	}
	return entry
}

// CreateSharedLink creates an active shared link on a document addressed
// to an email. Pass a nil expiresAt for a link that never expires.
func (f *Fixtures) CreateSharedLink(ctx context.Context, docID primitive.ObjectID, targetEmail, accessLevel string, expiresAt *time.Time, createdBy primitive.ObjectID) models.SharedLink {
	f.t.Helper()

	link := models.SharedLink{
		ID:          primitive.NewObjectID(),
		DocumentID:  docID,
		TargetEmail: strings.ToLower(targetEmail),
		AccessLevel: accessLevel,
		Token:       primitive.NewObjectID().Hex(),
		ExpiresAt:   expiresAt,
		IsActive:    true,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("shared_links").InsertOne(ctx, link); err != nil {
		f.t.Fatalf("failed to create test shared link: %v", err)
	}
	return link
}
