// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureGroupMemberships(ctx, db); err != nil {
		problems = append(problems, "group_memberships: "+err.Error())
	}
	if err := ensureDocuments(ctx, db); err != nil {
		problems = append(problems, "documents: "+err.Error())
	}
	if err := ensureGroupDocumentLinks(ctx, db); err != nil {
		problems = append(problems, "group_document_links: "+err.Error())
	}
	if err := ensureDocumentACLEntries(ctx, db); err != nil {
		problems = append(problems, "document_acl_entries: "+err.Error())
	}
	if err := ensureSharedLinks(ctx, db); err != nil {
		problems = append(problems, "shared_links: "+err.Error())
	}
	if err := ensureAuditEvents(ctx, db); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all accounts.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
	})
}

func ensureGroupMemberships(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("group_memberships")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One membership document per (group, user); soft-delete keeps
		// the pair unique across leave/rejoin cycles.
		{
			Keys: bson.D{
				{Key: "group_id", Value: 1},
				{Key: "user_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_memberships_group_user"),
		},
		// Access decisions and "my groups" listings filter by user.
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().SetName("idx_memberships_user_active"),
		},
	})
}

func ensureDocuments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("documents")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "updated_at", Value: -1},
			},
			Options: options.Index().SetName("idx_documents_owner_updated"),
		},
	})
}

func ensureGroupDocumentLinks(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("group_document_links")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "group_id", Value: 1},
				{Key: "document_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_links_group_document"),
		},
		// Resolvers list by document.
		{
			Keys:    bson.D{{Key: "document_id", Value: 1}},
			Options: options.Index().SetName("idx_links_document"),
		},
	})
}

func ensureDocumentACLEntries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("document_acl_entries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One entry per (document, subject); re-grants overwrite.
		{
			Keys: bson.D{
				{Key: "document_id", Value: 1},
				{Key: "subject_type", Value: 1},
				{Key: "subject_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_acl_document_subject"),
		},
		// "Accessible to me" listings filter by user subject.
		{
			Keys: bson.D{
				{Key: "subject_type", Value: 1},
				{Key: "subject_id", Value: 1},
			},
			Options: options.Index().SetName("idx_acl_subject"),
		},
	})
}

func ensureSharedLinks(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("shared_links")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_shares_token"),
		},
		// Resolver lookups by document plus target.
		{
			Keys: bson.D{
				{Key: "document_id", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().SetName("idx_shares_document_active"),
		},
	})
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("audit_events")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "target", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_audit_target_created"),
		},
	})
}
