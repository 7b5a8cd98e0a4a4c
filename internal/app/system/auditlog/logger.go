// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	auditstore "github.com/quangphamai/mindmapnote/internal/app/store/audit"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

// Event action names. The Target of each event is the hex id of the
// entity the action applied to (document or group).
const (
	EventDocumentCreated = "document.create"
	EventDocumentUpdated = "document.update"
	EventDocumentDeleted = "document.delete"

	EventACLGranted = "acl.grant"
	EventACLRevoked = "acl.revoke"

	EventShareCreated = "share.create"
	EventShareRevoked = "share.revoke"

	EventGroupLinkAdded   = "grouplink.add"
	EventGroupLinkRemoved = "grouplink.remove"

	EventGroupCreated      = "group.create"
	EventMemberJoined      = "membership.add"
	EventMemberLeft        = "membership.remove"
	EventMemberRoleChanged = "membership.role"
)

// Logger records permission-affecting mutations to MongoDB and to the
// structured log. A nil *Logger is a no-op, so tests can pass nil.
type Logger struct {
	store  *auditstore.Store
	zapLog *zap.Logger
}

// New creates an audit Logger.
func New(store *auditstore.Store, zapLog *zap.Logger) *Logger {
	return &Logger{store: store, zapLog: zapLog}
}

// Record writes one event. A failed store write is logged and swallowed;
// audit must never fail the mutation it describes.
func (l *Logger) Record(ctx context.Context, actorID primitive.ObjectID, action, target, detail string) {
	if l == nil {
		return
	}

	l.zapLog.Info("audit event",
		zap.Bool("audit", true),
		zap.String("action", action),
		zap.String("actor_id", actorID.Hex()),
		zap.String("target", target),
		zap.String("detail", detail))

	err := l.store.Append(ctx, models.AuditEvent{
		ActorID: actorID,
		Action:  action,
		Target:  target,
		Detail:  detail,
	})
	if err != nil {
		l.zapLog.Error("failed to store audit event",
			zap.String("action", action),
			zap.Error(err))
	}
}
