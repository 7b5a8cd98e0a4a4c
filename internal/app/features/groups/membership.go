// internal/app/features/groups/membership.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	membershipstore "github.com/quangphamai/mindmapnote/internal/app/store/memberships"
	"github.com/quangphamai/mindmapnote/internal/app/system/auditlog"
	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
	"github.com/quangphamai/mindmapnote/internal/app/system/timeouts"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

// HandleJoin adds the caller to the group at the default member role.
// Rejoining after a leave reactivates the old membership.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, _, ok := h.loadGroup(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Memberships.Add(ctx, groupID, res.UserID, models.RoleMember); err != nil {
		if errors.Is(err, membershipstore.ErrDuplicateMembership) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("join failed",
			zap.String("group_id", groupID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventMemberJoined, groupID.Hex(), res.UserID.Hex())
	httpjson.Write(w, http.StatusNoContent, nil)
}

// HandleLeave soft-deletes the caller's membership. The row is kept
// inactive; a later join reactivates it.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, _, ok := h.loadGroup(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Memberships.Deactivate(ctx, groupID, res.UserID); err != nil {
		if errors.Is(err, membershipstore.ErrNoMembership) {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.Log.Error("leave failed",
			zap.String("group_id", groupID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventMemberLeft, groupID.Hex(), res.UserID.Hex())
	httpjson.Write(w, http.StatusNoContent, nil)
}

type addMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// HandleAddMember adds a user to the group at a chosen role. Requires
// an admin-rank membership from the caller.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, _, ok := h.loadGroup(w, r)
	if !ok {
		return
	}

	var req addMemberRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user_id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.requireGroupAdmin(ctx, w, res.UserID, groupID) {
		return
	}

	// The target must be a real account; a garbage id would otherwise
	// create an orphan membership.
	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("user lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.Memberships.Add(ctx, groupID, userID, req.Role); err != nil {
		switch {
		case errors.Is(err, membershipstore.ErrBadRole):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, membershipstore.ErrDuplicateMembership):
			httpjson.Error(w, http.StatusConflict, err.Error())
		default:
			h.Log.Error("member add failed",
				zap.String("group_id", groupID.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventMemberJoined, groupID.Hex(),
		userID.Hex()+" role="+req.Role)
	httpjson.Write(w, http.StatusNoContent, nil)
}

// HandleRemoveMember soft-deletes another user's membership. Requires
// an admin-rank membership from the caller.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, _, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.requireGroupAdmin(ctx, w, res.UserID, groupID) {
		return
	}

	if err := h.Memberships.Deactivate(ctx, groupID, userID); err != nil {
		if errors.Is(err, membershipstore.ErrNoMembership) {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.Log.Error("member remove failed",
			zap.String("group_id", groupID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventMemberLeft, groupID.Hex(), userID.Hex())
	httpjson.Write(w, http.StatusNoContent, nil)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// HandleChangeRole changes an active member's role. Requires an
// admin-rank membership from the caller.
func (h *Handler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, _, ok := h.loadGroup(w, r)
	if !ok {
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req changeRoleRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.requireGroupAdmin(ctx, w, res.UserID, groupID) {
		return
	}

	if err := h.Memberships.SetRole(ctx, groupID, userID, req.Role); err != nil {
		switch {
		case errors.Is(err, membershipstore.ErrBadRole):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, membershipstore.ErrNoMembership):
			httpjson.Error(w, http.StatusNotFound, err.Error())
		default:
			h.Log.Error("role change failed",
				zap.String("group_id", groupID.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventMemberRoleChanged, groupID.Hex(),
		userID.Hex()+" role="+req.Role)
	httpjson.Write(w, http.StatusNoContent, nil)
}

// requireGroupAdmin verifies an admin-rank active membership, writing
// the failure response itself when the check does not pass.
func (h *Handler) requireGroupAdmin(ctx context.Context, w http.ResponseWriter, userID, groupID primitive.ObjectID) bool {
	roles, err := h.Memberships.ActiveMemberships(ctx, userID, []primitive.ObjectID{groupID})
	if err != nil {
		h.Log.Error("membership check failed",
			zap.String("group_id", groupID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return false
	}
	role := roles[groupID]
	if role != models.RoleAdmin && role != models.RoleOwner {
		httpjson.Error(w, http.StatusForbidden, "group admin membership required")
		return false
	}
	return true
}
