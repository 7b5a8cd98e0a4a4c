// internal/app/features/groups/create.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/quangphamai/mindmapnote/internal/app/system/auditlog"
	"github.com/quangphamai/mindmapnote/internal/app/system/gates"
	"github.com/quangphamai/mindmapnote/internal/app/system/httpjson"
	"github.com/quangphamai/mindmapnote/internal/app/system/timeouts"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate creates a group and makes the caller its owner-role
// member.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	var req createGroupRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	group, err := h.Groups.Create(ctx, models.Group{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   res.UserID,
	})
	if err != nil {
		h.Log.Error("group create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.Memberships.Add(ctx, group.ID, res.UserID, models.RoleOwner); err != nil {
		h.Log.Error("owner membership create failed",
			zap.String("group_id", group.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Audit.Record(ctx, res.UserID, auditlog.EventGroupCreated, group.ID.Hex(), group.Name)
	httpjson.Write(w, http.StatusCreated, group)
}

// HandleGet returns a group with its active member list. Any signed-in
// user may look a group up; the documents it grants are still guarded
// per document.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	groupID, group, ok := h.loadGroup(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Memberships.ListByGroup(ctx, groupID, true)
	if err != nil {
		h.Log.Error("member listing failed",
			zap.String("group_id", groupID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if members == nil {
		members = []models.GroupMembership{}
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"group":   group,
		"members": members,
	})
}

// HandleListMine returns the groups the caller is an active member of,
// with the caller's role in each.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	memberships, err := h.Memberships.ListActiveByUser(ctx, res.UserID)
	if err != nil {
		h.Log.Error("membership listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(memberships))
	roles := make(map[primitive.ObjectID]string, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.GroupID)
		roles[m.GroupID] = m.Role
	}
	groups, err := h.Groups.ListByIDs(ctx, ids)
	if err != nil {
		h.Log.Error("group hydration failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	type entry struct {
		Group models.Group `json:"group"`
		Role  string       `json:"role"`
	}
	out := make([]entry, 0, len(groups))
	for _, g := range groups {
		out = append(out, entry{Group: g, Role: roles[g.ID]})
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"groups": out})
}

// loadGroup parses the {id} parameter and fetches the group, writing
// the failure response itself when either step fails.
func (h *Handler) loadGroup(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, models.Group, bool) {
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return primitive.NilObjectID, models.Group{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	group, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return primitive.NilObjectID, models.Group{}, false
		}
		h.Log.Error("group lookup failed",
			zap.String("group_id", groupID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return primitive.NilObjectID, models.Group{}, false
	}
	return groupID, group, true
}
