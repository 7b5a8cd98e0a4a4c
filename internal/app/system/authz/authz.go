// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quangphamai/mindmapnote/internal/app/policy/docaccess"
	"github.com/quangphamai/mindmapnote/internal/app/system/auth"
)

// UserCtx returns the user's name, email (lowercased), Mongo ObjectID,
// and a found flag. If no user is present in context or the user ID is
// malformed, it returns "", "", NilObjectID, false. Callers can trust
// that ok=true means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (name string, email string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "", "", primitive.NilObjectID, false
	}
	return user.Name, strings.ToLower(user.Email), userID, true
}

// Principal builds the access-decision principal for the current
// request. ok=false means the request is anonymous.
func Principal(r *http.Request) (docaccess.Principal, bool) {
	_, email, userID, ok := UserCtx(r)
	if !ok {
		return docaccess.Principal{}, false
	}
	return docaccess.Principal{UserID: userID, Email: email}, true
}
