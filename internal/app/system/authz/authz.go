// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the session user's Mongo ObjectID, display name, user
// type, and a found flag. If no user is present in context or the user
// ID is malformed, it returns NilObjectID and false, so ok=true always
// means a valid, authenticated user with a parseable ObjectID.
func UserCtx(r *http.Request) (userID primitive.ObjectID, name string, userType string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, "", "", false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return primitive.NilObjectID, "", "", false
	}
	return userID, user.Name, user.UserType, true
}

// IsAuthenticated reports whether the request carries a valid session user.
func IsAuthenticated(r *http.Request) bool {
	_, _, _, ok := UserCtx(r)
	return ok
}

// UserID returns the session user's ObjectID, or NilObjectID when not
// signed in.
func UserID(r *http.Request) primitive.ObjectID {
	id, _, _, _ := UserCtx(r)
	return id
}
