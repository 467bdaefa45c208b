// Package gates provides the authorization checks handlers run before
// touching any store.
//
// Capability levels, weakest to strongest:
//
//	Public < Authenticated < Team Member < Org Admin
//
// Every gate evaluates top-down and writes the uniform error envelope on
// the first failure, returning OK=false so the handler can bail without
// partial execution. Team-scoped gates resolve membership BEFORE the
// handler reaches any lazily-creating store, so unauthorized callers can
// never instantiate charters, boards, or message logs as a side effect.
//
// Admin gates compare the session user id against the organization's
// admin reference only; they do not consult team membership, and the
// admin does not need to be in the organization's member list.
package gates

import (
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/policy/teampolicy"
	"github.com/dalemusser/teamhub/internal/app/system/authz"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Result carries the authenticated user out of a gate check.
type Result struct {
	UserID   primitive.ObjectID
	Name     string
	UserType string
	OK       bool
}

// RequireAuth ensures a user is authenticated. On failure it writes the
// not_authenticated envelope and returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	uid, name, userType, ok := authz.UserCtx(r)
	if !ok {
		jsonapi.Error(w, jsonapi.ErrNotAuthenticated)
		return Result{OK: false}
	}
	return Result{UserID: uid, Name: name, UserType: userType, OK: true}
}

// RequireTeamMember ensures the user is authenticated and belongs to
// team teamID of organization orgID. Non-membership yields the
// not_authorized envelope; a store failure yields internal.
func RequireTeamMember(w http.ResponseWriter, r *http.Request, db *mongo.Database, orgID primitive.ObjectID, teamID int) Result {
	res := RequireAuth(w, r)
	if !res.OK {
		return res
	}
	member, err := teampolicy.IsTeamMember(r.Context(), db, res.UserID, orgID, teamID)
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrInternal)
		return Result{OK: false}
	}
	if !member {
		jsonapi.Error(w, jsonapi.ErrNotAuthorized)
		return Result{OK: false}
	}
	return res
}

// RequireOrgAdmin ensures the user is authenticated and administers the
// organization.
func RequireOrgAdmin(w http.ResponseWriter, r *http.Request, db *mongo.Database, orgID primitive.ObjectID) Result {
	res := RequireAuth(w, r)
	if !res.OK {
		return res
	}
	admin, err := teampolicy.IsOrgAdmin(r.Context(), db, res.UserID, orgID)
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrInternal)
		return Result{OK: false}
	}
	if !admin {
		jsonapi.Error(w, jsonapi.ErrNotAuthorized)
		return Result{OK: false}
	}
	return res
}
