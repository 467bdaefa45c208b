package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/dalemusser/teamhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID       string
	Name     string
	UserType string
}

// RegularUser returns a TestUser with the ordinary user type.
func RegularUser() TestUser {
	return TestUser{
		ID:       primitive.NewObjectID().Hex(),
		Name:     "Test User",
		UserType: "user",
	}
}

// AdminUser returns a TestUser with the admin user type.
func AdminUser() TestUser {
	return TestUser{
		ID:       primitive.NewObjectID().Hex(),
		Name:     "Test Admin",
		UserType: "admin",
	}
}

// AsUser wraps an existing user id as a TestUser.
func AsUser(id primitive.ObjectID, name string) TestUser {
	return TestUser{ID: id.Hex(), Name: name, UserType: "user"}
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the session middleware and injects the user
// directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:       user.ID,
		Name:     user.Name,
		UserType: user.UserType,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}
