package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/teamhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
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

// CreateUser creates a test user account.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:          primitive.NewObjectID(),
		Email:       email,
		EmailCI:     text.Fold(email),
		DisplayName: name,
		UserType:    "user",
		Orgs:        []models.OrgMembership{},
		AdminOf:     []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateOrganization creates a test organization administered by admin.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string, admin primitive.ObjectID) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Admin:     admin,
		Members:   []primitive.ObjectID{},
		Teams:     []models.Team{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// AddMember puts a user on the organization's member roster and records
// the membership on the user document.
func (f *Fixtures) AddMember(ctx context.Context, orgID, userID primitive.ObjectID) {
	f.t.Helper()

	if _, err := f.db.Collection("organizations").UpdateOne(ctx,
		bson.M{"_id": orgID},
		bson.M{"$addToSet": bson.M{"members": userID}}); err != nil {
		f.t.Fatalf("failed to add member to organization: %v", err)
	}
	if _, err := f.db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"orgs": models.OrgMembership{OrgID: orgID}}}); err != nil {
		f.t.Fatalf("failed to record membership on user: %v", err)
	}
}

// AddTeam appends a team to the organization and returns it. Members
// must already be on the organization roster.
func (f *Fixtures) AddTeam(ctx context.Context, orgID primitive.ObjectID, teamID int, name string, members ...primitive.ObjectID) models.Team {
	f.t.Helper()

	refs := make([]models.TeamMemberRef, 0, len(members))
	for _, m := range members {
		refs = append(refs, models.TeamMemberRef{ID: m})
	}
	team := models.Team{TeamID: teamID, Name: name, Members: refs}
	if _, err := f.db.Collection("organizations").UpdateOne(ctx,
		bson.M{"_id": orgID},
		bson.M{"$push": bson.M{"teams": team}}); err != nil {
		f.t.Fatalf("failed to add team to organization: %v", err)
	}
	if len(members) > 0 {
		if _, err := f.db.Collection("users").UpdateMany(ctx,
			bson.M{"_id": bson.M{"$in": members}, "orgs.org_id": orgID},
			bson.M{"$set": bson.M{"orgs.$.team_id": teamID}}); err != nil {
			f.t.Fatalf("failed to record team on users: %v", err)
		}
	}
	return team
}

// AddLegacyTeamMember appends a legacy-shaped {_id, name} member entry
// directly, for exercising the dual-shape decoding path.
func (f *Fixtures) AddLegacyTeamMember(ctx context.Context, orgID primitive.ObjectID, teamID int, userID primitive.ObjectID, name string) {
	f.t.Helper()

	if _, err := f.db.Collection("organizations").UpdateOne(ctx,
		bson.M{"_id": orgID, "teams.team_id": teamID},
		bson.M{"$push": bson.M{"teams.$.members": bson.M{"_id": userID, "name": name}}}); err != nil {
		f.t.Fatalf("failed to add legacy team member: %v", err)
	}
}
