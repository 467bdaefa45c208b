package orgs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/teamhub/internal/app/features/orgs"
	"github.com/dalemusser/teamhub/internal/app/system/accesscode"
	"github.com/dalemusser/teamhub/internal/app/system/indexes"
	"github.com/dalemusser/teamhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*orgs.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	handler := orgs.NewHandler(db, zap.NewNop())
	return handler, testutil.NewFixtures(t, db)
}

func jsonRequest(method, target, body string, user testutil.TestUser) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return testutil.WithUser(req, user)
}

func TestHandleCreate_AdminSeesAccessCode(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	creator := fixtures.CreateUser(ctx, "Creator", "creator@test.edu")

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, jsonRequest("POST", "/org/create",
		`{"name":"CS 4320","description":"Software Engineering"}`,
		testutil.AsUser(creator.ID, "Creator")))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	var out struct {
		ID         primitive.ObjectID `json:"id"`
		Admin      primitive.ObjectID `json:"admin"`
		AccessCode string             `json:"access_code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Admin != creator.ID {
		t.Errorf("expected admin %v, got %v", creator.ID, out.Admin)
	}
	if len(out.AccessCode) != accesscode.Length {
		t.Errorf("expected a %d-character access code, got %q", accesscode.Length, out.AccessCode)
	}

	// The creator's user document records the admin role.
	var user struct {
		AdminOf []primitive.ObjectID `bson:"admin_of"`
	}
	err := fixtures.DB().Collection("users").FindOne(ctx, bson.M{"_id": creator.ID}).Decode(&user)
	if err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if len(user.AdminOf) != 1 || user.AdminOf[0] != out.ID {
		t.Errorf("expected admin_of to record the org, got %v", user.AdminOf)
	}
}

func TestHandleJoin_IdempotentAndHidesCode(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	student := fixtures.CreateUser(ctx, "Student", "student@test.edu")
	org := fixtures.CreateOrganization(ctx, "Joinable", admin.ID)
	if err := handler.Orgs.SetAccessCode(ctx, org.ID, "join123"); err != nil {
		t.Fatalf("SetAccessCode failed: %v", err)
	}

	// Join twice; the code arrives uppercased with whitespace once.
	for _, code := range []string{`"join123"`, `"  JOIN123  "`} {
		rec := httptest.NewRecorder()
		handler.HandleJoin(rec, jsonRequest("POST", "/org/join",
			`{"access_code":`+code+`}`, testutil.AsUser(student.ID, "Student")))
		if rec.Code != http.StatusOK {
			t.Fatalf("join with %s: expected status 200, got %d: %s", code, rec.Code, rec.Body)
		}
		var out map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if _, leaked := out["access_code"]; leaked {
			t.Error("access code leaked to a non-admin")
		}
	}

	got, err := handler.Orgs.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Members) != 1 {
		t.Errorf("expected exactly 1 member after double join, got %d", len(got.Members))
	}
	user, err := handler.Users.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(user.Orgs) != 1 {
		t.Errorf("expected exactly 1 membership record, got %d", len(user.Orgs))
	}
}

func TestHandleJoin_UnknownCode(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	student := fixtures.CreateUser(ctx, "Student", "student@test.edu")

	rec := httptest.NewRecorder()
	handler.HandleJoin(rec, jsonRequest("POST", "/org/join",
		`{"access_code":"zzzzzzz"}`, testutil.AsUser(student.ID, "Student")))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleLeave_AdminRefused(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	member := fixtures.CreateUser(ctx, "Member", "member@test.edu")
	org := fixtures.CreateOrganization(ctx, "Leavable", admin.ID)
	fixtures.AddMember(ctx, org.ID, member.ID)
	fixtures.AddTeam(ctx, org.ID, 1, "Team 1", member.ID)

	rec := httptest.NewRecorder()
	req := jsonRequest("POST", "/org/leave", "", testutil.AsUser(admin.ID, "Admin"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	handler.HandleLeave(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("admin leave: expected status 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = jsonRequest("POST", "/org/leave", "", testutil.AsUser(member.ID, "Member"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	handler.HandleLeave(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("member leave: expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	got, err := handler.Orgs.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Members) != 0 {
		t.Errorf("expected empty roster, got %d members", len(got.Members))
	}
	team, err := handler.Orgs.GetTeam(ctx, org.ID, 1)
	if err != nil {
		t.Fatalf("GetTeam failed: %v", err)
	}
	if len(team.Members) != 0 {
		t.Errorf("leaving should clear team membership, got %v", team.Members)
	}
}

func TestServeMembers_ResolvesTeams(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	a := fixtures.CreateUser(ctx, "Alice", "alice@test.edu")
	b := fixtures.CreateUser(ctx, "Bob", "bob@test.edu")
	org := fixtures.CreateOrganization(ctx, "Roster", admin.ID)
	fixtures.AddMember(ctx, org.ID, a.ID)
	fixtures.AddMember(ctx, org.ID, b.ID)
	fixtures.AddTeam(ctx, org.ID, 2, "Team 2", a.ID)

	rec := httptest.NewRecorder()
	req := jsonRequest("GET", "/org/members", "", testutil.AsUser(a.ID, "Alice"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	handler.ServeMembers(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	var out []struct {
		ID          primitive.ObjectID `json:"id"`
		DisplayName string             `json:"display_name"`
		TeamID      int                `json:"team_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 members, got %d", len(out))
	}
	byID := make(map[primitive.ObjectID]int)
	for _, m := range out {
		byID[m.ID] = m.TeamID
	}
	if byID[a.ID] != 2 {
		t.Errorf("expected Alice on team 2, got %d", byID[a.ID])
	}
	if byID[b.ID] != 0 {
		t.Errorf("expected Bob unassigned, got %d", byID[b.ID])
	}
}

func TestHandleRandomTeams_PartitionsRoster(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	org := fixtures.CreateOrganization(ctx, "Random", admin.ID)
	var members []primitive.ObjectID
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		u := fixtures.CreateUser(ctx, name, strings.ToLower(name)+"@test.edu")
		fixtures.AddMember(ctx, org.ID, u.ID)
		members = append(members, u.ID)
	}

	rec := httptest.NewRecorder()
	req := jsonRequest("POST", "/org/teams/random", `{"team_size":3}`, testutil.AsUser(admin.ID, "Admin"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	handler.HandleRandomTeams(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	got, err := handler.Orgs.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Teams) != 3 {
		t.Fatalf("expected 3 teams for 7 members of size 3, got %d", len(got.Teams))
	}
	seen := make(map[primitive.ObjectID]bool)
	for i, team := range got.Teams {
		if team.TeamID != i+1 {
			t.Errorf("expected sequential team ids, got %d at position %d", team.TeamID, i)
		}
		want := 3
		if i == 2 {
			want = 1
		}
		if len(team.Members) != want {
			t.Errorf("team %d: expected %d members, got %d", team.TeamID, want, len(team.Members))
		}
		for _, ref := range team.Members {
			if seen[ref.ID] {
				t.Errorf("user %v appears on two teams", ref.ID)
			}
			seen[ref.ID] = true
		}
	}
	if len(seen) != len(members) {
		t.Errorf("expected every member placed, got %d of %d", len(seen), len(members))
	}

	// Each user document records their team.
	for _, id := range members {
		u, err := handler.Users.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if len(u.Orgs) != 1 || u.Orgs[0].TeamID == 0 {
			t.Errorf("user %v missing team assignment: %+v", id, u.Orgs)
		}
	}
}

func TestHandleRandomTeams_NonAdminForbidden(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	member := fixtures.CreateUser(ctx, "Member", "member@test.edu")
	org := fixtures.CreateOrganization(ctx, "Guarded", admin.ID)
	fixtures.AddMember(ctx, org.ID, member.ID)

	rec := httptest.NewRecorder()
	req := jsonRequest("POST", "/org/teams/random", `{"team_size":2}`, testutil.AsUser(member.ID, "Member"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	handler.HandleRandomTeams(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rec.Code)
	}
}

func TestHandleDelete_RemovesOrgAndAuxDocuments(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	member := fixtures.CreateUser(ctx, "Member", "member@test.edu")
	org := fixtures.CreateOrganization(ctx, "Doomed", admin.ID)
	fixtures.AddMember(ctx, org.ID, member.ID)
	fixtures.AddTeam(ctx, org.ID, 1, "Team 1", member.ID)

	// Seed per-team documents that must disappear with the org.
	if _, err := handler.Charters.GetOrCreate(ctx, org.ID, 1); err != nil {
		t.Fatalf("charter seed failed: %v", err)
	}
	if _, err := handler.Boards.GetOrCreate(ctx, org.ID, 1); err != nil {
		t.Fatalf("board seed failed: %v", err)
	}

	rec := httptest.NewRecorder()
	req := jsonRequest("DELETE", "/org", "", testutil.AsUser(admin.ID, "Admin"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	handler.HandleDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	for _, coll := range []string{"organizations", "charters", "boards"} {
		filter := bson.M{"org_id": org.ID}
		if coll == "organizations" {
			filter = bson.M{"_id": org.ID}
		}
		n, err := fixtures.DB().Collection(coll).CountDocuments(ctx, filter)
		if err != nil {
			t.Fatalf("CountDocuments(%s) failed: %v", coll, err)
		}
		if n != 0 {
			t.Errorf("%s: expected 0 documents after delete, got %d", coll, n)
		}
	}

	// Member documents no longer reference the org.
	u, err := handler.Users.GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(u.Orgs) != 0 {
		t.Errorf("expected membership cleared, got %v", u.Orgs)
	}
}

func TestHandleKick(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	member := fixtures.CreateUser(ctx, "Member", "member@test.edu")
	org := fixtures.CreateOrganization(ctx, "Strict", admin.ID)
	fixtures.AddMember(ctx, org.ID, member.ID)

	rec := httptest.NewRecorder()
	req := jsonRequest("POST", "/org/kick",
		`{"user_id":"`+member.ID.Hex()+`"}`, testutil.AsUser(admin.ID, "Admin"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	handler.HandleKick(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	got, err := handler.Orgs.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Members) != 0 {
		t.Errorf("expected empty roster, got %d", len(got.Members))
	}
}

func TestHandleAddTeamMember_MovesBetweenTeams(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	member := fixtures.CreateUser(ctx, "Member", "member@test.edu")
	org := fixtures.CreateOrganization(ctx, "Movable", admin.ID)
	fixtures.AddMember(ctx, org.ID, member.ID)
	fixtures.AddTeam(ctx, org.ID, 1, "Team 1", member.ID)
	fixtures.AddTeam(ctx, org.ID, 2, "Team 2")

	target := "/org/team/members"
	body := `{"user_id":"` + member.ID.Hex() + `"}`

	// Only the admin may place members.
	rec := httptest.NewRecorder()
	req := jsonRequest("POST", target, body, testutil.AsUser(member.ID, "Member"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "teamID", "2")
	handler.HandleAddTeamMember(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("member placing: expected status 403, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = jsonRequest("POST", target, body, testutil.AsUser(admin.ID, "Admin"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "teamID", "2")
	handler.HandleAddTeamMember(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	// The move left team 1 and landed on team 2, on both documents.
	team1, err := handler.Orgs.GetTeam(ctx, org.ID, 1)
	if err != nil {
		t.Fatalf("GetTeam 1 failed: %v", err)
	}
	if len(team1.Members) != 0 {
		t.Errorf("expected team 1 emptied, got %v", team1.Members)
	}
	team2, err := handler.Orgs.GetTeam(ctx, org.ID, 2)
	if err != nil {
		t.Fatalf("GetTeam 2 failed: %v", err)
	}
	if len(team2.Members) != 1 || team2.Members[0].ID != member.ID {
		t.Errorf("expected team 2 to hold the member, got %v", team2.Members)
	}
	var user struct {
		Orgs []struct {
			OrgID  primitive.ObjectID `bson:"org_id"`
			TeamID int                `bson:"team_id"`
		} `bson:"orgs"`
	}
	if err := fixtures.DB().Collection("users").FindOne(ctx, bson.M{"_id": member.ID}).Decode(&user); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if len(user.Orgs) != 1 || user.Orgs[0].TeamID != 2 {
		t.Errorf("expected the user document to record team 2, got %+v", user.Orgs)
	}

	// Placing again converges without duplicating the entry.
	rec = httptest.NewRecorder()
	req = jsonRequest("POST", target, body, testutil.AsUser(admin.ID, "Admin"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "teamID", "2")
	handler.HandleAddTeamMember(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat placing: expected status 200, got %d: %s", rec.Code, rec.Body)
	}
	team2, err = handler.Orgs.GetTeam(ctx, org.ID, 2)
	if err != nil {
		t.Fatalf("GetTeam 2 failed: %v", err)
	}
	if len(team2.Members) != 1 {
		t.Errorf("expected a single entry after repeat placing, got %v", team2.Members)
	}
}

func TestHandleAddTeamMember_UnknownTargets(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	member := fixtures.CreateUser(ctx, "Member", "member@test.edu")
	outsider := fixtures.CreateUser(ctx, "Outsider", "outsider@test.edu")
	org := fixtures.CreateOrganization(ctx, "Strict", admin.ID)
	fixtures.AddMember(ctx, org.ID, member.ID)
	fixtures.AddTeam(ctx, org.ID, 1, "Team 1")

	// A team the organization does not have.
	rec := httptest.NewRecorder()
	req := jsonRequest("POST", "/org/team/members",
		`{"user_id":"`+member.ID.Hex()+`"}`, testutil.AsUser(admin.ID, "Admin"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "teamID", "99")
	handler.HandleAddTeamMember(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown team: expected status 404, got %d", rec.Code)
	}

	// A user who never joined the organization.
	rec = httptest.NewRecorder()
	req = jsonRequest("POST", "/org/team/members",
		`{"user_id":"`+outsider.ID.Hex()+`"}`, testutil.AsUser(admin.ID, "Admin"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "teamID", "1")
	handler.HandleAddTeamMember(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("non-member user: expected status 404, got %d", rec.Code)
	}
}

func TestHandleRemoveTeamMember(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	member := fixtures.CreateUser(ctx, "Member", "member@test.edu")
	legacy := fixtures.CreateUser(ctx, "Legacy", "legacy@test.edu")
	org := fixtures.CreateOrganization(ctx, "Removable", admin.ID)
	fixtures.AddMember(ctx, org.ID, member.ID)
	fixtures.AddMember(ctx, org.ID, legacy.ID)
	fixtures.AddTeam(ctx, org.ID, 1, "Team 1", member.ID)
	fixtures.AddLegacyTeamMember(ctx, org.ID, 1, legacy.ID, "Legacy")

	body := `{"user_id":"` + member.ID.Hex() + `"}`

	rec := httptest.NewRecorder()
	req := jsonRequest("DELETE", "/org/team/members", body, testutil.AsUser(member.ID, "Member"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "teamID", "1")
	handler.HandleRemoveTeamMember(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("member removing: expected status 403, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = jsonRequest("DELETE", "/org/team/members", body, testutil.AsUser(admin.ID, "Admin"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "teamID", "1")
	handler.HandleRemoveTeamMember(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	// Legacy-shaped entries come off the roster the same way.
	rec = httptest.NewRecorder()
	req = jsonRequest("DELETE", "/org/team/members",
		`{"user_id":"`+legacy.ID.Hex()+`"}`, testutil.AsUser(admin.ID, "Admin"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "teamID", "1")
	handler.HandleRemoveTeamMember(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("legacy remove: expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	team, err := handler.Orgs.GetTeam(ctx, org.ID, 1)
	if err != nil {
		t.Fatalf("GetTeam failed: %v", err)
	}
	if len(team.Members) != 0 {
		t.Errorf("expected empty team, got %v", team.Members)
	}
	var user struct {
		Orgs []struct {
			OrgID  primitive.ObjectID `bson:"org_id"`
			TeamID int                `bson:"team_id"`
		} `bson:"orgs"`
	}
	if err := fixtures.DB().Collection("users").FindOne(ctx, bson.M{"_id": member.ID}).Decode(&user); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if len(user.Orgs) != 1 || user.Orgs[0].TeamID != 0 {
		t.Errorf("expected the user document cleared of the team, got %+v", user.Orgs)
	}

	rec = httptest.NewRecorder()
	req = jsonRequest("DELETE", "/org/team/members", body, testutil.AsUser(admin.ID, "Admin"))
	req = testutil.WithChiURLParam(req, "orgID", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "teamID", "99")
	handler.HandleRemoveTeamMember(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown team: expected status 404, got %d", rec.Code)
	}
}
