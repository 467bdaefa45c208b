package charters_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/teamhub/internal/app/features/charters"
	charterstore "github.com/dalemusser/teamhub/internal/app/store/charters"
	"github.com/dalemusser/teamhub/internal/app/system/indexes"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"github.com/dalemusser/teamhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*charters.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	handler := charters.NewHandler(db, zap.NewNop())
	return handler, testutil.NewFixtures(t, db)
}

type charterWorld struct {
	handler  *charters.Handler
	fixtures *testutil.Fixtures
	org      models.Organization
	member   testutil.TestUser
}

// charter reads the team 1 charter straight from the collection.
func (cw charterWorld) charter(t *testing.T, ctx context.Context) models.Charter {
	t.Helper()
	var ch models.Charter
	err := cw.fixtures.DB().Collection("charters").
		FindOne(ctx, bson.M{"org_id": cw.org.ID, "team_id": 1}).Decode(&ch)
	if err != nil {
		t.Fatalf("loading charter: %v", err)
	}
	return ch
}

// newCharterWorld sets up an org with one three-member team and returns
// a member's credentials for requests against team 1.
func newCharterWorld(t *testing.T) charterWorld {
	t.Helper()
	handler, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	member := fixtures.CreateUser(ctx, "Member", "member@test.edu")
	org := fixtures.CreateOrganization(ctx, "Charter Org", admin.ID)
	fixtures.AddMember(ctx, org.ID, member.ID)
	fixtures.AddTeam(ctx, org.ID, 1, "Team 1", member.ID)

	return charterWorld{
		handler:  handler,
		fixtures: fixtures,
		org:      org,
		member:   testutil.AsUser(member.ID, "Member"),
	}
}

func (cw charterWorld) request(method, body string, user testutil.TestUser) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/charters", nil)
	} else {
		req = httptest.NewRequest(method, "/charters", strings.NewReader(body))
	}
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "orgID", cw.org.ID.Hex())
	return testutil.WithChiURLParam(req, "teamID", "1")
}

func TestServeCharter_SeedsBaseline(t *testing.T) {
	cw := newCharterWorld(t)

	rec := httptest.NewRecorder()
	cw.handler.ServeCharter(rec, cw.request("GET", "", cw.member))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	var ch models.Charter
	if err := json.NewDecoder(rec.Body).Decode(&ch); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if ch.BaseCount != 0 {
		t.Errorf("expected base count 0, got %d", ch.BaseCount)
	}
	if len(ch.Sections) != len(charterstore.BaselineSections) {
		t.Fatalf("expected %d sections, got %d", len(charterstore.BaselineSections), len(ch.Sections))
	}
	for i, name := range charterstore.BaselineSections {
		if ch.Sections[i].Name != name {
			t.Errorf("section %d: expected %q, got %q", i, name, ch.Sections[i].Name)
		}
		if ch.Sections[i].Completed {
			t.Errorf("section %q: baseline sections start incomplete", name)
		}
	}

	// A second read returns the same document, not a second seed.
	rec = httptest.NewRecorder()
	cw.handler.ServeCharter(rec, cw.request("GET", "", cw.member))
	var again models.Charter
	if err := json.NewDecoder(rec.Body).Decode(&again); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if again.ID != ch.ID {
		t.Errorf("expected the same charter document, got %v and %v", ch.ID, again.ID)
	}
}

func TestServeCharter_NonMemberForbidden(t *testing.T) {
	cw := newCharterWorld(t)
	ctx := testutil.TestContext(t)

	stranger := testutil.AsUser(primitive.NewObjectID(), "Stranger")
	rec := httptest.NewRecorder()
	cw.handler.ServeCharter(rec, cw.request("GET", "", stranger))
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rec.Code)
	}

	// The rejected request must not have seeded a charter.
	n, err := cw.fixtures.DB().Collection("charters").
		CountDocuments(ctx, bson.M{"org_id": cw.org.ID, "team_id": 1})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no charter document, got %d", n)
	}
}

func TestHandleUpdateSection_CompletionBumpsBaseCountOnce(t *testing.T) {
	cw := newCharterWorld(t)
	ctx := testutil.TestContext(t)

	body := `{"name":"Goals","content":"Ship by finals week.","completed":true}`
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		cw.handler.HandleUpdateSection(rec, cw.request("PUT", body, cw.member))
		if rec.Code != http.StatusOK {
			t.Fatalf("update %d: expected status 200, got %d: %s", i, rec.Code, rec.Body)
		}
	}

	ch := cw.charter(t, ctx)
	if ch.BaseCount != 1 {
		t.Errorf("expected base count 1 after repeated completion, got %d", ch.BaseCount)
	}
	for _, s := range ch.Sections {
		if s.Name != "Goals" {
			continue
		}
		if !s.Completed {
			t.Error("expected Goals completed")
		}
		if s.Content != "Ship by finals week." {
			t.Errorf("unexpected content %q", s.Content)
		}
	}
}

func TestHandleUpdateSection_MeetingTimes(t *testing.T) {
	cw := newCharterWorld(t)
	ctx := testutil.TestContext(t)

	body := `{"name":"Meeting Times","meeting_times":["2026-09-01T15:00:00Z","2026-09-03T15:00:00Z"]}`
	rec := httptest.NewRecorder()
	cw.handler.HandleUpdateSection(rec, cw.request("PUT", body, cw.member))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	ch := cw.charter(t, ctx)
	if ch.BaseCount != 0 {
		t.Errorf("editing without completing must not move base count, got %d", ch.BaseCount)
	}
	for _, s := range ch.Sections {
		if s.Name == "Meeting Times" && len(s.MeetingTimes) != 2 {
			t.Errorf("expected 2 meeting times, got %d", len(s.MeetingTimes))
		}
	}
}

func TestHandleUpdateSection_UnknownSection(t *testing.T) {
	cw := newCharterWorld(t)

	rec := httptest.NewRecorder()
	cw.handler.HandleUpdateSection(rec, cw.request("PUT",
		`{"name":"Nope","content":"x"}`, cw.member))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleAddSection_CustomSectionLifecycle(t *testing.T) {
	cw := newCharterWorld(t)
	ctx := testutil.TestContext(t)

	rec := httptest.NewRecorder()
	cw.handler.HandleAddSection(rec, cw.request("POST",
		`{"name":"Conflict Resolution","content":"Talk first."}`, cw.member))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	// Duplicate names are rejected.
	rec = httptest.NewRecorder()
	cw.handler.HandleAddSection(rec, cw.request("POST",
		`{"name":"Conflict Resolution","content":"again"}`, cw.member))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate section: expected status 400, got %d", rec.Code)
	}

	ch := cw.charter(t, ctx)
	var found *models.CharterSection
	for i := range ch.Sections {
		if ch.Sections[i].Name == "Conflict Resolution" {
			found = &ch.Sections[i]
		}
	}
	if found == nil {
		t.Fatal("custom section missing from charter")
	}
	if !found.Completed {
		t.Error("custom sections start completed")
	}
	if ch.BaseCount != 0 {
		t.Errorf("custom sections must not touch base count, got %d", ch.BaseCount)
	}

	// Custom sections can be deleted; baseline ones cannot.
	rec = httptest.NewRecorder()
	cw.handler.HandleDeleteSection(rec, cw.request("DELETE",
		`{"name":"Conflict Resolution"}`, cw.member))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete custom: expected status 200, got %d: %s", rec.Code, rec.Body)
	}
	rec = httptest.NewRecorder()
	cw.handler.HandleDeleteSection(rec, cw.request("DELETE",
		`{"name":"Goals"}`, cw.member))
	if rec.Code == http.StatusOK {
		t.Error("deleting a baseline section must fail")
	}
}
