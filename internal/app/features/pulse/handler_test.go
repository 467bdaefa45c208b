package pulse_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/teamhub/internal/app/features/pulse"
	"github.com/dalemusser/teamhub/internal/app/system/indexes"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"github.com/dalemusser/teamhub/internal/testutil"
	"go.uber.org/zap"
)

type pulseWorld struct {
	handler *pulse.Handler
	org     models.Organization
	admin   testutil.TestUser
	alice   testutil.TestUser
	bob     testutil.TestUser
}

func newPulseWorld(t *testing.T) pulseWorld {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	fixtures := testutil.NewFixtures(t, db)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@test.edu")
	bob := fixtures.CreateUser(ctx, "Bob", "bob@test.edu")
	org := fixtures.CreateOrganization(ctx, "Pulse Org", admin.ID)
	fixtures.AddMember(ctx, org.ID, alice.ID)
	fixtures.AddMember(ctx, org.ID, bob.ID)

	return pulseWorld{
		handler: pulse.NewHandler(db, zap.NewNop()),
		org:     org,
		admin:   testutil.AsUser(admin.ID, "Admin"),
		alice:   testutil.AsUser(alice.ID, "Alice"),
		bob:     testutil.AsUser(bob.ID, "Bob"),
	}
}

func (pw pulseWorld) submit(t *testing.T, user testutil.TestUser, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/pulse/create", strings.NewReader(body))
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "orgID", pw.org.ID.Hex())
	rec := httptest.NewRecorder()
	pw.handler.HandleSubmit(rec, req)
	return rec
}

func (pw pulseWorld) week(t *testing.T, user testutil.TestUser, week string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/pulse", nil)
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "orgID", pw.org.ID.Hex())
	req = testutil.WithChiURLParam(req, "week", week)
	rec := httptest.NewRecorder()
	pw.handler.ServeWeek(rec, req)
	return rec
}

const weekOneBody = `{"week":1,"questions":["How was the workload?"],"answers":["manageable"]}`

func TestHandleSubmit_OncePerWeek(t *testing.T) {
	pw := newPulseWorld(t)

	rec := pw.submit(t, pw.alice, weekOneBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	rec = pw.submit(t, pw.alice, `{"week":1,"questions":["again?"],"answers":["yes"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second submission: expected status 400, got %d", rec.Code)
	}

	// A different week is fine.
	rec = pw.submit(t, pw.alice, `{"week":2,"questions":["q"],"answers":["a"]}`)
	if rec.Code != http.StatusOK {
		t.Errorf("new week: expected status 200, got %d: %s", rec.Code, rec.Body)
	}
}

func TestHandleSubmit_Validation(t *testing.T) {
	pw := newPulseWorld(t)

	for name, body := range map[string]string{
		"negative week":      `{"week":-1,"questions":["q"],"answers":["a"]}`,
		"mismatched lengths": `{"week":1,"questions":["q1","q2"],"answers":["a"]}`,
		"no questions":       `{"week":1,"questions":[],"answers":[]}`,
	} {
		rec := pw.submit(t, pw.alice, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", name, rec.Code)
		}
	}
}

func TestServeWeek_OwnResponseOnly(t *testing.T) {
	pw := newPulseWorld(t)

	if rec := pw.submit(t, pw.alice, weekOneBody); rec.Code != http.StatusOK {
		t.Fatalf("submit: expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	rec := pw.week(t, pw.alice, "1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}
	var resp models.PulseResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Week != 1 || len(resp.Answers) != 1 {
		t.Errorf("unexpected response %+v", resp)
	}

	// Bob hasn't submitted, so he sees nothing — not Alice's answers.
	if rec := pw.week(t, pw.bob, "1"); rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for a non-submitter, got %d", rec.Code)
	}
}

func TestServeWeek_AdminSeesAll(t *testing.T) {
	pw := newPulseWorld(t)

	if rec := pw.submit(t, pw.alice, weekOneBody); rec.Code != http.StatusOK {
		t.Fatalf("submit: expected status 200, got %d: %s", rec.Code, rec.Body)
	}
	if rec := pw.submit(t, pw.bob, `{"week":1,"questions":["q"],"answers":["rough"]}`); rec.Code != http.StatusOK {
		t.Fatalf("submit: expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	rec := pw.week(t, pw.admin, "1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}
	var out []models.PulseResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 responses for the admin, got %d", len(out))
	}
}

func TestServeHistory(t *testing.T) {
	pw := newPulseWorld(t)

	for _, body := range []string{
		`{"week":3,"questions":["q"],"answers":["late"]}`,
		weekOneBody,
	} {
		if rec := pw.submit(t, pw.alice, body); rec.Code != http.StatusOK {
			t.Fatalf("submit: expected status 200, got %d: %s", rec.Code, rec.Body)
		}
	}

	req := httptest.NewRequest("GET", "/pulse", nil)
	req = testutil.WithUser(req, pw.alice)
	req = testutil.WithChiURLParam(req, "orgID", pw.org.ID.Hex())
	rec := httptest.NewRecorder()
	pw.handler.ServeHistory(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	var out []models.PulseResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(out))
	}
	if out[0].Week != 1 || out[1].Week != 3 {
		t.Errorf("expected history sorted by week, got %d then %d", out[0].Week, out[1].Week)
	}
}
